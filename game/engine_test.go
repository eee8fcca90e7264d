package game

import (
	"sync"
	"testing"
	"time"
)

// newTestEngine builds an un-started engine on a virtual clock so every
// dispatch and timer callback runs synchronously in the test goroutine.
func newTestEngine(t *testing.T, persist PersistEngineState) (*Engine, *VirtualClock) {
	t.Helper()
	clock := NewVirtualClock()
	e := NewEngine("ABCD", 7, DefaultDelays(), clock, nil, persist, nil)
	e.DispatchEvent(1, ActionRoomJoined{RoomCode: "ABCD", RoomID: 7, Players: testPlayers()})
	e.DispatchEvent(2, ActionGameStarted{Players: testPlayers(), StartingSlot: 1})
	return e, clock
}

func TestEngineFullTurnFlow(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	delays := DefaultDelays()

	e.DispatchEvent(3, ActionDiceResult{Slot: 1, Die1: 2, Die2: 3})
	e.DispatchEvent(4, ActionPlayerMoved{Slot: 1, From: 0, To: 5})
	e.DispatchEvent(5, ActionPropertyBought{Slot: 1, CellIndex: 5, Price: 600, RemainingPoints: 14400})

	s := e.State()
	if !s.DiceAnimating {
		t.Fatalf("dice clip not running")
	}
	if got := s.DisplayPoints[1]; got != 15000 {
		t.Errorf("display balance unfrozen mid-reveal: %d", got)
	}

	// The dice clip finishes first; the move start delay outlasts it so
	// the token never walks over a still-rolling clip.
	clock.Advance(millis(delays.DiceRoll))
	s = e.State()
	if s.DiceAnimating {
		t.Fatalf("dice clip did not finish")
	}
	if len(s.Animating) != 0 {
		t.Fatalf("walk started while the dice clip was still playing")
	}
	if _, ok := s.PendingMoves[1]; !ok {
		t.Fatalf("move lost before its start delay")
	}

	clock.Advance(millis(delays.BeforeMove))
	clock.Advance(5 * millis(delays.TokenStep))

	s = e.State()
	if got := s.PlayerBySlot(1).Position; got != 5 {
		t.Fatalf("Position = %d, want 5 after the walk", got)
	}
	// With the board quiet the pipeline flushed the purchase notif.
	if len(s.PointNotifs) != 1 || s.PointNotifs[0].Amount != -600 {
		t.Fatalf("purchase notif not flushed: %+v", s.PointNotifs)
	}
	if len(s.DisplayPoints) != 0 {
		t.Errorf("display balance still frozen after flush")
	}

	// The toast expires on its own.
	clock.Advance(millis(delays.NotifTTL) + time.Millisecond)
	if got := len(e.State().PointNotifs); got != 0 {
		t.Errorf("%d notifs left after TTL", got)
	}

	e.DispatchEvent(6, ActionTurnChanged{Slot: 2, Round: 1, Phase: PhaseRollDice})
	if got := e.State().CurrentPlayerSlot; got != 2 {
		t.Errorf("turn not promoted on idle board, slot %d", got)
	}
}

func TestEngineDropsStaleEvents(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	e.DispatchEvent(3, ActionTaxPaid{Slot: 1, CellIndex: 4, Amount: 400})
	before := e.State().PlayerBySlot(1).Points

	// A replayed or out-of-order duplicate must not apply twice.
	e.DispatchEvent(3, ActionTaxPaid{Slot: 1, CellIndex: 4, Amount: 400})
	e.DispatchEvent(2, ActionTaxPaid{Slot: 1, CellIndex: 4, Amount: 400})
	if got := e.State().PlayerBySlot(1).Points; got != before {
		t.Errorf("duplicate events changed the balance: %d -> %d", before, got)
	}
}

func TestEngineWatchdogRecoversStuckDice(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	delays := DefaultDelays()

	e.DispatchEvent(3, ActionDiceResult{Slot: 1, Die1: 2, Die2: 3})
	e.DispatchEvent(4, ActionTurnChanged{Slot: 2, Round: 1, Phase: PhaseRollDice})

	// The turn promotes immediately; only the dice clip remains. Kill
	// its completion timer to simulate a lost signal, then let the
	// watchdog's budget elapse.
	for key, timer := range e.timers {
		if key == "dice" {
			timer.Stop()
			delete(e.timers, key)
		}
	}
	if got := e.State().CurrentPlayerSlot; got != 2 {
		t.Fatalf("turn blocked by dice clip, slot %d", got)
	}

	clock.Advance(millis(delays.WatchdogBudget) + time.Millisecond)
	if e.State().DiceAnimating {
		t.Errorf("watchdog did not clear the stuck dice clip")
	}
}

func TestEngineCardAutoDismiss(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	delays := DefaultDelays()

	e.DispatchEvent(3, ActionCardDrawn{
		Card:   Card{Slot: 1, Title: "Windfall"},
		Effect: &CardEffect{PointDeltas: []PointDelta{{Slot: 1, Amount: 500}}},
	})
	if e.State().ActiveCard == nil {
		t.Fatalf("card not shown")
	}
	if got := e.State().PlayerBySlot(1).Points; got != 15000 {
		t.Fatalf("card effect leaked before dismissal")
	}

	clock.Advance(millis(delays.CardDisplay) + time.Millisecond)
	s := e.State()
	if s.ActiveCard != nil {
		t.Fatalf("card not auto-dismissed")
	}
	if got := s.PlayerBySlot(1).Points; got != 15500 {
		t.Errorf("Points = %d, want 15500 after dismissal", got)
	}
}

func TestEngineSnapshotRestore(t *testing.T) {
	tracker := NewMemorySnapshotTracker()
	e, _ := newTestEngine(t, tracker)

	e.DispatchEvent(3, ActionPropertyBought{Slot: 1, CellIndex: 5, Price: 600, RemainingPoints: 14400})
	e.Detach()

	snap, err := tracker.Load("ABCD")
	if err != nil {
		t.Fatalf("snapshot not saved: %s", err)
	}
	if snap.LastEventSeq != 3 {
		t.Errorf("LastEventSeq = %d, want 3", snap.LastEventSeq)
	}

	restored := NewEngine("ABCD", 7, DefaultDelays(), NewVirtualClock(), nil, tracker, nil)
	restored.Restore(snap)
	if !restored.State().PlayerBySlot(1).Properties[5] {
		t.Errorf("restored state lost the purchase")
	}

	// Restored sequence tracking continues where it left off.
	restored.DispatchEvent(3, ActionTaxPaid{Slot: 1, CellIndex: 4, Amount: 400})
	if got := restored.State().PlayerBySlot(1).Points; got != 14400 {
		t.Errorf("stale event applied after restore: %d", got)
	}
}

func TestEngineSameKindArtifactBurst(t *testing.T) {
	e, clock := newTestEngine(t, nil)

	// Three presence notices share one artifact kind, so each dismissal
	// immediately reveals the next one under an identical timer key.
	e.DispatchEvent(3, ActionPlayerDisconnected{Slot: 2})
	e.DispatchEvent(4, ActionPlayerDisconnected{Slot: 3})
	e.DispatchEvent(5, ActionPlayerReconnected{Slot: 2})
	e.DispatchEvent(6, ActionTurnChanged{Slot: 2, Round: 1, Phase: PhaseRollDice})

	s := e.State()
	if s.ActiveArtifact == nil || s.ActiveArtifact.Kind != ArtifactPresenceNotice {
		t.Fatalf("first notice not revealed")
	}
	if got := s.CurrentPlayerSlot; got != 1 {
		t.Fatalf("turn change promoted over a visible notice, slot %d", got)
	}

	clock.Advance(10 * time.Minute)
	s = e.State()
	if s.ActiveArtifact != nil {
		t.Fatalf("notice still on screen: %s", s.ActiveArtifact.Kind)
	}
	if got := len(s.QueuedArtifacts); got != 0 {
		t.Fatalf("%d notices never revealed", got)
	}
	if got := s.CurrentPlayerSlot; got != 2 {
		t.Errorf("queued turn change starved, slot %d", got)
	}
}

func TestEngineConcurrentDispatch(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.Run()
	defer e.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				e.Dispatch(ActionChatReceived{Msg: ChatMessage{Slot: 1, Name: "amy", Text: "hi"}})
			}
		}()
	}
	wg.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(e.State().Chat) < 80 {
		time.Sleep(time.Millisecond)
	}
	if got := len(e.State().Chat); got != 80 {
		t.Errorf("%d chat messages applied, want 80", got)
	}
}

func TestManagerLifecycle(t *testing.T) {
	tracker := NewMemorySnapshotTracker()
	m := NewManager(DefaultDelays(), NewVirtualClock(), nil, tracker, tracker)

	e, err := m.NewEngine("ABCD", 7, nil)
	if err != nil {
		t.Fatalf("NewEngine: %s", err)
	}
	if _, err := m.NewEngine("ABCD", 7, nil); err == nil {
		t.Errorf("duplicate engine allowed")
	}
	if code, _ := m.CurrentRoomCode(); code != "ABCD" {
		t.Errorf("current room key = %q, want ABCD", code)
	}

	// Apply synchronously so the detach snapshot below sees the roster.
	e.HandleAction(ActionRoomJoined{RoomCode: "ABCD", RoomID: 7, Players: testPlayers()})
	m.DetachEngine("ABCD")
	if m.GetEngine("ABCD") != nil {
		t.Errorf("engine still attached after detach")
	}

	resumed, err := m.ResumeEngine("ABCD", nil)
	if err != nil {
		t.Fatalf("ResumeEngine: %s", err)
	}
	if len(resumed.State().Players) != 3 {
		t.Errorf("resumed state lost the roster")
	}

	m.EndEngine("ABCD")
	if _, err := tracker.Load("ABCD"); err == nil {
		t.Errorf("snapshot survived EndEngine")
	}
	if code, _ := m.CurrentRoomCode(); code != "" {
		t.Errorf("room key survived EndEngine: %q", code)
	}
}

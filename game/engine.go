package game

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"tycoon.com/client/logging"
	"tycoon.com/client/util"
)

var engineLogger = log.With().Str("logger_name", "game::engine").Logger()

// snapshotEvery is the dispatch interval between periodic snapshot
// saves.
const snapshotEvery = 20

// Engine owns one room's GameState and is its only writer. All server
// events, local UI transitions and timer firings funnel through a single
// loop, so every reducer invocation and scheduler evaluation runs to
// completion before the next one starts.
type Engine struct {
	roomCode string
	roomID   uint64

	clock   Clock
	delays  Delays
	sink    EffectSink
	persist PersistEngineState

	chAction chan Action
	end      chan bool

	lock    sync.Mutex
	running bool
	state   *GameState

	timers   map[string]ClockTimer
	watchdog *Watchdog

	lastEventSeq  uint64
	dispatchCount uint64

	crashHandler func()

	// onDispatch is a test/simulation hook observing each applied
	// action and the resulting state.
	onDispatch func(a Action, s *GameState)
}

// NewEngine builds an engine for a room. The sink and persist
// collaborators may be nil.
func NewEngine(roomCode string, roomID uint64, delays Delays, clock Clock,
	sink EffectSink, persist PersistEngineState, crashHandler func()) *Engine {
	if sink == nil {
		sink = NoopEffectSink{}
	}
	e := &Engine{
		roomCode:     roomCode,
		roomID:       roomID,
		clock:        clock,
		delays:       delays,
		sink:         sink,
		persist:      persist,
		chAction:     make(chan Action, 64),
		end:          make(chan bool),
		state:        NewGameState(),
		timers:       make(map[string]ClockTimer),
		crashHandler: crashHandler,
	}
	e.state.RoomCode = roomCode
	e.state.RoomID = roomID
	e.watchdog = NewWatchdog(roomCode, delays, clock, e.dispatchFromTimer)
	return e
}

// Restore seeds the engine from a persisted snapshot before it starts.
func (e *Engine) Restore(snap *Snapshot) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if snap == nil || snap.State == nil {
		return
	}
	e.state = snap.State.Clone()
	e.lastEventSeq = snap.LastEventSeq
}

// Run starts the engine loop goroutine.
func (e *Engine) Run() {
	e.lock.Lock()
	e.running = true
	e.lock.Unlock()
	go e.loop()
}

// Stop ends the loop and disarms all timers.
func (e *Engine) Stop() {
	e.lock.Lock()
	wasRunning := e.running
	e.running = false
	e.lock.Unlock()
	if wasRunning {
		e.end <- true
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	e.stopAllTimers()
	e.watchdog.Stop()
}

func (e *Engine) loop() {
	defer func() {
		err := recover()
		if err != nil {
			debug.PrintStack()
			engineLogger.Error().
				Str(logging.RoomCodeKey, e.roomCode).
				Msgf("Engine loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))
			if e.crashHandler != nil {
				e.crashHandler()
			}
		} else {
			engineLogger.Info().Str(logging.RoomCodeKey, e.roomCode).Msg("Engine loop returning")
		}
	}()

	for {
		select {
		case <-e.end:
			return
		case a := <-e.chAction:
			e.HandleAction(a)
		}
	}
}

// Dispatch feeds an action into the engine loop. Without a running loop
// (tests, simulation) the action applies synchronously on the caller's
// goroutine.
func (e *Engine) Dispatch(a Action) {
	e.lock.Lock()
	running := e.running
	e.lock.Unlock()
	if running {
		e.chAction <- a
		return
	}
	e.HandleAction(a)
}

// DispatchEvent applies a server event's action, dropping stale
// duplicates by sequence number. Seq 0 means the transport did not
// number the event.
func (e *Engine) DispatchEvent(seq uint64, a Action) {
	if seq != 0 {
		e.lock.Lock()
		stale := seq <= e.lastEventSeq
		if !stale {
			e.lastEventSeq = seq
		}
		e.lock.Unlock()
		if stale {
			engineLogger.Debug().
				Str(logging.RoomCodeKey, e.roomCode).
				Str(logging.ActionKey, a.Name()).
				Msgf("Dropping duplicate event seq %d", seq)
			return
		}
	}
	e.Dispatch(a)
}

// dispatchFromTimer is the entry point for clock callbacks.
func (e *Engine) dispatchFromTimer(a Action) {
	e.Dispatch(a)
}

// HandleAction applies one action synchronously: reduce, run the reveal
// pipeline to completion, resync timers, feed the watchdog. Only the
// loop goroutine (or a test driving the engine directly) calls this.
func (e *Engine) HandleAction(a Action) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.applyLocked(a)
	for {
		promo, stage := NextPromotion(e.state)
		if promo == nil {
			break
		}
		engineLogger.Debug().
			Str(logging.RoomCodeKey, e.roomCode).
			Str(logging.ActionKey, promo.Name()).
			Msgf("Pipeline stage %s fired", stage)
		util.Metrics.PromotionFired()
		e.applyLocked(promo)
	}
	e.syncTimersLocked()
	e.watchdog.Observe(e.state)
	e.maybeSnapshotLocked()
}

func (e *Engine) applyLocked(a Action) {
	e.state = Reduce(e.state, a)
	e.dispatchCount++
	util.Metrics.ActionApplied()
	if cue, ok := cueForAction(a); ok {
		e.sink.PlayEffect(cue)
	}
	if e.onDispatch != nil {
		e.onDispatch(a, e.state)
	}
}

// State returns the current state. Callers must treat it as read-only;
// the engine never mutates a state it has handed out.
func (e *Engine) State() *GameState {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.state
}

func (e *Engine) RoomCode() string {
	return e.roomCode
}

func (e *Engine) RoomID() uint64 {
	return e.roomID
}

// Detach saves a final snapshot and stops the engine, keeping the
// persisted state for reconnection.
func (e *Engine) Detach() {
	e.lock.Lock()
	e.saveSnapshotLocked()
	e.lock.Unlock()
	e.Stop()
}

func (e *Engine) maybeSnapshotLocked() {
	if e.persist == nil || e.dispatchCount%snapshotEvery != 0 {
		return
	}
	e.saveSnapshotLocked()
}

func (e *Engine) saveSnapshotLocked() {
	if e.persist == nil {
		return
	}
	snap := &Snapshot{
		RoomCode:     e.roomCode,
		State:        e.state.Clone(),
		LastEventSeq: e.lastEventSeq,
		SavedAt:      e.clock.Now(),
	}
	if err := e.persist.Save(e.roomCode, snap); err != nil {
		engineLogger.Error().
			Str(logging.RoomCodeKey, e.roomCode).
			Msgf("Unable to save snapshot: %s", err)
	}
}

//
// Timer bank. Each armed timer is keyed by what it waits for; syncing
// after every dispatch cancels timers whose trigger vanished and arms
// the ones the new state calls for.
//

func (e *Engine) syncTimersLocked() {
	s := e.state
	want := make(map[string]timerSpec)
	if s.DiceAnimating {
		want["dice"] = timerSpec{millis(e.delays.DiceRoll), func() Action { return ActionDiceAnimationDone{} }}
	}
	if s.ActiveCard != nil {
		want["card"] = timerSpec{millis(e.delays.CardDisplay), func() Action { return ActionCardDismissed{} }}
	}
	if s.ActiveArtifact != nil {
		key := "artifact:" + s.ActiveArtifact.Kind.String()
		kind := s.ActiveArtifact.Kind
		want[key] = timerSpec{e.delays.dismissDelay(kind), func() Action { return ActionDismissArtifact{} }}
	}
	for slot, m := range s.PendingMoves {
		slot := slot
		key := fmt.Sprintf("movestart:%d", slot)
		want[key] = timerSpec{e.delays.moveStartDelay(m.Teleport), func() Action { return ActionStartTokenMove{Slot: slot} }}
	}
	for slot, anim := range s.Animating {
		slot := slot
		key := fmt.Sprintf("step:%d:%d", slot, anim.CurrentStep)
		want[key] = timerSpec{millis(e.delays.TokenStep), func() Action { return ActionTokenStepped{Slot: slot} }}
	}
	for _, notif := range s.PointNotifs {
		id := notif.ID
		key := fmt.Sprintf("notif:%d", id)
		want[key] = timerSpec{millis(e.delays.NotifTTL), func() Action { return ActionExpireNotif{ID: id} }}
	}

	for key, t := range e.timers {
		if _, ok := want[key]; !ok {
			t.Stop()
			delete(e.timers, key)
		}
	}
	for key, spec := range want {
		if _, ok := e.timers[key]; ok {
			continue
		}
		key := key
		makeAction := spec.action
		var t ClockTimer
		t = e.clock.AfterFunc(spec.delay, func() {
			e.removeFiredTimer(key, t)
			e.dispatchFromTimer(makeAction())
		})
		e.timers[key] = t
		engineLogger.Debug().
			Str(logging.RoomCodeKey, e.roomCode).
			Str(logging.TimerPurposeKey, key).
			Msgf("Armed timer for %s", spec.delay)
	}
}

// removeFiredTimer drops a fired timer's bank entry so a later sync can
// arm the same key again. Back-to-back same-kind artifacts depend on
// this: dismissing one immediately promotes the next under an identical
// key, and a stale fired entry would block its dismiss timer forever.
func (e *Engine) removeFiredTimer(key string, t ClockTimer) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.timers[key] == t {
		delete(e.timers, key)
	}
}

type timerSpec struct {
	delay  time.Duration
	action func() Action
}

func (e *Engine) stopAllTimers() {
	for key, t := range e.timers {
		t.Stop()
		delete(e.timers, key)
	}
}

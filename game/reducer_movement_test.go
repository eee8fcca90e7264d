package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildMovePath(t *testing.T) {
	tests := []struct {
		name string
		from uint32
		to   uint32
		want []uint32
	}{
		{"simple", 5, 8, []uint32{6, 7, 8}},
		{"wraps past go", 38, 2, []uint32{39, 0, 1, 2}},
		{"lands on go", 39, 0, []uint32{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMovePath(tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildMovePath(%d, %d) mismatch (-want +got):\n%s", tt.from, tt.to, diff)
			}
		})
	}
}

func TestBuildMovePathFullLap(t *testing.T) {
	got := buildMovePath(7, 7)
	if len(got) != BoardSize {
		t.Fatalf("same-cell move should be a full lap, got %d steps", len(got))
	}
	if got[0] != 8 || got[len(got)-1] != 7 {
		t.Errorf("lap starts at %d ends at %d, want 8..7", got[0], got[len(got)-1])
	}
}

func TestPlayerMovedQueuesWalk(t *testing.T) {
	s := startedState()
	n := Reduce(s, ActionPlayerMoved{Slot: 1, From: 0, To: 7})

	m := n.PendingMoves[1]
	if m == nil || len(m.Path) != 7 {
		t.Fatalf("pending move = %+v, want a 7-step path", m)
	}
	// Position commits only when the walk finishes.
	if n.PlayerBySlot(1).Position != 0 {
		t.Errorf("position committed early")
	}
}

func TestTeleportIsSingleHop(t *testing.T) {
	s := startedState()
	n := Reduce(s, ActionPlayerMoved{Slot: 1, From: 3, To: 25, Teleport: true})
	want := &TokenMove{Slot: 1, Path: []uint32{25}, Teleport: true}
	if diff := cmp.Diff(want, n.PendingMoves[1]); diff != "" {
		t.Errorf("teleport move mismatch (-want +got):\n%s", diff)
	}
}

func TestPassingGoAwardsBonusBeforeWalk(t *testing.T) {
	s := startedState()
	n := Reduce(s, ActionPlayerMoved{Slot: 1, From: 38, To: 2, GoBonus: 2000})

	if got := n.PlayerBySlot(1).Points; got != 17000 {
		t.Errorf("Points = %d, want 17000", got)
	}
	if len(n.QueuedArtifacts) != 1 || n.QueuedArtifacts[0].Kind != ArtifactGoBonus {
		t.Errorf("go bonus artifact not queued")
	}
	// Visible balance stays frozen until the flush.
	if got := n.DisplayPoints[1]; got != 15000 {
		t.Errorf("DisplayPoints[1] = %d, want 15000", got)
	}
}

func TestWalkLifecycle(t *testing.T) {
	s := startedState()
	s = Reduce(s, ActionPlayerMoved{Slot: 1, From: 0, To: 3})
	s = Reduce(s, ActionStartTokenMove{Slot: 1})

	if _, pending := s.PendingMoves[1]; pending {
		t.Fatalf("move still pending after start")
	}
	anim := s.Animating[1]
	if anim == nil || anim.CurrentStep != 0 {
		t.Fatalf("walk not started: %+v", anim)
	}

	s = Reduce(s, ActionTokenStepped{Slot: 1})
	s = Reduce(s, ActionTokenStepped{Slot: 1})
	if s.Animating[1].CurrentStep != 2 {
		t.Errorf("CurrentStep = %d, want 2", s.Animating[1].CurrentStep)
	}
	if s.PlayerBySlot(1).Position != 0 {
		t.Errorf("position committed mid-walk")
	}

	s = Reduce(s, ActionTokenStepped{Slot: 1})
	if _, walking := s.Animating[1]; walking {
		t.Errorf("walk still running past its path")
	}
	if got := s.PlayerBySlot(1).Position; got != 3 {
		t.Errorf("Position = %d, want 3", got)
	}
}

func TestSecondMoveForceCompletesFirst(t *testing.T) {
	s := startedState()
	s = Reduce(s, ActionPlayerMoved{Slot: 1, From: 0, To: 3})
	s = Reduce(s, ActionStartTokenMove{Slot: 1})

	// The next move arrives while the walk is mid-path.
	n := Reduce(s, ActionPlayerMoved{Slot: 1, From: 3, To: 9})
	if got := n.PlayerBySlot(1).Position; got != 3 {
		t.Errorf("first move not committed, Position = %d", got)
	}
	if _, walking := n.Animating[1]; walking {
		t.Errorf("old walk still animating")
	}
	if m := n.PendingMoves[1]; m == nil || len(m.Path) != 6 {
		t.Errorf("second move not queued: %+v", m)
	}
}

func TestStepOnIdleSlotIsNoOp(t *testing.T) {
	s := startedState()
	n := Reduce(s, ActionTokenStepped{Slot: 2})
	if n != s {
		t.Errorf("stray step should be ignored")
	}
}

package simulation

import (
	"testing"

	"tycoon.com/client/game"
)

func TestRunFixedSeed(t *testing.T) {
	err := Run(Config{
		NumGames: 5,
		Seed:     42,
		Delays:   game.DefaultDelays(),
	})
	if err != nil {
		t.Fatalf("simulation failed: %s", err)
	}
}

func TestCheckInvariantsCatchesDuplicateOwnership(t *testing.T) {
	s := game.NewGameState()
	s.Players = []*game.Player{
		{Slot: 1, Properties: map[uint32]bool{5: true}, Houses: map[uint32]uint32{}, Hotels: map[uint32]bool{}},
		{Slot: 2, Properties: map[uint32]bool{5: true}, Houses: map[uint32]uint32{}, Hotels: map[uint32]bool{}},
	}
	if err := checkInvariants(s); err == nil {
		t.Errorf("duplicate ownership not detected")
	}
}

func TestCheckQuiescentCatchesStuckQueue(t *testing.T) {
	s := game.NewGameState()
	s.QueuedTurnChange = &game.TurnChange{Slot: 2, Round: 1}
	if err := checkQuiescent(s); err == nil {
		t.Errorf("queued turn change not detected")
	}
}

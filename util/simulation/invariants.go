package simulation

import (
	"fmt"

	"tycoon.com/client/game"
)

// checkInvariants validates the structural rules that must hold after
// every applied action, no matter what the event stream looked like.
func checkInvariants(s *game.GameState) error {
	// Property ownership is exclusive.
	owners := make(map[uint32]uint32)
	for _, p := range s.Players {
		for cell := range p.Properties {
			if prev, taken := owners[cell]; taken {
				return fmt.Errorf("cell %d owned by both slot %d and slot %d", cell, prev, p.Slot)
			}
			owners[cell] = p.Slot
		}
	}

	// Buildings only on owned cells.
	for _, p := range s.Players {
		for cell := range p.Houses {
			if !p.Properties[cell] {
				return fmt.Errorf("slot %d has houses on unowned cell %d", p.Slot, cell)
			}
		}
		for cell := range p.Hotels {
			if !p.Properties[cell] {
				return fmt.Errorf("slot %d has a hotel on unowned cell %d", p.Slot, cell)
			}
		}
	}

	// A walking animation never runs past its path.
	for slot, anim := range s.Animating {
		if len(anim.Path) == 0 {
			return fmt.Errorf("slot %d animating with empty path", slot)
		}
		if anim.CurrentStep >= len(anim.Path) {
			return fmt.Errorf("slot %d animation step %d out of range %d", slot, anim.CurrentStep, len(anim.Path))
		}
		if _, pending := s.PendingMoves[slot]; pending {
			return fmt.Errorf("slot %d both pending and animating", slot)
		}
	}

	// Frozen balances exist only while deltas are pending.
	if len(s.PendingNotifs) == 0 && len(s.DisplayPoints) != 0 {
		return fmt.Errorf("display points frozen with no pending notifs")
	}

	// Positions stay on the board.
	for _, p := range s.Players {
		if p.Position >= game.BoardSize {
			return fmt.Errorf("slot %d position %d off the board", p.Slot, p.Position)
		}
	}

	// The result view only exists after the finish promotion.
	if s.View == game.ViewResult && s.TurnPhase != game.PhaseGameOver {
		return fmt.Errorf("result view with phase %s", s.TurnPhase)
	}
	if s.QueuedGameFinished != nil && s.View == game.ViewResult {
		return fmt.Errorf("game finished both queued and promoted")
	}

	return nil
}

// checkQuiescent validates that a fully drained room is actually idle:
// nothing busy, nothing queued, nothing pending. Run after advancing the
// clock far past every budget.
func checkQuiescent(s *game.GameState) error {
	if key := game.BusyKey(s); key != "" {
		return fmt.Errorf("still busy after drain: %s", key)
	}
	if len(s.QueuedArtifacts) != 0 {
		return fmt.Errorf("%d artifacts still queued after drain", len(s.QueuedArtifacts))
	}
	if s.QueuedTurnChange != nil {
		return fmt.Errorf("turn change still queued after drain")
	}
	if len(s.PendingNotifs) != 0 {
		return fmt.Errorf("%d notifs still pending after drain", len(s.PendingNotifs))
	}
	if s.QueuedGameFinished != nil {
		return fmt.Errorf("game finish still queued after drain")
	}
	return nil
}

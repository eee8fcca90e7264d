package game

import (
	"fmt"
	"strings"
)

// isAnimBusy is the full promotion gate: anything that still owes the
// player a reveal blocks later-stage promotions.
func isAnimBusy(s *GameState) bool {
	return s.DiceAnimating ||
		s.ActiveCard != nil ||
		len(s.PendingMoves) > 0 ||
		len(s.Animating) > 0
}

// isMoveBusy is the narrow gate used for turn-change and game-finish
// promotion. It deliberately excludes the dice-roll animation: that
// timer is purely cosmetic and a missed completion signal must never
// stall game progress.
func isMoveBusy(s *GameState) bool {
	return s.ActiveCard != nil ||
		len(s.PendingMoves) > 0 ||
		len(s.Animating) > 0
}

// BusyKey is a composite fingerprint of everything currently blocking
// promotions. The watchdog re-arms whenever it changes and force-clears
// if it stays the same past its budget. Empty string means idle.
func BusyKey(s *GameState) string {
	var parts []string
	if s.DiceAnimating {
		parts = append(parts, "dice")
	}
	if s.ActiveCard != nil {
		parts = append(parts, "card")
	}
	for slot := uint32(1); slot <= 4; slot++ {
		if m, ok := s.PendingMoves[slot]; ok {
			parts = append(parts, fmt.Sprintf("pend:%d:%d", slot, len(m.Path)))
		}
		if a, ok := s.Animating[slot]; ok {
			parts = append(parts, fmt.Sprintf("anim:%d:%d", slot, a.CurrentStep))
		}
	}
	if s.ActiveArtifact != nil {
		parts = append(parts, "artifact:"+s.ActiveArtifact.Kind.String())
	}
	return strings.Join(parts, "|")
}

// reduceForceClear is the watchdog's synthesized recovery. Every fact
// that was pending gets applied exactly once; only the dedicated reveal
// animations are skipped. A stale key (state moved on since the timer
// was armed) makes it a no-op.
func reduceForceClear(s *GameState, a ActionForceClear) *GameState {
	if a.BusyKey == "" || a.BusyKey != BusyKey(s) {
		return s
	}
	n := s.Clone()
	n.DiceAnimating = false
	if n.ActiveCard != nil {
		applyPendingCardEffects(n)
		n.ActiveCard = nil
	}
	completeAllMovement(n)
	n.ActiveArtifact = nil
	return n
}

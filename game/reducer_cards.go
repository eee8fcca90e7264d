package game

// Card effects are deliberately split into two reducer passes: the drawn
// card stores its server-confirmed effects in PendingCardEffect and
// PendingCardMove, and only dismissing the card-reveal UI applies them
// to the visible board. Nothing about the effect leaks into Players
// before the reveal completes.

func reduceCardDrawn(s *GameState, a ActionCardDrawn) *GameState {
	if s.PlayerBySlot(a.Card.Slot) == nil {
		return s
	}
	n := s.Clone()
	card := a.Card
	n.ActiveCard = &card
	n.PendingCardEffect = a.Effect.clone()
	n.PendingCardMove = a.Move.clone()
	return n
}

func reduceCardDismissed(s *GameState) *GameState {
	if s.ActiveCard == nil {
		return s
	}
	n := s.Clone()
	applyPendingCardEffects(n)
	n.ActiveCard = nil
	return n
}

// applyPendingCardEffects runs the held second pass: ownership theft
// (with dedupe), position swaps, buffs and balance deltas, and releases
// a card-triggered move into the pending-move track.
func applyPendingCardEffects(s *GameState) {
	effect := s.PendingCardEffect
	s.PendingCardEffect = nil
	if effect != nil {
		if effect.StolenProperty != nil {
			transferProperty(s, effect.StolenProperty.CellIndex, effect.StolenProperty.ToSlot)
		}
		if len(effect.SwapSlots) == 2 {
			p1 := s.PlayerBySlot(effect.SwapSlots[0])
			p2 := s.PlayerBySlot(effect.SwapSlots[1])
			if p1 != nil && p2 != nil {
				p1.Position, p2.Position = p2.Position, p1.Position
			}
		}
		for _, grant := range effect.Buffs {
			p := s.PlayerBySlot(grant.Slot)
			if p == nil {
				continue
			}
			switch grant.Buff {
			case BuffImmunityNextRent:
				p.ImmunityNextRent = true
			case BuffDoubleRent:
				p.DoubleRentTurns = grant.Turns
			case BuffSkipNextTurn:
				p.SkipNextTurn = true
			}
		}
		for _, d := range effect.PointDeltas {
			applyPointDelta(s, d.Slot, d.Amount)
		}
	}
	if move := s.PendingCardMove; move != nil {
		s.PendingCardMove = nil
		if s.PlayerBySlot(move.Slot) != nil {
			if anim, ok := s.Animating[move.Slot]; ok {
				if p := s.PlayerBySlot(move.Slot); p != nil {
					p.Position = anim.Path[len(anim.Path)-1]
				}
				delete(s.Animating, move.Slot)
			}
			s.PendingMoves[move.Slot] = move.clone()
		}
	}
}

package game

import (
	"testing"
)

func TestCardEffectsHeldUntilDismissed(t *testing.T) {
	s := startedState()
	s = Reduce(s, ActionPropertyBought{Slot: 2, CellIndex: 5, Price: 600, RemainingPoints: 14400})
	s = Reduce(s, ActionFlushNotifs{})

	drawn := Reduce(s, ActionCardDrawn{
		Card: Card{Slot: 1, Title: "Property Thief", Description: "Steal a property"},
		Effect: &CardEffect{
			StolenProperty: &PropertyTransfer{FromSlot: 2, ToSlot: 1, CellIndex: 5},
			PointDeltas:    []PointDelta{{Slot: 1, Amount: -100}},
		},
	})

	// Nothing visible changed: the thief does not own the cell yet and
	// balances are untouched.
	if drawn.PlayerBySlot(1).Properties[5] {
		t.Fatalf("stolen property visible before card dismissal")
	}
	if !drawn.PlayerBySlot(2).Properties[5] {
		t.Fatalf("victim lost the property before card dismissal")
	}
	if got := drawn.PlayerBySlot(1).Points; got != 15000 {
		t.Errorf("balance changed before dismissal: %d", got)
	}

	dismissed := Reduce(drawn, ActionCardDismissed{})
	if !dismissed.PlayerBySlot(1).Properties[5] {
		t.Errorf("stolen property not applied on dismissal")
	}
	if dismissed.PlayerBySlot(2).Properties[5] {
		t.Errorf("victim still owns the stolen cell")
	}
	if got := dismissed.PlayerBySlot(1).Points; got != 14900 {
		t.Errorf("Points = %d, want 14900", got)
	}
	if dismissed.ActiveCard != nil || dismissed.PendingCardEffect != nil {
		t.Errorf("card track not cleared")
	}
}

func TestCardSwapAndBuffs(t *testing.T) {
	s := startedState()
	s.PlayerBySlot(1).Position = 10
	s.PlayerBySlot(3).Position = 30

	s = Reduce(s, ActionCardDrawn{
		Card: Card{Slot: 1, Title: "Switcheroo"},
		Effect: &CardEffect{
			SwapSlots: []uint32{1, 3},
			Buffs: []BuffGrant{
				{Slot: 1, Buff: BuffImmunityNextRent},
				{Slot: 3, Buff: BuffDoubleRent, Turns: 2},
			},
		},
	})
	s = Reduce(s, ActionCardDismissed{})

	if s.PlayerBySlot(1).Position != 30 || s.PlayerBySlot(3).Position != 10 {
		t.Errorf("positions not swapped: %d/%d",
			s.PlayerBySlot(1).Position, s.PlayerBySlot(3).Position)
	}
	if !s.PlayerBySlot(1).ImmunityNextRent {
		t.Errorf("immunity buff not granted")
	}
	if s.PlayerBySlot(3).DoubleRentTurns != 2 {
		t.Errorf("double rent buff not granted")
	}
}

func TestCardMoveReleasedOnDismissal(t *testing.T) {
	s := startedState()
	s = Reduce(s, ActionCardDrawn{
		Card: Card{Slot: 1, Title: "Advance to GO"},
		Move: &TokenMove{Slot: 1, Path: []uint32{0}, Teleport: true},
	})

	if len(s.PendingMoves) != 0 {
		t.Fatalf("card move released before dismissal")
	}
	s = Reduce(s, ActionCardDismissed{})
	m := s.PendingMoves[1]
	if m == nil || !m.Teleport || m.Path[0] != 0 {
		t.Errorf("card move not released: %+v", m)
	}
}

func TestCardDismissalIdempotent(t *testing.T) {
	s := startedState()
	s = Reduce(s, ActionCardDrawn{
		Card:   Card{Slot: 1, Title: "Windfall"},
		Effect: &CardEffect{PointDeltas: []PointDelta{{Slot: 1, Amount: 500}}},
	})
	s = Reduce(s, ActionCardDismissed{})
	again := Reduce(s, ActionCardDismissed{})
	if again != s {
		t.Errorf("dismissing with no active card should be a no-op")
	}
	if got := s.PlayerBySlot(1).Points; got != 15500 {
		t.Errorf("Points = %d, want 15500", got)
	}
}

func TestCardTheftDedupesStaleOwner(t *testing.T) {
	s := startedState()
	// Both 2 and 3 claim the cell through inconsistent history.
	s.PlayerBySlot(2).Properties = map[uint32]bool{5: true}
	s.PlayerBySlot(3).Properties = map[uint32]bool{5: true}

	s = Reduce(s, ActionCardDrawn{
		Card: Card{Slot: 1, Title: "Property Thief"},
		Effect: &CardEffect{
			StolenProperty: &PropertyTransfer{FromSlot: 2, ToSlot: 1, CellIndex: 5},
		},
	})
	s = Reduce(s, ActionCardDismissed{})

	owners := 0
	for _, p := range s.Players {
		if p.Properties[5] {
			owners++
			if p.Slot != 1 {
				t.Errorf("slot %d still owns cell 5", p.Slot)
			}
		}
	}
	if owners != 1 {
		t.Errorf("cell 5 has %d owners, want 1", owners)
	}
}

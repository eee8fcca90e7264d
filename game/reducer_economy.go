package game

// Point-change protocol: every balance mutation goes through
// applyPointDelta so the on-screen number stays frozen (DisplayPoints)
// until the notification explaining the change has been flushed. The
// authoritative balance in Players is already correct underneath.
func applyPointDelta(s *GameState, slot uint32, amount int64) {
	if amount == 0 {
		return
	}
	p := s.PlayerBySlot(slot)
	if p == nil {
		return
	}
	if len(s.PendingNotifs) == 0 {
		// First pending notification since the last flush: freeze the
		// currently displayed balances.
		s.DisplayPoints = make(map[uint32]int64, len(s.Players))
		for _, pl := range s.Players {
			s.DisplayPoints[pl.Slot] = pl.Points
		}
	}
	p.Points += amount
	s.PendingNotifs = append(s.PendingNotifs, PointDelta{Slot: slot, Amount: amount})
}

// setPointsAbsolute applies a server-reported absolute balance through
// the same protocol. Replaying an already-applied event yields a zero
// delta and therefore no duplicate notification.
func setPointsAbsolute(s *GameState, slot uint32, points int64) {
	p := s.PlayerBySlot(slot)
	if p == nil {
		return
	}
	applyPointDelta(s, slot, points-p.Points)
}

// stripPropertyOwnership removes the cell and its buildings from every
// player. Run before any assignment so a missed transfer event can never
// leave duplicate ownership behind.
func stripPropertyOwnership(s *GameState, cellIndex uint32) {
	for _, p := range s.Players {
		delete(p.Properties, cellIndex)
		delete(p.Houses, cellIndex)
		delete(p.Hotels, cellIndex)
	}
}

// transferProperty atomically moves a cell (and its buildings) to the
// given player, deduping any stale owners first. Slot 0 releases the
// cell to the bank.
func transferProperty(s *GameState, cellIndex uint32, toSlot uint32) {
	var houses uint32
	var hotel bool
	for _, p := range s.Players {
		if p.Properties[cellIndex] {
			houses = p.Houses[cellIndex]
			hotel = p.Hotels[cellIndex]
		}
	}
	stripPropertyOwnership(s, cellIndex)
	if toSlot == 0 {
		return
	}
	p := s.PlayerBySlot(toSlot)
	if p == nil {
		return
	}
	p.Properties[cellIndex] = true
	if houses > 0 {
		p.Houses[cellIndex] = houses
	}
	if hotel {
		p.Hotels[cellIndex] = true
	}
}

func reducePropertyBought(s *GameState, a ActionPropertyBought) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	stripPropertyOwnership(n, a.CellIndex)
	n.PlayerBySlot(a.Slot).Properties[a.CellIndex] = true
	setPointsAbsolute(n, a.Slot, a.RemainingPoints)
	n.PendingAction = nil
	return n
}

func reduceRentPaid(s *GameState, a ActionRentPaid) *GameState {
	payer := s.PlayerBySlot(a.FromSlot)
	if payer == nil {
		return s
	}
	n := s.Clone()
	if !a.Immune {
		applyPointDelta(n, a.FromSlot, -a.Amount)
		applyPointDelta(n, a.ToSlot, a.Amount)
	}
	if np := n.PlayerBySlot(a.FromSlot); np.ImmunityNextRent {
		np.ImmunityNextRent = false
	}
	n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
		Kind: ArtifactRentAlert,
		RentAlert: &RentAlert{
			FromSlot:  a.FromSlot,
			ToSlot:    a.ToSlot,
			CellIndex: a.CellIndex,
			Amount:    a.Amount,
			Immune:    a.Immune,
		},
	})
	return n
}

func reduceTaxPaid(s *GameState, a ActionTaxPaid) *GameState {
	if s.PlayerBySlot(a.Slot) == nil {
		return s
	}
	n := s.Clone()
	applyPointDelta(n, a.Slot, -a.Amount)
	n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
		Kind:     ArtifactTaxAlert,
		TaxAlert: &TaxAlert{Slot: a.Slot, CellIndex: a.CellIndex, Amount: a.Amount},
	})
	return n
}

func reduceHouseBuilt(s *GameState, a ActionHouseBuilt) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	np := n.PlayerBySlot(a.Slot)
	if !np.Properties[a.CellIndex] {
		// The build implies ownership; repair it if a transfer event
		// was missed.
		transferProperty(n, a.CellIndex, a.Slot)
	}
	np.Houses[a.CellIndex] = a.Count
	applyPointDelta(n, a.Slot, -a.Cost)
	return n
}

func reduceHotelBuilt(s *GameState, a ActionHotelBuilt) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	np := n.PlayerBySlot(a.Slot)
	if !np.Properties[a.CellIndex] {
		transferProperty(n, a.CellIndex, a.Slot)
	}
	np.Hotels[a.CellIndex] = true
	applyPointDelta(n, a.Slot, -a.Cost)
	return n
}

func reduceBuildingsSold(s *GameState, a ActionBuildingsSold) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	np := n.PlayerBySlot(a.Slot)
	for _, cell := range a.Cells {
		delete(np.Houses, cell)
		delete(np.Hotels, cell)
	}
	applyPointDelta(n, a.Slot, a.Refund)
	return n
}

func reducePropertyTransferred(s *GameState, a ActionPropertyTransferred) *GameState {
	n := s.Clone()
	transferProperty(n, a.Transfer.CellIndex, a.Transfer.ToSlot)
	return n
}

func reduceBuybackDone(s *GameState, a ActionBuybackDone) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	transferProperty(n, a.CellIndex, a.Slot)
	applyPointDelta(n, a.Slot, -a.Price)
	return n
}

func reduceForcedTradeDone(s *GameState, a ActionForcedTradeDone) *GameState {
	if s.PlayerBySlot(a.FromSlot) == nil || s.PlayerBySlot(a.ToSlot) == nil {
		return s
	}
	n := s.Clone()
	transferProperty(n, a.GaveCell, a.ToSlot)
	transferProperty(n, a.TookCell, a.FromSlot)
	return n
}

func reduceGoBonusAwarded(s *GameState, a ActionGoBonusAwarded) *GameState {
	if s.PlayerBySlot(a.Slot) == nil {
		return s
	}
	n := s.Clone()
	applyPointDelta(n, a.Slot, a.Amount)
	n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
		Kind:    ArtifactGoBonus,
		GoBonus: &GoBonus{Slot: a.Slot, Amount: a.Amount},
	})
	return n
}

func reducePlayerBankrupt(s *GameState, a ActionPlayerBankrupt) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	np := n.PlayerBySlot(a.Slot)
	np.IsBankrupt = true
	cells := make([]uint32, 0, len(np.Properties))
	for cell := range np.Properties {
		cells = append(cells, cell)
	}
	for _, cell := range cells {
		transferProperty(n, cell, a.CreditorSlot)
	}
	if np.Points != 0 {
		if a.CreditorSlot != 0 {
			applyPointDelta(n, a.CreditorSlot, np.Points)
		}
		setPointsAbsolute(n, a.Slot, 0)
	}
	n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
		Kind:     ArtifactBankruptAlert,
		Bankrupt: &BankruptAlert{Slot: a.Slot, CreditorSlot: a.CreditorSlot},
	})
	return n
}

func reduceFestivalStarted(s *GameState, a ActionFestivalStarted) *GameState {
	n := s.Clone()
	n.Festival = &Festival{CellIndex: a.CellIndex, Multiplier: a.Multiplier}
	return n
}

func reduceFestivalEnded(s *GameState) *GameState {
	if s.Festival == nil {
		return s
	}
	n := s.Clone()
	n.Festival = nil
	return n
}

func reduceRentFrozen(s *GameState, a ActionRentFrozen) *GameState {
	n := s.Clone()
	if n.FrozenRents == nil {
		n.FrozenRents = make(map[uint32]uint32)
	}
	n.FrozenRents[a.CellIndex] = a.Turns
	return n
}

//
// Notification flush/expiry
//

func reduceFlushNotifs(s *GameState) *GameState {
	if len(s.PendingNotifs) == 0 {
		return s
	}
	n := s.Clone()
	for _, d := range n.PendingNotifs {
		n.NextNotifID++
		n.PointNotifs = append(n.PointNotifs, PointNotif{
			ID:     n.NextNotifID,
			Slot:   d.Slot,
			Amount: d.Amount,
		})
	}
	// The freeze and the pending deltas clear together, always.
	n.PendingNotifs = nil
	n.DisplayPoints = make(map[uint32]int64)
	return n
}

func reduceExpireNotif(s *GameState, a ActionExpireNotif) *GameState {
	idx := -1
	for i, notif := range s.PointNotifs {
		if notif.ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	n := s.Clone()
	n.PointNotifs = append(n.PointNotifs[:idx], n.PointNotifs[idx+1:]...)
	return n
}

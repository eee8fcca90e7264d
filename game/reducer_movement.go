package game

// buildMovePath returns the cell-by-cell wrap-around path from one cell
// to another, excluding the start cell. A teleport uses a single-hop
// path instead.
func buildMovePath(from uint32, to uint32) []uint32 {
	steps := (int(to) - int(from) + BoardSize) % BoardSize
	if steps == 0 {
		steps = BoardSize
	}
	path := make([]uint32, 0, steps)
	for i := 1; i <= steps; i++ {
		path = append(path, uint32((int(from)+i)%BoardSize))
	}
	return path
}

func reduceDiceResult(s *GameState, a ActionDiceResult) *GameState {
	if s.PlayerBySlot(a.Slot) == nil {
		return s
	}
	n := s.Clone()
	n.DiceRoll = &DiceRoll{Slot: a.Slot, Die1: a.Die1, Die2: a.Die2}
	n.DiceAnimating = true
	return n
}

func reduceDiceAnimationDone(s *GameState) *GameState {
	if !s.DiceAnimating {
		return s
	}
	n := s.Clone()
	n.DiceAnimating = false
	return n
}

func reducePlayerMoved(s *GameState, a ActionPlayerMoved) *GameState {
	if s.PlayerBySlot(a.Slot) == nil {
		return s
	}
	n := s.Clone()
	// At most one in-flight movement per slot: a second move arriving
	// while the previous one is still animating force-completes it.
	if anim, ok := n.Animating[a.Slot]; ok {
		n.PlayerBySlot(a.Slot).Position = anim.Path[len(anim.Path)-1]
		delete(n.Animating, a.Slot)
	}
	var path []uint32
	if a.Teleport {
		path = []uint32{a.To}
	} else {
		path = buildMovePath(a.From, a.To)
	}
	n.PendingMoves[a.Slot] = &TokenMove{Slot: a.Slot, Path: path, Teleport: a.Teleport}
	if a.GoBonus > 0 {
		applyPointDelta(n, a.Slot, a.GoBonus)
		n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
			Kind:    ArtifactGoBonus,
			GoBonus: &GoBonus{Slot: a.Slot, Amount: a.GoBonus},
		})
	}
	return n
}

func reduceStartTokenMove(s *GameState, a ActionStartTokenMove) *GameState {
	m, ok := s.PendingMoves[a.Slot]
	if !ok || len(m.Path) == 0 {
		return s
	}
	n := s.Clone()
	delete(n.PendingMoves, a.Slot)
	n.Animating[a.Slot] = &TokenAnim{Slot: a.Slot, Path: m.Path, CurrentStep: 0}
	return n
}

func reduceTokenStepped(s *GameState, a ActionTokenStepped) *GameState {
	anim, ok := s.Animating[a.Slot]
	if !ok {
		return s
	}
	n := s.Clone()
	na := n.Animating[a.Slot]
	if na.CurrentStep < len(na.Path)-1 {
		na.CurrentStep++
		return n
	}
	// Reached the path's end: commit the position and stop walking.
	if p := n.PlayerBySlot(a.Slot); p != nil {
		p.Position = anim.Path[len(anim.Path)-1]
	}
	delete(n.Animating, a.Slot)
	return n
}

// completeAllMovement commits every pending and animating movement
// directly to its destination. Used by the watchdog's force clear.
func completeAllMovement(s *GameState) {
	for slot, m := range s.PendingMoves {
		if p := s.PlayerBySlot(slot); p != nil && len(m.Path) > 0 {
			p.Position = m.Path[len(m.Path)-1]
		}
		delete(s.PendingMoves, slot)
	}
	for slot, anim := range s.Animating {
		if p := s.PlayerBySlot(slot); p != nil && len(anim.Path) > 0 {
			p.Position = anim.Path[len(anim.Path)-1]
		}
		delete(s.Animating, slot)
	}
}

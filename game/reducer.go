package game

import (
	"tycoon.com/client/logging"
)

var reducerLogger = logging.GetZeroLogger("game::reducer", nil)

// Reduce is the single state-transition function. It is pure and total:
// it never mutates the input state, never panics on malformed input, and
// returns the state unchanged for unknown action types so that new
// server events degrade to no-ops instead of crashes.
func Reduce(s *GameState, a Action) *GameState {
	if s == nil {
		s = NewGameState()
	}
	switch act := a.(type) {
	case ActionRoomCreated:
		return reduceRoomCreated(s, act)
	case ActionRoomJoined:
		return reduceRoomJoined(s, act)
	case ActionRoomReset:
		return reduceRoomReset(s)
	case ActionGameStarted:
		return reduceGameStarted(s, act)
	case ActionGameFinished:
		return reduceGameFinished(s, act)
	case ActionLeaveRoom:
		return NewGameState()
	case ActionDiceResult:
		return reduceDiceResult(s, act)
	case ActionPlayerMoved:
		return reducePlayerMoved(s, act)
	case ActionTurnChanged:
		return reduceTurnChanged(s, act)
	case ActionTurnPhaseChanged:
		return reduceTurnPhaseChanged(s, act)
	case ActionPendingActionSet:
		return reducePendingActionSet(s, act)
	case ActionPendingActionCleared:
		return reducePendingActionCleared(s)
	case ActionPropertyBought:
		return reducePropertyBought(s, act)
	case ActionRentPaid:
		return reduceRentPaid(s, act)
	case ActionTaxPaid:
		return reduceTaxPaid(s, act)
	case ActionHouseBuilt:
		return reduceHouseBuilt(s, act)
	case ActionHotelBuilt:
		return reduceHotelBuilt(s, act)
	case ActionBuildingsSold:
		return reduceBuildingsSold(s, act)
	case ActionPropertyTransferred:
		return reducePropertyTransferred(s, act)
	case ActionBuybackDone:
		return reduceBuybackDone(s, act)
	case ActionForcedTradeDone:
		return reduceForcedTradeDone(s, act)
	case ActionGoBonusAwarded:
		return reduceGoBonusAwarded(s, act)
	case ActionPlayerBankrupt:
		return reducePlayerBankrupt(s, act)
	case ActionFestivalStarted:
		return reduceFestivalStarted(s, act)
	case ActionFestivalEnded:
		return reduceFestivalEnded(s)
	case ActionRentFrozen:
		return reduceRentFrozen(s, act)
	case ActionBuildPromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactBuildPrompt, Build: &act.Prompt})
	case ActionSellPromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactSellPrompt, Sell: &act.Prompt})
	case ActionTravelPromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactTravelPrompt, Travel: &act.Prompt})
	case ActionBuybackPromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactBuybackPrompt, Buyback: &act.Prompt})
	case ActionForcedTradePromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactForcedTradePrompt, ForcedTrade: &act.Prompt})
	case ActionRentFreezePromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactRentFreezePrompt, RentFreeze: &act.Prompt})
	case ActionFestivalPromptReceived:
		return queueArtifact(s, Artifact{Kind: ArtifactFestivalPrompt, Festival: &act.Prompt})
	case ActionCardDrawn:
		return reduceCardDrawn(s, act)
	case ActionCardDismissed:
		return reduceCardDismissed(s)
	case ActionAbilityUsed:
		return reduceAbilityUsed(s, act)
	case ActionBuffExpired:
		return reduceBuffExpired(s, act)
	case ActionPlayerDisconnected:
		return reducePresence(s, act.Slot, false)
	case ActionPlayerReconnected:
		return reducePresence(s, act.Slot, true)
	case ActionPlayerLeft:
		return reducePlayerLeft(s, act)
	case ActionChatReceived:
		return reduceChatReceived(s, act)
	case ActionDiceAnimationDone:
		return reduceDiceAnimationDone(s)
	case ActionStartTokenMove:
		return reduceStartTokenMove(s, act)
	case ActionTokenStepped:
		return reduceTokenStepped(s, act)
	case ActionPromoteArtifact:
		return reducePromoteArtifact(s)
	case ActionDismissArtifact:
		return reduceDismissArtifact(s)
	case ActionPromoteTurnChange:
		return reducePromoteTurnChange(s)
	case ActionPromoteGameFinished:
		return reducePromoteGameFinished(s)
	case ActionFlushNotifs:
		return reduceFlushNotifs(s)
	case ActionExpireNotif:
		return reduceExpireNotif(s, act)
	case ActionForceClear:
		return reduceForceClear(s, act)
	case ActionIntentFailed:
		return reduceIntentFailed(s, act)
	case ActionErrorCleared:
		return reduceErrorCleared(s)
	default:
		// Forward compatibility: an action the reducer does not know
		// about leaves the state untouched.
		reducerLogger.Debug().Str(logging.ActionKey, a.Name()).Msg("Ignoring unknown action")
		return s
	}
}

//
// Lifecycle
//

func reduceRoomCreated(s *GameState, a ActionRoomCreated) *GameState {
	n := NewGameState()
	n.RoomCode = a.RoomCode
	n.RoomID = a.RoomID
	n.View = ViewWaiting
	return n
}

func reduceRoomJoined(s *GameState, a ActionRoomJoined) *GameState {
	n := NewGameState()
	n.RoomCode = a.RoomCode
	n.RoomID = a.RoomID
	n.View = ViewWaiting
	n.Players = normalizePlayers(a.Players)
	return n
}

func reduceRoomReset(s *GameState) *GameState {
	n := NewGameState()
	n.RoomCode = s.RoomCode
	n.RoomID = s.RoomID
	n.View = ViewWaiting
	return n
}

func reduceGameStarted(s *GameState, a ActionGameStarted) *GameState {
	n := s.Clone()
	n.View = ViewPlaying
	n.Players = normalizePlayers(a.Players)
	n.CurrentPlayerSlot = a.StartingSlot
	n.Round = 1
	n.TurnPhase = PhaseRollDice
	n.Error = ""
	return n
}

func reduceGameFinished(s *GameState, a ActionGameFinished) *GameState {
	n := s.Clone()
	result := a.Result
	n.QueuedGameFinished = result.clone()
	return n
}

// normalizePlayers deep-copies the roster and guarantees non-nil maps so
// the reducer never has to nil-check them later.
func normalizePlayers(players []*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		if p == nil {
			continue
		}
		cp := *p
		if cp.Properties == nil {
			cp.Properties = make(map[uint32]bool)
		} else {
			cp.Properties = cloneUint32BoolMap(cp.Properties)
		}
		if cp.Houses == nil {
			cp.Houses = make(map[uint32]uint32)
		} else {
			cp.Houses = cloneUint32Uint32Map(cp.Houses)
		}
		if cp.Hotels == nil {
			cp.Hotels = make(map[uint32]bool)
		} else {
			cp.Hotels = cloneUint32BoolMap(cp.Hotels)
		}
		out = append(out, &cp)
	}
	return out
}

//
// Turn flow
//

func reduceTurnChanged(s *GameState, a ActionTurnChanged) *GameState {
	n := s.Clone()
	n.QueuedTurnChange = &TurnChange{Slot: a.Slot, Round: a.Round, Phase: a.Phase}
	// Prompts that belonged to the previous turn must not resurface
	// after the turn has moved on.
	kept := n.QueuedArtifacts[:0]
	for _, art := range n.QueuedArtifacts {
		if !art.turnScoped() {
			kept = append(kept, art)
		}
	}
	n.QueuedArtifacts = kept
	if n.ActiveArtifact != nil && n.ActiveArtifact.turnScoped() {
		n.ActiveArtifact = nil
	}
	n.PendingAction = nil
	return n
}

func reduceTurnPhaseChanged(s *GameState, a ActionTurnPhaseChanged) *GameState {
	n := s.Clone()
	n.TurnPhase = a.Phase
	return n
}

func reducePendingActionSet(s *GameState, a ActionPendingActionSet) *GameState {
	n := s.Clone()
	pending := a.Pending
	n.PendingAction = &pending
	return n
}

func reducePendingActionCleared(s *GameState) *GameState {
	n := s.Clone()
	n.PendingAction = nil
	return n
}

func reducePromoteTurnChange(s *GameState) *GameState {
	if s.QueuedTurnChange == nil {
		// Duplicate promotion is a no-op.
		return s
	}
	n := s.Clone()
	tc := n.QueuedTurnChange
	n.CurrentPlayerSlot = tc.Slot
	n.Round = tc.Round
	n.TurnPhase = tc.Phase
	n.QueuedTurnChange = nil
	if p := n.PlayerBySlot(tc.Slot); p != nil {
		if p.DoubleRentTurns > 0 {
			p.DoubleRentTurns--
		}
		if p.AbilityCooldown > 0 {
			p.AbilityCooldown--
		}
	}
	for cell, turns := range n.FrozenRents {
		if turns <= 1 {
			delete(n.FrozenRents, cell)
		} else {
			n.FrozenRents[cell] = turns - 1
		}
	}
	return n
}

func reducePromoteGameFinished(s *GameState) *GameState {
	if s.QueuedGameFinished == nil {
		return s
	}
	n := s.Clone()
	n.Result = n.QueuedGameFinished
	n.QueuedGameFinished = nil
	n.View = ViewResult
	n.TurnPhase = PhaseGameOver
	return n
}

//
// Abilities, buffs, presence, chat
//

func reduceAbilityUsed(s *GameState, a ActionAbilityUsed) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	n.PlayerBySlot(a.Slot).AbilityCooldown = a.CooldownTurns
	return n
}

func reduceBuffExpired(s *GameState, a ActionBuffExpired) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	np := n.PlayerBySlot(a.Slot)
	switch a.Buff {
	case BuffImmunityNextRent:
		np.ImmunityNextRent = false
	case BuffDoubleRent:
		np.DoubleRentTurns = 0
	case BuffSkipNextTurn:
		np.SkipNextTurn = false
	}
	return n
}

func reducePresence(s *GameState, slot uint32, connected bool) *GameState {
	p := s.PlayerBySlot(slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	n.PlayerBySlot(slot).IsConnected = connected
	n.QueuedArtifacts = append(n.QueuedArtifacts, Artifact{
		Kind:     ArtifactPresenceNotice,
		Presence: &PresenceNotice{Slot: slot, Connected: connected},
	})
	return n
}

func reducePlayerLeft(s *GameState, a ActionPlayerLeft) *GameState {
	p := s.PlayerBySlot(a.Slot)
	if p == nil {
		return s
	}
	n := s.Clone()
	n.PlayerBySlot(a.Slot).IsConnected = false
	return n
}

func reduceChatReceived(s *GameState, a ActionChatReceived) *GameState {
	n := s.Clone()
	n.Chat = append(n.Chat, a.Msg)
	if len(n.Chat) > MaxChatMessages {
		n.Chat = n.Chat[len(n.Chat)-MaxChatMessages:]
	}
	return n
}

//
// Errors
//

func reduceIntentFailed(s *GameState, a ActionIntentFailed) *GameState {
	n := s.Clone()
	n.Error = a.Err
	return n
}

func reduceErrorCleared(s *GameState) *GameState {
	if s.Error == "" {
		return s
	}
	n := s.Clone()
	n.Error = ""
	return n
}

//
// Artifact queue
//

func queueArtifact(s *GameState, a Artifact) *GameState {
	n := s.Clone()
	n.QueuedArtifacts = append(n.QueuedArtifacts, a)
	return n
}

func reducePromoteArtifact(s *GameState) *GameState {
	if s.ActiveArtifact != nil {
		return s
	}
	idx := nextQueuedArtifact(s.QueuedArtifacts)
	if idx < 0 {
		return s
	}
	n := s.Clone()
	art := n.QueuedArtifacts[idx]
	n.QueuedArtifacts = append(n.QueuedArtifacts[:idx], n.QueuedArtifacts[idx+1:]...)
	n.ActiveArtifact = &art
	return n
}

func reduceDismissArtifact(s *GameState) *GameState {
	if s.ActiveArtifact == nil {
		return s
	}
	n := s.Clone()
	n.ActiveArtifact = nil
	return n
}

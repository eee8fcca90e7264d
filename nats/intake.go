package nats

import (
	jsoniter "github.com/json-iterator/go"

	"tycoon.com/client/game"
)

// EventEnvelope is the wire shape of every server event: a name, a
// monotonically increasing sequence number and a typed JSON payload.
type EventEnvelope struct {
	Name string              `json:"name"`
	Seq  uint64              `json:"seq"`
	Data jsoniter.RawMessage `json:"data"`
}

// Server event names. Each maps 1:1 to one reducer action.
const (
	EventRoomCreated        = "room-created"
	EventRoomJoined         = "room-joined"
	EventRoomReset          = "room-reset"
	EventGameStarted        = "game-started"
	EventGameFinished       = "game-finished"
	EventDiceResult         = "dice-result"
	EventPlayerMoved        = "player-moved"
	EventTurnChanged        = "turn-changed"
	EventTurnPhaseChanged   = "turn-phase-changed"
	EventPendingAction      = "pending-action"
	EventPendingActionClear = "pending-action-clear"
	EventPropertyBought     = "property-bought"
	EventRentPaid           = "rent-paid"
	EventTaxPaid            = "tax-paid"
	EventHouseBuilt         = "house-built"
	EventHotelBuilt         = "hotel-built"
	EventBuildingsSold      = "buildings-sold"
	EventPropertyTransfer   = "property-transferred"
	EventBuybackDone        = "buyback-done"
	EventForcedTradeDone    = "forced-trade-done"
	EventGoBonus            = "go-bonus"
	EventPlayerBankrupt     = "player-bankrupt"
	EventFestivalStarted    = "festival-started"
	EventFestivalEnded      = "festival-ended"
	EventRentFrozen         = "rent-frozen"
	EventBuildPrompt        = "build-prompt"
	EventSellPrompt         = "sell-prompt"
	EventTravelPrompt       = "travel-prompt"
	EventBuybackPrompt      = "buyback-prompt"
	EventForcedTradePrompt  = "forced-trade-prompt"
	EventRentFreezePrompt   = "rent-freeze-prompt"
	EventFestivalPrompt     = "festival-prompt"
	EventCardDrawn          = "card-drawn"
	EventAbilityUsed        = "ability-used"
	EventBuffExpired        = "buff-expired"
	EventPlayerDisconnected = "player-disconnected"
	EventPlayerReconnected  = "player-reconnected"
	EventPlayerLeft         = "player-left"
	EventChatMessage        = "chat-message"
)

// MapEvent translates one named server event into its reducer action.
// It carries no business logic: a pure payload-decoding switch. Unknown
// names and malformed payloads return ok=false and are ignored by the
// caller.
func MapEvent(name string, data []byte) (game.Action, bool) {
	switch name {
	case EventRoomCreated:
		var p struct {
			RoomCode string `json:"roomCode"`
			RoomID   uint64 `json:"roomId"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionRoomCreated{RoomCode: p.RoomCode, RoomID: p.RoomID}, true
	case EventRoomJoined:
		var p struct {
			RoomCode string         `json:"roomCode"`
			RoomID   uint64         `json:"roomId"`
			Players  []*game.Player `json:"players"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionRoomJoined{RoomCode: p.RoomCode, RoomID: p.RoomID, Players: p.Players}, true
	case EventRoomReset:
		return game.ActionRoomReset{}, true
	case EventGameStarted:
		var p struct {
			Players      []*game.Player `json:"players"`
			StartingSlot uint32         `json:"startingSlot"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionGameStarted{Players: p.Players, StartingSlot: p.StartingSlot}, true
	case EventGameFinished:
		var p game.GameResult
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionGameFinished{Result: p}, true
	case EventDiceResult:
		var p struct {
			Slot uint32 `json:"slot"`
			Die1 uint32 `json:"die1"`
			Die2 uint32 `json:"die2"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionDiceResult{Slot: p.Slot, Die1: p.Die1, Die2: p.Die2}, true
	case EventPlayerMoved:
		var p struct {
			Slot     uint32 `json:"slot"`
			From     uint32 `json:"from"`
			To       uint32 `json:"to"`
			Teleport bool   `json:"teleport"`
			GoBonus  int64  `json:"goBonus"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPlayerMoved{
			Slot: p.Slot, From: p.From, To: p.To,
			Teleport: p.Teleport, GoBonus: p.GoBonus,
		}, true
	case EventTurnChanged:
		var p struct {
			Slot  uint32 `json:"slot"`
			Round uint32 `json:"round"`
			Phase uint32 `json:"phase"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionTurnChanged{Slot: p.Slot, Round: p.Round, Phase: game.TurnPhase(p.Phase)}, true
	case EventTurnPhaseChanged:
		var p struct {
			Phase uint32 `json:"phase"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionTurnPhaseChanged{Phase: game.TurnPhase(p.Phase)}, true
	case EventPendingAction:
		var p game.PendingAction
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPendingActionSet{Pending: p}, true
	case EventPendingActionClear:
		return game.ActionPendingActionCleared{}, true
	case EventPropertyBought:
		var p struct {
			Slot            uint32 `json:"slot"`
			CellIndex       uint32 `json:"cellIndex"`
			Price           int64  `json:"price"`
			RemainingPoints int64  `json:"remainingPoints"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPropertyBought{
			Slot: p.Slot, CellIndex: p.CellIndex,
			Price: p.Price, RemainingPoints: p.RemainingPoints,
		}, true
	case EventRentPaid:
		var p struct {
			FromSlot  uint32 `json:"fromSlot"`
			ToSlot    uint32 `json:"toSlot"`
			CellIndex uint32 `json:"cellIndex"`
			Amount    int64  `json:"amount"`
			Immune    bool   `json:"immune"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionRentPaid{
			FromSlot: p.FromSlot, ToSlot: p.ToSlot,
			CellIndex: p.CellIndex, Amount: p.Amount, Immune: p.Immune,
		}, true
	case EventTaxPaid:
		var p struct {
			Slot      uint32 `json:"slot"`
			CellIndex uint32 `json:"cellIndex"`
			Amount    int64  `json:"amount"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionTaxPaid{Slot: p.Slot, CellIndex: p.CellIndex, Amount: p.Amount}, true
	case EventHouseBuilt:
		var p struct {
			Slot      uint32 `json:"slot"`
			CellIndex uint32 `json:"cellIndex"`
			Count     uint32 `json:"count"`
			Cost      int64  `json:"cost"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionHouseBuilt{Slot: p.Slot, CellIndex: p.CellIndex, Count: p.Count, Cost: p.Cost}, true
	case EventHotelBuilt:
		var p struct {
			Slot      uint32 `json:"slot"`
			CellIndex uint32 `json:"cellIndex"`
			Cost      int64  `json:"cost"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionHotelBuilt{Slot: p.Slot, CellIndex: p.CellIndex, Cost: p.Cost}, true
	case EventBuildingsSold:
		var p struct {
			Slot   uint32   `json:"slot"`
			Cells  []uint32 `json:"cells"`
			Refund int64    `json:"refund"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionBuildingsSold{Slot: p.Slot, Cells: p.Cells, Refund: p.Refund}, true
	case EventPropertyTransfer:
		var p game.PropertyTransfer
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPropertyTransferred{Transfer: p}, true
	case EventBuybackDone:
		var p struct {
			Slot      uint32 `json:"slot"`
			CellIndex uint32 `json:"cellIndex"`
			Price     int64  `json:"price"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionBuybackDone{Slot: p.Slot, CellIndex: p.CellIndex, Price: p.Price}, true
	case EventForcedTradeDone:
		var p struct {
			FromSlot uint32 `json:"fromSlot"`
			ToSlot   uint32 `json:"toSlot"`
			GaveCell uint32 `json:"gaveCell"`
			TookCell uint32 `json:"tookCell"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionForcedTradeDone{
			FromSlot: p.FromSlot, ToSlot: p.ToSlot,
			GaveCell: p.GaveCell, TookCell: p.TookCell,
		}, true
	case EventGoBonus:
		var p struct {
			Slot   uint32 `json:"slot"`
			Amount int64  `json:"amount"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionGoBonusAwarded{Slot: p.Slot, Amount: p.Amount}, true
	case EventPlayerBankrupt:
		var p struct {
			Slot         uint32 `json:"slot"`
			CreditorSlot uint32 `json:"creditorSlot"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPlayerBankrupt{Slot: p.Slot, CreditorSlot: p.CreditorSlot}, true
	case EventFestivalStarted:
		var p struct {
			CellIndex  uint32 `json:"cellIndex"`
			Multiplier uint32 `json:"multiplier"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionFestivalStarted{CellIndex: p.CellIndex, Multiplier: p.Multiplier}, true
	case EventFestivalEnded:
		return game.ActionFestivalEnded{}, true
	case EventRentFrozen:
		var p struct {
			Slot      uint32 `json:"slot"`
			CellIndex uint32 `json:"cellIndex"`
			Turns     uint32 `json:"turns"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionRentFrozen{Slot: p.Slot, CellIndex: p.CellIndex, Turns: p.Turns}, true
	case EventBuildPrompt:
		var p game.BuildPrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionBuildPromptReceived{Prompt: p}, true
	case EventSellPrompt:
		var p game.SellPrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionSellPromptReceived{Prompt: p}, true
	case EventTravelPrompt:
		var p game.TravelPrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionTravelPromptReceived{Prompt: p}, true
	case EventBuybackPrompt:
		var p game.BuybackPrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionBuybackPromptReceived{Prompt: p}, true
	case EventForcedTradePrompt:
		var p game.ForcedTradePrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionForcedTradePromptReceived{Prompt: p}, true
	case EventRentFreezePrompt:
		var p game.RentFreezePrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionRentFreezePromptReceived{Prompt: p}, true
	case EventFestivalPrompt:
		var p game.FestivalPrompt
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionFestivalPromptReceived{Prompt: p}, true
	case EventCardDrawn:
		var p struct {
			Card   game.Card        `json:"card"`
			Effect *game.CardEffect `json:"effect"`
			Move   *game.TokenMove  `json:"move"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionCardDrawn{Card: p.Card, Effect: p.Effect, Move: p.Move}, true
	case EventAbilityUsed:
		var p struct {
			Slot          uint32 `json:"slot"`
			Ability       string `json:"ability"`
			CooldownTurns uint32 `json:"cooldownTurns"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionAbilityUsed{Slot: p.Slot, Ability: p.Ability, CooldownTurns: p.CooldownTurns}, true
	case EventBuffExpired:
		var p struct {
			Slot uint32 `json:"slot"`
			Buff uint32 `json:"buff"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionBuffExpired{Slot: p.Slot, Buff: game.BuffKind(p.Buff)}, true
	case EventPlayerDisconnected:
		var p struct {
			Slot uint32 `json:"slot"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPlayerDisconnected{Slot: p.Slot}, true
	case EventPlayerReconnected:
		var p struct {
			Slot uint32 `json:"slot"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPlayerReconnected{Slot: p.Slot}, true
	case EventPlayerLeft:
		var p struct {
			Slot uint32 `json:"slot"`
		}
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionPlayerLeft{Slot: p.Slot}, true
	case EventChatMessage:
		var p game.ChatMessage
		if jsoniter.Unmarshal(data, &p) != nil {
			return nil, false
		}
		return game.ActionChatReceived{Msg: p}, true
	default:
		return nil, false
	}
}

package game

// Action is one tagged variant fed to Reduce. Server-confirmed facts and
// locally-triggered UI transitions share the same stream so the reducer
// stays the only writer of GameState.
type Action interface {
	// Name identifies the action in logs and metrics.
	Name() string
}

//
// Lifecycle (server confirmed)
//

type ActionRoomCreated struct {
	RoomCode string
	RoomID   uint64
}

type ActionRoomJoined struct {
	RoomCode string
	RoomID   uint64
	Players  []*Player
}

type ActionRoomReset struct{}

type ActionGameStarted struct {
	Players      []*Player
	StartingSlot uint32
}

type ActionGameFinished struct {
	Result GameResult
}

type ActionLeaveRoom struct{}

//
// Turn flow (server confirmed)
//

type ActionDiceResult struct {
	Slot uint32
	Die1 uint32
	Die2 uint32
}

type ActionPlayerMoved struct {
	Slot     uint32
	From     uint32
	To       uint32
	Teleport bool
	// GoBonus is the salary the server awarded for passing GO during
	// this move; zero when GO was not passed.
	GoBonus int64
}

type ActionTurnChanged struct {
	Slot  uint32
	Round uint32
	Phase TurnPhase
}

type ActionTurnPhaseChanged struct {
	Phase TurnPhase
}

type ActionPendingActionSet struct {
	Pending PendingAction
}

type ActionPendingActionCleared struct{}

//
// Economy (server confirmed)
//

type ActionPropertyBought struct {
	Slot            uint32
	CellIndex       uint32
	Price           int64
	RemainingPoints int64
}

type ActionRentPaid struct {
	FromSlot  uint32
	ToSlot    uint32
	CellIndex uint32
	Amount    int64
	Immune    bool
}

type ActionTaxPaid struct {
	Slot      uint32
	CellIndex uint32
	Amount    int64
}

type ActionHouseBuilt struct {
	Slot      uint32
	CellIndex uint32
	Count     uint32
	Cost      int64
}

type ActionHotelBuilt struct {
	Slot      uint32
	CellIndex uint32
	Cost      int64
}

type ActionBuildingsSold struct {
	Slot   uint32
	Cells  []uint32
	Refund int64
}

type ActionPropertyTransferred struct {
	Transfer PropertyTransfer
}

type ActionBuybackDone struct {
	Slot      uint32
	CellIndex uint32
	Price     int64
}

type ActionForcedTradeDone struct {
	FromSlot uint32
	ToSlot   uint32
	GaveCell uint32
	TookCell uint32
}

type ActionGoBonusAwarded struct {
	Slot   uint32
	Amount int64
}

type ActionPlayerBankrupt struct {
	Slot         uint32
	CreditorSlot uint32
}

type ActionFestivalStarted struct {
	CellIndex  uint32
	Multiplier uint32
}

type ActionFestivalEnded struct{}

type ActionRentFrozen struct {
	Slot      uint32
	CellIndex uint32
	Turns     uint32
}

//
// Prompts (server confirmed)
//

type ActionBuildPromptReceived struct {
	Prompt BuildPrompt
}

type ActionSellPromptReceived struct {
	Prompt SellPrompt
}

type ActionTravelPromptReceived struct {
	Prompt TravelPrompt
}

type ActionBuybackPromptReceived struct {
	Prompt BuybackPrompt
}

type ActionForcedTradePromptReceived struct {
	Prompt ForcedTradePrompt
}

type ActionRentFreezePromptReceived struct {
	Prompt RentFreezePrompt
}

type ActionFestivalPromptReceived struct {
	Prompt FestivalPrompt
}

//
// Cards (server confirmed)
//

type ActionCardDrawn struct {
	Card   Card
	Effect *CardEffect
	// Move is a card-triggered teleport revealed only after dismissal.
	Move *TokenMove
}

//
// Abilities and buffs (server confirmed)
//

type ActionAbilityUsed struct {
	Slot          uint32
	Ability       string
	CooldownTurns uint32
}

type ActionBuffExpired struct {
	Slot uint32
	Buff BuffKind
}

//
// Presence and chat (server confirmed)
//

type ActionPlayerDisconnected struct {
	Slot uint32
}

type ActionPlayerReconnected struct {
	Slot uint32
}

type ActionPlayerLeft struct {
	Slot uint32
}

type ActionChatReceived struct {
	Msg ChatMessage
}

//
// Local UI transitions
//

type ActionDiceAnimationDone struct{}

// ActionStartTokenMove promotes a pending move into the walking
// animation after its start delay elapsed.
type ActionStartTokenMove struct {
	Slot uint32
}

// ActionTokenStepped advances the walker one cell; the final step
// commits the player position and clears the animation.
type ActionTokenStepped struct {
	Slot uint32
}

// ActionCardDismissed closes the card-reveal UI and applies the held
// card effects to the visible board.
type ActionCardDismissed struct{}

type ActionPromoteArtifact struct{}

type ActionDismissArtifact struct{}

type ActionPromoteTurnChange struct{}

type ActionPromoteGameFinished struct{}

// ActionFlushNotifs assigns ids to pending balance deltas, makes them
// visible and unfreezes the displayed balances.
type ActionFlushNotifs struct{}

type ActionExpireNotif struct {
	ID uint32
}

// ActionForceClear is synthesized by the watchdog when the busy
// composition identified by BusyKey has been stuck past its budget.
type ActionForceClear struct {
	BusyKey string
}

type ActionIntentFailed struct {
	Err string
}

type ActionErrorCleared struct{}

func (ActionRoomCreated) Name() string               { return "ROOM_CREATED" }
func (ActionRoomJoined) Name() string                { return "ROOM_JOINED" }
func (ActionRoomReset) Name() string                 { return "ROOM_RESET" }
func (ActionGameStarted) Name() string               { return "GAME_STARTED" }
func (ActionGameFinished) Name() string              { return "GAME_FINISHED" }
func (ActionLeaveRoom) Name() string                 { return "LEAVE_ROOM" }
func (ActionDiceResult) Name() string                { return "DICE_RESULT" }
func (ActionPlayerMoved) Name() string               { return "PLAYER_MOVED" }
func (ActionTurnChanged) Name() string               { return "TURN_CHANGED" }
func (ActionTurnPhaseChanged) Name() string          { return "TURN_PHASE_CHANGED" }
func (ActionPendingActionSet) Name() string          { return "PENDING_ACTION_SET" }
func (ActionPendingActionCleared) Name() string      { return "PENDING_ACTION_CLEARED" }
func (ActionPropertyBought) Name() string            { return "PROPERTY_BOUGHT" }
func (ActionRentPaid) Name() string                  { return "RENT_PAID" }
func (ActionTaxPaid) Name() string                   { return "TAX_PAID" }
func (ActionHouseBuilt) Name() string                { return "HOUSE_BUILT" }
func (ActionHotelBuilt) Name() string                { return "HOTEL_BUILT" }
func (ActionBuildingsSold) Name() string             { return "BUILDINGS_SOLD" }
func (ActionPropertyTransferred) Name() string       { return "PROPERTY_TRANSFERRED" }
func (ActionBuybackDone) Name() string               { return "BUYBACK_DONE" }
func (ActionForcedTradeDone) Name() string           { return "FORCED_TRADE_DONE" }
func (ActionGoBonusAwarded) Name() string            { return "GO_BONUS_AWARDED" }
func (ActionPlayerBankrupt) Name() string            { return "PLAYER_BANKRUPT" }
func (ActionFestivalStarted) Name() string           { return "FESTIVAL_STARTED" }
func (ActionFestivalEnded) Name() string             { return "FESTIVAL_ENDED" }
func (ActionRentFrozen) Name() string                { return "RENT_FROZEN" }
func (ActionBuildPromptReceived) Name() string       { return "BUILD_PROMPT" }
func (ActionSellPromptReceived) Name() string        { return "SELL_PROMPT" }
func (ActionTravelPromptReceived) Name() string      { return "TRAVEL_PROMPT" }
func (ActionBuybackPromptReceived) Name() string     { return "BUYBACK_PROMPT" }
func (ActionForcedTradePromptReceived) Name() string { return "FORCED_TRADE_PROMPT" }
func (ActionRentFreezePromptReceived) Name() string  { return "RENT_FREEZE_PROMPT" }
func (ActionFestivalPromptReceived) Name() string    { return "FESTIVAL_PROMPT" }
func (ActionCardDrawn) Name() string                 { return "CARD_DRAWN" }
func (ActionAbilityUsed) Name() string               { return "ABILITY_USED" }
func (ActionBuffExpired) Name() string               { return "BUFF_EXPIRED" }
func (ActionPlayerDisconnected) Name() string        { return "PLAYER_DISCONNECTED" }
func (ActionPlayerReconnected) Name() string         { return "PLAYER_RECONNECTED" }
func (ActionPlayerLeft) Name() string                { return "PLAYER_LEFT" }
func (ActionChatReceived) Name() string              { return "CHAT_RECEIVED" }
func (ActionDiceAnimationDone) Name() string         { return "DICE_ANIMATION_DONE" }
func (ActionStartTokenMove) Name() string            { return "START_TOKEN_MOVE" }
func (ActionTokenStepped) Name() string              { return "TOKEN_STEPPED" }
func (ActionCardDismissed) Name() string             { return "CARD_DISMISSED" }
func (ActionPromoteArtifact) Name() string           { return "PROMOTE_ARTIFACT" }
func (ActionDismissArtifact) Name() string           { return "DISMISS_ARTIFACT" }
func (ActionPromoteTurnChange) Name() string         { return "PROMOTE_TURN_CHANGE" }
func (ActionPromoteGameFinished) Name() string       { return "PROMOTE_GAME_FINISHED" }
func (ActionFlushNotifs) Name() string               { return "FLUSH_NOTIFS" }
func (ActionExpireNotif) Name() string               { return "EXPIRE_NOTIF" }
func (ActionForceClear) Name() string                { return "FORCE_CLEAR" }
func (ActionIntentFailed) Name() string              { return "INTENT_FAILED" }
func (ActionErrorCleared) Name() string              { return "ERROR_CLEARED" }

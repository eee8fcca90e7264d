package game

/**
NOTE: Player slots are indexed from 1-4 like the seats around the board.
**/

// BoardSize is the number of cells on the board. Cell 0 is GO.
const BoardSize = 40

// GoCellIndex is the cell a token starts on and collects the salary bonus
// when passing.
const GoCellIndex = 0

// MaxChatMessages caps the chat transcript kept in state.
const MaxChatMessages = 100

// View is the top-level screen the client is showing.
type View uint32

const (
	ViewLobby View = iota
	ViewWaiting
	ViewPlaying
	ViewResult
)

var viewName = map[View]string{
	ViewLobby:   "LOBBY",
	ViewWaiting: "WAITING",
	ViewPlaying: "PLAYING",
	ViewResult:  "RESULT",
}

func (v View) String() string {
	return viewName[v]
}

// TurnPhase is the authoritative step of the current player's turn, as last
// confirmed by the server. The client never advances it on its own.
type TurnPhase uint32

const (
	PhaseNone TurnPhase = iota
	PhaseRollDice
	PhaseAwaitingAction
	PhaseAwaitingBuy
	PhaseAwaitingBuild
	PhaseAwaitingSell
	PhaseAwaitingTravel
	PhaseAwaitingForcedTrade
	PhaseAwaitingBuyback
	PhaseAwaitingRentFreeze
	PhaseAwaitingFestival
	PhaseAwaitingAbility
	PhaseAwaitingJailChoice
	PhaseMoving
	PhasePayingRent
	PhasePayingTax
	PhaseCardInPlay
	PhaseResolvingBankruptcy
	PhaseEndTurn
	PhaseGameOver
)

var turnPhaseName = map[TurnPhase]string{
	PhaseNone:                "NONE",
	PhaseRollDice:            "ROLL_DICE",
	PhaseAwaitingAction:      "AWAITING_ACTION",
	PhaseAwaitingBuy:         "AWAITING_BUY",
	PhaseAwaitingBuild:       "AWAITING_BUILD",
	PhaseAwaitingSell:        "AWAITING_SELL",
	PhaseAwaitingTravel:      "AWAITING_TRAVEL",
	PhaseAwaitingForcedTrade: "AWAITING_FORCED_TRADE",
	PhaseAwaitingBuyback:     "AWAITING_BUYBACK",
	PhaseAwaitingRentFreeze:  "AWAITING_RENT_FREEZE",
	PhaseAwaitingFestival:    "AWAITING_FESTIVAL",
	PhaseAwaitingAbility:     "AWAITING_ABILITY",
	PhaseAwaitingJailChoice:  "AWAITING_JAIL_CHOICE",
	PhaseMoving:              "MOVING",
	PhasePayingRent:          "PAYING_RENT",
	PhasePayingTax:           "PAYING_TAX",
	PhaseCardInPlay:          "CARD_IN_PLAY",
	PhaseResolvingBankruptcy: "RESOLVING_BANKRUPTCY",
	PhaseEndTurn:             "END_TURN",
	PhaseGameOver:            "GAME_OVER",
}

func (p TurnPhase) String() string {
	return turnPhaseName[p]
}

// Player is one seat at the board.
type Player struct {
	Slot             uint32          `json:"slot"`
	DisplayName      string          `json:"displayName"`
	Points           int64           `json:"points"`
	Position         uint32          `json:"position"`
	Properties       map[uint32]bool `json:"properties"`
	Houses           map[uint32]uint32 `json:"houses"`
	Hotels           map[uint32]bool `json:"hotels"`
	ImmunityNextRent bool            `json:"immunityNextRent"`
	DoubleRentTurns  uint32          `json:"doubleRentTurns"`
	SkipNextTurn     bool            `json:"skipNextTurn"`
	AbilityCooldown  uint32          `json:"abilityCooldown"`
	IsBankrupt       bool            `json:"isBankrupt"`
	IsConnected      bool            `json:"isConnected"`
}

// Festival is the board-wide rent multiplier. At most one is active.
type Festival struct {
	CellIndex  uint32 `json:"cellIndex"`
	Multiplier uint32 `json:"multiplier"`
}

// DiceRoll is the last server-confirmed roll.
type DiceRoll struct {
	Slot uint32 `json:"slot"`
	Die1 uint32 `json:"die1"`
	Die2 uint32 `json:"die2"`
}

// TokenMove is a movement path waiting for its start trigger.
type TokenMove struct {
	Slot     uint32   `json:"slot"`
	Path     []uint32 `json:"path"`
	Teleport bool     `json:"teleport"`
}

// TokenAnim is a movement path the walker is currently advancing.
type TokenAnim struct {
	Slot        uint32   `json:"slot"`
	Path        []uint32 `json:"path"`
	CurrentStep int      `json:"currentStep"`
}

// Card is a drawn card currently shown to the player. Its side effects are
// held back in PendingCardEffect/PendingCardMove until the card is
// dismissed.
type Card struct {
	Slot        uint32 `json:"slot"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PropertyTransfer moves one cell's ownership between players.
// FromSlot 0 means the bank.
type PropertyTransfer struct {
	FromSlot  uint32 `json:"fromSlot"`
	ToSlot    uint32 `json:"toSlot"`
	CellIndex uint32 `json:"cellIndex"`
}

// BuffKind enumerates card-granted player buffs.
type BuffKind uint32

const (
	BuffImmunityNextRent BuffKind = iota + 1
	BuffDoubleRent
	BuffSkipNextTurn
)

// BuffGrant applies a buff to one player.
type BuffGrant struct {
	Slot  uint32   `json:"slot"`
	Buff  BuffKind `json:"buff"`
	Turns uint32   `json:"turns"`
}

// PointDelta is a raw balance change that has not yet been shown.
type PointDelta struct {
	Slot   uint32 `json:"slot"`
	Amount int64  `json:"amount"`
}

// CardEffect holds the server-confirmed side effects of a drawn card.
// They are computed into state immediately but kept invisible until the
// card-reveal UI is dismissed.
type CardEffect struct {
	StolenProperty *PropertyTransfer `json:"stolenProperty,omitempty"`
	SwapSlots      []uint32          `json:"swapSlots,omitempty"`
	Buffs          []BuffGrant       `json:"buffs,omitempty"`
	PointDeltas    []PointDelta      `json:"pointDeltas,omitempty"`
}

// PointNotif is a visible, auto-expiring balance-change toast.
type PointNotif struct {
	ID     uint32 `json:"id"`
	Slot   uint32 `json:"slot"`
	Amount int64  `json:"amount"`
}

// TurnChange is a queued turn handover not yet applied to the visible
// board.
type TurnChange struct {
	Slot  uint32    `json:"slot"`
	Round uint32    `json:"round"`
	Phase TurnPhase `json:"phase"`
}

// GameResult is the final standing when the game finishes.
type GameResult struct {
	WinnerSlot uint32   `json:"winnerSlot"`
	Standings  []uint32 `json:"standings"`
}

// PendingAction is the action the server is currently offering to the
// local player (e.g. a buy decision on the cell just landed on).
type PendingAction struct {
	Type      string `json:"type"`
	CellIndex uint32 `json:"cellIndex"`
	Price     int64  `json:"price"`
	CanAfford bool   `json:"canAfford"`
}

// ChatMessage is one entry of the capped chat transcript.
type ChatMessage struct {
	Slot uint32 `json:"slot"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// GameState is the single aggregate of client truth. It is created on
// game start, mutated exclusively through Reduce, and discarded on leave
// or room reset.
type GameState struct {
	View              View              `json:"view"`
	RoomCode          string            `json:"roomCode"`
	RoomID            uint64            `json:"roomId"`
	Players           []*Player         `json:"players"`
	TurnPhase         TurnPhase         `json:"turnPhase"`
	CurrentPlayerSlot uint32            `json:"currentPlayerSlot"`
	Round             uint32            `json:"round"`
	Festival          *Festival         `json:"festival,omitempty"`
	PendingAction     *PendingAction    `json:"pendingAction,omitempty"`

	// Dice track.
	DiceRoll      *DiceRoll `json:"diceRoll,omitempty"`
	DiceAnimating bool      `json:"diceAnimating"`

	// Movement tracks, keyed by slot. For any slot at most one of
	// PendingMoves/Animating holds an entry.
	PendingMoves map[uint32]*TokenMove `json:"pendingMoves,omitempty"`
	Animating    map[uint32]*TokenAnim `json:"animating,omitempty"`

	// Card track. Effects stay pending until the card is dismissed.
	ActiveCard        *Card       `json:"activeCard,omitempty"`
	PendingCardEffect *CardEffect `json:"pendingCardEffect,omitempty"`
	PendingCardMove   *TokenMove  `json:"pendingCardMove,omitempty"`

	// Alert/prompt artifacts. Queued entries wait for the scheduler to
	// promote one of them into ActiveArtifact.
	QueuedArtifacts []Artifact `json:"queuedArtifacts,omitempty"`
	ActiveArtifact  *Artifact  `json:"activeArtifact,omitempty"`

	// Turn handover and game end are queued separately; they promote on
	// the narrow busy predicate so a stuck dice clip cannot stall them.
	QueuedTurnChange   *TurnChange `json:"queuedTurnChange,omitempty"`
	QueuedGameFinished *GameResult `json:"queuedGameFinished,omitempty"`
	Result             *GameResult `json:"result,omitempty"`

	// Point-change batching. DisplayPoints is a frozen balance snapshot
	// shown instead of live balances while notifications are pending.
	PendingNotifs []PointDelta     `json:"pendingNotifs,omitempty"`
	PointNotifs   []PointNotif     `json:"pointNotifs,omitempty"`
	NextNotifID   uint32           `json:"nextNotifId"`
	DisplayPoints map[uint32]int64 `json:"displayPoints,omitempty"`

	// FrozenRents maps cell index to remaining turns of a rent freeze.
	FrozenRents map[uint32]uint32 `json:"frozenRents,omitempty"`

	Chat []ChatMessage `json:"chat,omitempty"`

	// Error holds the last rejected intent's message for one-shot display.
	Error string `json:"error,omitempty"`
}

// NewGameState returns the lobby state for a fresh session.
func NewGameState() *GameState {
	return &GameState{
		View:          ViewLobby,
		PendingMoves:  make(map[uint32]*TokenMove),
		Animating:     make(map[uint32]*TokenAnim),
		DisplayPoints: make(map[uint32]int64),
	}
}

// PlayerBySlot returns the player in the given slot, or nil.
func (s *GameState) PlayerBySlot(slot uint32) *Player {
	for _, p := range s.Players {
		if p.Slot == slot {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Reduce always works on a clone
// so that callers holding the previous state never observe mutation.
func (s *GameState) Clone() *GameState {
	n := *s
	n.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		cp.Properties = cloneUint32BoolMap(p.Properties)
		cp.Houses = cloneUint32Uint32Map(p.Houses)
		cp.Hotels = cloneUint32BoolMap(p.Hotels)
		n.Players[i] = &cp
	}
	if s.Festival != nil {
		f := *s.Festival
		n.Festival = &f
	}
	if s.PendingAction != nil {
		pa := *s.PendingAction
		n.PendingAction = &pa
	}
	if s.DiceRoll != nil {
		d := *s.DiceRoll
		n.DiceRoll = &d
	}
	n.PendingMoves = make(map[uint32]*TokenMove, len(s.PendingMoves))
	for slot, m := range s.PendingMoves {
		n.PendingMoves[slot] = m.clone()
	}
	n.Animating = make(map[uint32]*TokenAnim, len(s.Animating))
	for slot, a := range s.Animating {
		ca := *a
		ca.Path = append([]uint32(nil), a.Path...)
		n.Animating[slot] = &ca
	}
	if s.ActiveCard != nil {
		c := *s.ActiveCard
		n.ActiveCard = &c
	}
	if s.PendingCardEffect != nil {
		n.PendingCardEffect = s.PendingCardEffect.clone()
	}
	if s.PendingCardMove != nil {
		n.PendingCardMove = s.PendingCardMove.clone()
	}
	n.QueuedArtifacts = append([]Artifact(nil), s.QueuedArtifacts...)
	if s.ActiveArtifact != nil {
		a := *s.ActiveArtifact
		n.ActiveArtifact = &a
	}
	if s.QueuedTurnChange != nil {
		tc := *s.QueuedTurnChange
		n.QueuedTurnChange = &tc
	}
	if s.QueuedGameFinished != nil {
		n.QueuedGameFinished = s.QueuedGameFinished.clone()
	}
	if s.Result != nil {
		n.Result = s.Result.clone()
	}
	n.PendingNotifs = append([]PointDelta(nil), s.PendingNotifs...)
	n.PointNotifs = append([]PointNotif(nil), s.PointNotifs...)
	n.DisplayPoints = make(map[uint32]int64, len(s.DisplayPoints))
	for slot, pts := range s.DisplayPoints {
		n.DisplayPoints[slot] = pts
	}
	n.FrozenRents = cloneUint32Uint32Map(s.FrozenRents)
	n.Chat = append([]ChatMessage(nil), s.Chat...)
	return &n
}

func (m *TokenMove) clone() *TokenMove {
	if m == nil {
		return nil
	}
	cm := *m
	cm.Path = append([]uint32(nil), m.Path...)
	return &cm
}

func (e *CardEffect) clone() *CardEffect {
	if e == nil {
		return nil
	}
	ce := *e
	if e.StolenProperty != nil {
		t := *e.StolenProperty
		ce.StolenProperty = &t
	}
	ce.SwapSlots = append([]uint32(nil), e.SwapSlots...)
	ce.Buffs = append([]BuffGrant(nil), e.Buffs...)
	ce.PointDeltas = append([]PointDelta(nil), e.PointDeltas...)
	return &ce
}

func (r *GameResult) clone() *GameResult {
	if r == nil {
		return nil
	}
	cr := *r
	cr.Standings = append([]uint32(nil), r.Standings...)
	return &cr
}

func cloneUint32BoolMap(m map[uint32]bool) map[uint32]bool {
	n := make(map[uint32]bool, len(m))
	for k, v := range m {
		n[k] = v
	}
	return n
}

func cloneUint32Uint32Map(m map[uint32]uint32) map[uint32]uint32 {
	n := make(map[uint32]uint32, len(m))
	for k, v := range m {
		n[k] = v
	}
	return n
}

package game

// EffectKind enumerates fire-and-forget audio/FX cues.
type EffectKind uint32

const (
	EffectDiceRoll EffectKind = iota + 1
	EffectTokenStep
	EffectCardDraw
	EffectRentPaid
	EffectTaxPaid
	EffectGoBonus
	EffectBankrupt
	EffectBuild
	EffectTurnChange
	EffectGameOver
	EffectChat
)

// EffectSink is the injected audio/FX collaborator. The engine only
// pushes commands into it and never reads anything back.
type EffectSink interface {
	Init() error
	Dispose()
	PlayEffect(kind EffectKind)
	SetVolume(level uint32)
	Mute(muted bool)
}

// NoopEffectSink discards every cue. Used in tests and headless runs.
type NoopEffectSink struct{}

func (NoopEffectSink) Init() error            { return nil }
func (NoopEffectSink) Dispose()               {}
func (NoopEffectSink) PlayEffect(EffectKind)  {}
func (NoopEffectSink) SetVolume(uint32)       {}
func (NoopEffectSink) Mute(bool)              {}

// cueForAction maps the action stream to sound cues.
func cueForAction(a Action) (EffectKind, bool) {
	switch a.(type) {
	case ActionDiceResult:
		return EffectDiceRoll, true
	case ActionTokenStepped:
		return EffectTokenStep, true
	case ActionCardDrawn:
		return EffectCardDraw, true
	case ActionRentPaid:
		return EffectRentPaid, true
	case ActionTaxPaid:
		return EffectTaxPaid, true
	case ActionGoBonusAwarded:
		return EffectGoBonus, true
	case ActionPlayerBankrupt:
		return EffectBankrupt, true
	case ActionHouseBuilt, ActionHotelBuilt:
		return EffectBuild, true
	case ActionPromoteTurnChange:
		return EffectTurnChange, true
	case ActionPromoteGameFinished:
		return EffectGameOver, true
	case ActionChatReceived:
		return EffectChat, true
	}
	return 0, false
}

package game

// ArtifactKind tags the alert/prompt variants that share the queued ->
// active reveal pipeline. The declaration order below is NOT the
// precedence order; see artifactPrecedence.
type ArtifactKind uint32

const (
	ArtifactNone ArtifactKind = iota
	ArtifactGoBonus
	ArtifactRentAlert
	ArtifactTaxAlert
	ArtifactBankruptAlert
	ArtifactBuildPrompt
	ArtifactSellPrompt
	ArtifactTravelPrompt
	ArtifactBuybackPrompt
	ArtifactForcedTradePrompt
	ArtifactRentFreezePrompt
	ArtifactFestivalPrompt
	ArtifactPresenceNotice
)

var artifactKindName = map[ArtifactKind]string{
	ArtifactNone:              "NONE",
	ArtifactGoBonus:           "GO_BONUS",
	ArtifactRentAlert:         "RENT_ALERT",
	ArtifactTaxAlert:          "TAX_ALERT",
	ArtifactBankruptAlert:     "BANKRUPT_ALERT",
	ArtifactBuildPrompt:       "BUILD_PROMPT",
	ArtifactSellPrompt:        "SELL_PROMPT",
	ArtifactTravelPrompt:      "TRAVEL_PROMPT",
	ArtifactBuybackPrompt:     "BUYBACK_PROMPT",
	ArtifactForcedTradePrompt: "FORCED_TRADE_PROMPT",
	ArtifactRentFreezePrompt:  "RENT_FREEZE_PROMPT",
	ArtifactFestivalPrompt:    "FESTIVAL_PROMPT",
	ArtifactPresenceNotice:    "PRESENCE_NOTICE",
}

func (k ArtifactKind) String() string {
	return artifactKindName[k]
}

// artifactPrecedence lists reveal priority, highest first. When several
// artifacts are queued from one player action (a dice roll can produce a
// go bonus, a rent alert and a bankruptcy at once), they become visible
// in this order regardless of the order the server delivered them.
var artifactPrecedence = []ArtifactKind{
	ArtifactGoBonus,
	ArtifactRentAlert,
	ArtifactTaxAlert,
	ArtifactBankruptAlert,
	ArtifactBuybackPrompt,
	ArtifactForcedTradePrompt,
	ArtifactRentFreezePrompt,
	ArtifactFestivalPrompt,
	ArtifactBuildPrompt,
	ArtifactSellPrompt,
	ArtifactTravelPrompt,
	ArtifactPresenceNotice,
}

var artifactRank = buildArtifactRank()

func buildArtifactRank() map[ArtifactKind]int {
	rank := make(map[ArtifactKind]int, len(artifactPrecedence))
	for i, k := range artifactPrecedence {
		rank[k] = i
	}
	return rank
}

// RentAlert reports rent paid between two players.
type RentAlert struct {
	FromSlot  uint32 `json:"fromSlot"`
	ToSlot    uint32 `json:"toSlot"`
	CellIndex uint32 `json:"cellIndex"`
	Amount    int64  `json:"amount"`
	Immune    bool   `json:"immune"`
}

// TaxAlert reports a tax payment to the bank.
type TaxAlert struct {
	Slot      uint32 `json:"slot"`
	CellIndex uint32 `json:"cellIndex"`
	Amount    int64  `json:"amount"`
}

// GoBonus reports a passed-GO salary award.
type GoBonus struct {
	Slot   uint32 `json:"slot"`
	Amount int64  `json:"amount"`
}

// BankruptAlert reports a player going bankrupt. CreditorSlot 0 means
// the bank collected the remaining assets.
type BankruptAlert struct {
	Slot         uint32 `json:"slot"`
	CreditorSlot uint32 `json:"creditorSlot"`
}

// BuildPrompt offers house/hotel construction choices.
type BuildPrompt struct {
	Slot      uint32   `json:"slot"`
	Buildable []uint32 `json:"buildable"`
	Budget    int64    `json:"budget"`
}

// SellPrompt asks the player to raise funds by selling buildings.
type SellPrompt struct {
	Slot     uint32   `json:"slot"`
	Required int64    `json:"required"`
	Sellable []uint32 `json:"sellable"`
}

// TravelPrompt offers teleport destinations.
type TravelPrompt struct {
	Slot         uint32   `json:"slot"`
	Destinations []uint32 `json:"destinations"`
}

// BuybackPrompt offers repurchasing a lost property.
type BuybackPrompt struct {
	Slot      uint32 `json:"slot"`
	CellIndex uint32 `json:"cellIndex"`
	Price     int64  `json:"price"`
}

// ForcedTradePrompt forces a property exchange choice.
type ForcedTradePrompt struct {
	Slot        uint32   `json:"slot"`
	GiveOptions []uint32 `json:"giveOptions"`
	TakeOptions []uint32 `json:"takeOptions"`
}

// RentFreezePrompt offers freezing rent on one owned cell.
type RentFreezePrompt struct {
	Slot    uint32   `json:"slot"`
	Targets []uint32 `json:"targets"`
}

// FestivalPrompt offers placing the festival multiplier.
type FestivalPrompt struct {
	Slot    uint32   `json:"slot"`
	Options []uint32 `json:"options"`
}

// PresenceNotice reports a player disconnecting or coming back.
type PresenceNotice struct {
	Slot      uint32 `json:"slot"`
	Connected bool   `json:"connected"`
}

// Artifact is a tagged variant; Kind selects which payload pointer is
// set. Exactly one payload is non-nil.
type Artifact struct {
	Kind        ArtifactKind       `json:"kind"`
	RentAlert   *RentAlert         `json:"rentAlert,omitempty"`
	TaxAlert    *TaxAlert          `json:"taxAlert,omitempty"`
	GoBonus     *GoBonus           `json:"goBonus,omitempty"`
	Bankrupt    *BankruptAlert     `json:"bankrupt,omitempty"`
	Build       *BuildPrompt       `json:"build,omitempty"`
	Sell        *SellPrompt        `json:"sell,omitempty"`
	Travel      *TravelPrompt      `json:"travel,omitempty"`
	Buyback     *BuybackPrompt     `json:"buyback,omitempty"`
	ForcedTrade *ForcedTradePrompt `json:"forcedTrade,omitempty"`
	RentFreeze  *RentFreezePrompt  `json:"rentFreeze,omitempty"`
	Festival    *FestivalPrompt    `json:"festival,omitempty"`
	Presence    *PresenceNotice    `json:"presence,omitempty"`
}

// turnScoped reports whether the artifact belongs to one player's turn
// and must be dropped when that turn ends.
func (a Artifact) turnScoped() bool {
	switch a.Kind {
	case ArtifactBuildPrompt, ArtifactSellPrompt, ArtifactTravelPrompt,
		ArtifactBuybackPrompt, ArtifactForcedTradePrompt,
		ArtifactRentFreezePrompt, ArtifactFestivalPrompt:
		return true
	}
	return false
}

// nextQueuedArtifact picks the queued artifact with the highest reveal
// precedence. Ties keep FIFO order. Returns the index or -1.
func nextQueuedArtifact(queued []Artifact) int {
	best := -1
	bestRank := len(artifactPrecedence) + 1
	for i, a := range queued {
		r, ok := artifactRank[a.Kind]
		if !ok {
			r = len(artifactPrecedence)
		}
		if r < bestRank {
			best = i
			bestRank = r
		}
	}
	return best
}

package game

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Delays holds the reveal/animation budgets in milliseconds. These are
// presentation pacing only; the server's own turn timer remains the
// authority for forcing progress.
type Delays struct {
	DiceRoll           uint32 `yaml:"diceRoll"`
	BeforeMove         uint32 `yaml:"beforeMove"`
	BeforeTeleport     uint32 `yaml:"beforeTeleport"`
	TokenStep          uint32 `yaml:"tokenStep"`
	CardDisplay        uint32 `yaml:"cardDisplay"`
	AlertDismiss       uint32 `yaml:"alertDismiss"`
	PromptDismiss      uint32 `yaml:"promptDismiss"`
	NotifTTL           uint32 `yaml:"notifTTL"`
	WatchdogBudget     uint32 `yaml:"watchdogBudget"`
	WatchdogCardBudget uint32 `yaml:"watchdogCardBudget"`
}

// DefaultDelays mirrors delays.yaml for callers that do not load a file.
func DefaultDelays() Delays {
	return Delays{
		DiceRoll:           2300,
		BeforeMove:         2500,
		BeforeTeleport:     200,
		TokenStep:          350,
		CardDisplay:        6000,
		AlertDismiss:       3000,
		PromptDismiss:      15000,
		NotifTTL:           2500,
		WatchdogBudget:     5000,
		WatchdogCardBudget: 20000,
	}
}

func ParseDelayConfig(delaysFile string) (Delays, error) {
	bytes, err := ioutil.ReadFile(delaysFile)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error reading delay config file [%s]", delaysFile))
	}

	var data Delays
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error parsing delays YAML file [%s]", delaysFile))
	}

	return data, nil
}

func millis(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// moveStartDelay is short for a card-triggered teleport and long enough
// for a preceding dice clip otherwise.
func (d Delays) moveStartDelay(teleport bool) time.Duration {
	if teleport {
		return millis(d.BeforeTeleport)
	}
	return millis(d.BeforeMove)
}

// dismissDelay picks the auto-dismiss timeout for an active artifact.
// Prompts carry more content and get the long budget.
func (d Delays) dismissDelay(kind ArtifactKind) time.Duration {
	switch kind {
	case ArtifactBuildPrompt, ArtifactSellPrompt, ArtifactTravelPrompt,
		ArtifactBuybackPrompt, ArtifactForcedTradePrompt,
		ArtifactRentFreezePrompt, ArtifactFestivalPrompt:
		return millis(d.PromptDismiss)
	}
	return millis(d.AlertDismiss)
}

// watchdogBudget sizes the liveness budget to the busy composition: a
// detailed card on screen earns the long budget, plain movement or dice
// the short one.
func (d Delays) watchdogBudget(s *GameState) time.Duration {
	if s.ActiveCard != nil {
		return millis(d.WatchdogCardBudget)
	}
	return millis(d.WatchdogBudget)
}

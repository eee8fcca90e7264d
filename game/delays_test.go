package game

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDelayConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "delays")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "delays.yaml")
	content := []byte("diceRoll: 1000\ntokenStep: 100\nwatchdogBudget: 3000\n")
	if err := ioutil.WriteFile(file, content, 0644); err != nil {
		t.Fatal(err)
	}

	delays, err := ParseDelayConfig(file)
	if err != nil {
		t.Fatalf("ParseDelayConfig: %s", err)
	}
	if delays.DiceRoll != 1000 || delays.TokenStep != 100 || delays.WatchdogBudget != 3000 {
		t.Errorf("parsed %+v", delays)
	}
}

func TestParseDelayConfigMissingFile(t *testing.T) {
	if _, err := ParseDelayConfig("no-such-file.yaml"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestDismissDelayByKind(t *testing.T) {
	d := DefaultDelays()
	if got := d.dismissDelay(ArtifactRentAlert); got != millis(d.AlertDismiss) {
		t.Errorf("alert dismiss = %s", got)
	}
	if got := d.dismissDelay(ArtifactBuybackPrompt); got != millis(d.PromptDismiss) {
		t.Errorf("prompt dismiss = %s", got)
	}
}

func TestMoveStartCoversDiceClip(t *testing.T) {
	d := DefaultDelays()
	// A dice roll and its move arrive together; the walk must not start
	// while the dice clip is still playing.
	if d.BeforeMove < d.DiceRoll {
		t.Errorf("move start delay %dms is shorter than the dice clip %dms", d.BeforeMove, d.DiceRoll)
	}
	if got := d.moveStartDelay(false); got != millis(d.BeforeMove) {
		t.Errorf("walk start delay = %s", got)
	}
	if got := d.moveStartDelay(true); got != millis(d.BeforeTeleport) {
		t.Errorf("teleport start delay = %s", got)
	}
}

func TestWatchdogBudgetSizing(t *testing.T) {
	d := DefaultDelays()
	s := startedState()
	if got := d.watchdogBudget(s); got != millis(d.WatchdogBudget) {
		t.Errorf("plain budget = %s", got)
	}
	s = Reduce(s, ActionCardDrawn{Card: Card{Slot: 1, Title: "Windfall"}})
	if got := d.watchdogBudget(s); got != millis(d.WatchdogCardBudget) {
		t.Errorf("card budget = %s", got)
	}
	if millis(d.WatchdogCardBudget) <= millis(d.CardDisplay) {
		t.Errorf("card budget %s must exceed the card display time %s",
			millis(d.WatchdogCardBudget), time.Duration(d.CardDisplay)*time.Millisecond)
	}
}

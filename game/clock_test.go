package game

import (
	"testing"
	"time"
)

func TestVirtualClockFiresInDueOrder(t *testing.T) {
	c := NewVirtualClock()
	var fired []string
	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(250 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Errorf("fired = %v, want [a b]", fired)
	}
	c.Advance(100 * time.Millisecond)
	if len(fired) != 3 || fired[2] != "c" {
		t.Errorf("fired = %v, want [a b c]", fired)
	}
}

func TestVirtualClockStop(t *testing.T) {
	c := NewVirtualClock()
	fired := false
	timer := c.AfterFunc(100*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Errorf("Stop on a pending timer should report true")
	}
	if timer.Stop() {
		t.Errorf("second Stop should report false")
	}
	c.Advance(time.Second)
	if fired {
		t.Errorf("stopped timer fired")
	}
	if c.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", c.PendingTimers())
	}
}

func TestVirtualClockCascade(t *testing.T) {
	c := NewVirtualClock()
	var fired []string
	c.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, "outer")
		c.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "inner") })
	})

	// The nested timer comes due within the same window and must fire.
	c.Advance(200 * time.Millisecond)
	if len(fired) != 2 || fired[1] != "inner" {
		t.Errorf("fired = %v, want [outer inner]", fired)
	}
}

func TestVirtualClockAdvancesNow(t *testing.T) {
	c := NewVirtualClock()
	start := c.Now()
	c.Advance(5 * time.Second)
	if got := c.Now().Sub(start); got != 5*time.Second {
		t.Errorf("Now moved %s, want 5s", got)
	}
}

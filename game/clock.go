package game

import (
	"sort"
	"sync"
	"time"
)

// Clock abstracts timer scheduling so every promotion gate and the
// watchdog run on a deterministic, cancelable source. Production wraps
// time.AfterFunc; tests drive a virtual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) ClockTimer
}

// ClockTimer is a cancelable pending callback.
type ClockTimer interface {
	// Stop cancels the timer; it reports whether the callback had not
	// fired yet.
	Stop() bool
}

type realClock struct{}

// NewRealClock returns the wall-clock implementation.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) ClockTimer {
	return time.AfterFunc(d, f)
}

// VirtualClock is a manually advanced clock. Timers fire synchronously,
// in due order, from Advance.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Time
	nextID uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	clock   *VirtualClock
	id      uint64
	due     time.Time
	f       func()
	stopped bool
}

// NewVirtualClock starts a virtual clock at an arbitrary fixed origin.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: time.Unix(0, 0)}
}

func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *VirtualClock) AfterFunc(d time.Duration, f func()) ClockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	t := &virtualTimer{clock: c, id: c.nextID, due: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *virtualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward, firing due timers in order. Callbacks
// may arm new timers; those fire too if they come due within the window.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.popNextDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

func (c *VirtualClock) popNextDue(target time.Time) *virtualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due.Equal(c.timers[j].due) {
			return c.timers[i].id < c.timers[j].id
		}
		return c.timers[i].due.Before(c.timers[j].due)
	})
	for i, t := range c.timers {
		if t.stopped {
			continue
		}
		if t.due.After(target) {
			break
		}
		t.stopped = true
		c.timers = append(c.timers[:i], c.timers[i+1:]...)
		if t.due.After(c.now) {
			c.now = t.due
		}
		return t
	}
	return nil
}

// PendingTimers reports how many un-fired timers are armed.
func (c *VirtualClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, t := range c.timers {
		if !t.stopped {
			count++
		}
	}
	return count
}

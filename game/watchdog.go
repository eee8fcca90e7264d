package game

import (
	"sync"

	"github.com/rs/zerolog/log"

	"tycoon.com/client/logging"
	"tycoon.com/client/util"
)

var watchdogLogger = log.With().Str("logger_name", "game::watchdog").Logger()

// Watchdog guards liveness. Promotions are gated on view-layer
// completion signals (dice clip done, card dismissed); if such a signal
// is ever missed, every downstream promotion would stall forever. The
// watchdog fingerprints the busy composition and, if it has not changed
// by the time its budget elapses, synthesizes a force-clear that applies
// all pending effects and drops only the reveal animations.
type Watchdog struct {
	roomCode string
	delays   Delays
	clock    Clock
	dispatch func(Action)

	mu      sync.Mutex
	lastKey string
	timer   ClockTimer
}

func NewWatchdog(roomCode string, delays Delays, clock Clock, dispatch func(Action)) *Watchdog {
	return &Watchdog{
		roomCode: roomCode,
		delays:   delays,
		clock:    clock,
		dispatch: dispatch,
	}
}

// Observe re-arms the watchdog whenever the busy key changes. An idle
// state disarms it.
func (w *Watchdog) Observe(s *GameState) {
	key := BusyKey(s)
	w.mu.Lock()
	defer w.mu.Unlock()
	if key == w.lastKey {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.lastKey = key
	if key == "" {
		return
	}
	budget := w.delays.watchdogBudget(s)
	armedKey := key
	var t ClockTimer
	t = w.clock.AfterFunc(budget, func() {
		// Forget the armed key before dispatching, so that if the
		// state settles on the same busy key again (a same-kind
		// artifact revealed behind the cleared one) the next Observe
		// arms a fresh budget instead of going blind.
		w.mu.Lock()
		if w.timer == t {
			w.lastKey = ""
			w.timer = nil
		}
		w.mu.Unlock()
		watchdogLogger.Warn().
			Str(logging.RoomCodeKey, w.roomCode).
			Str(logging.BusyKeyKey, armedKey).
			Msgf("Busy state stuck past %s. Force clearing.", budget)
		util.Metrics.WatchdogFired()
		w.dispatch(ActionForceClear{BusyKey: armedKey})
	})
	w.timer = t
}

// Stop disarms the watchdog for engine teardown.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.lastKey = ""
}

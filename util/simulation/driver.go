package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"tycoon.com/client/game"
	"tycoon.com/client/logging"
	"tycoon.com/client/util/random"
)

var simLogger = log.With().Str("logger_name", "simulation::driver").Logger()

// drainBudget is how far the virtual clock advances at the end of a run;
// long enough for every delay and watchdog budget to elapse several
// times over.
const drainBudget = 5 * time.Minute

// Config drives one batch of simulated games.
type Config struct {
	NumGames int
	// Seed 0 means pick a fresh random seed and log it.
	Seed   int64
	Delays game.Delays
}

// Run plays Config.NumGames synthetic games against a virtual clock,
// checking state invariants after every applied action and quiescence
// after every drain. Returns the first violation.
func Run(cfg Config) error {
	if cfg.NumGames <= 0 {
		cfg.NumGames = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = random.NewSeed()
	}
	simLogger.Info().Msgf("Simulating %d games with seed %d", cfg.NumGames, seed)

	rng := random.NewRand(seed)
	for i := 0; i < cfg.NumGames; i++ {
		if err := runOne(i, rng, cfg.Delays); err != nil {
			return fmt.Errorf("game %d (seed %d): %s", i, seed, err)
		}
	}
	return nil
}

type runner struct {
	clock  *game.VirtualClock
	engine *game.Engine
	rng    *rand.Rand
	seq    uint64
	err    error
}

func runOne(index int, rng *rand.Rand, delays game.Delays) error {
	roomCode := fmt.Sprintf("SIM%03d", index)
	r := &runner{
		clock: game.NewVirtualClock(),
		rng:   rng,
	}
	// The engine is never Run(); dispatch stays synchronous so every
	// timer callback and event applies inline under the virtual clock.
	r.engine = game.NewEngine(roomCode, uint64(index+1), delays, r.clock, nil, nil, nil)

	players := []*game.Player{
		{Slot: 1, DisplayName: "sim-1", Points: 15000, IsConnected: true},
		{Slot: 2, DisplayName: "sim-2", Points: 15000, IsConnected: true},
		{Slot: 3, DisplayName: "sim-3", Points: 15000, IsConnected: true},
		{Slot: 4, DisplayName: "sim-4", Points: 15000, IsConnected: true},
	}
	r.event(game.ActionRoomJoined{RoomCode: roomCode, RoomID: uint64(index + 1), Players: players})
	r.event(game.ActionGameStarted{Players: players, StartingSlot: 1})

	rounds := 5 + r.rng.Intn(15)
	round := uint32(1)
	for turn := 0; turn < rounds*4 && r.err == nil; turn++ {
		slot := uint32(turn%4) + 1
		r.playTurn(slot)
		if slot == 4 {
			round++
		}
		next := uint32((turn+1)%4) + 1
		r.event(game.ActionTurnChanged{Slot: next, Round: round, Phase: game.PhaseRollDice})
		r.drain()
	}
	if r.err != nil {
		return r.err
	}

	r.event(game.ActionGameFinished{Result: game.GameResult{
		WinnerSlot: uint32(r.rng.Intn(4)) + 1,
		Standings:  []uint32{1, 2, 3, 4},
	}})
	r.drain()
	if r.err != nil {
		return r.err
	}

	s := r.engine.State()
	if err := checkQuiescent(s); err != nil {
		return err
	}
	if s.View != game.ViewResult {
		return fmt.Errorf("game never reached the result view")
	}
	r.engine.Stop()
	return nil
}

// event numbers and applies one synthetic server event, then validates
// the resulting state.
func (r *runner) event(a game.Action) {
	if r.err != nil {
		return
	}
	r.seq++
	r.engine.DispatchEvent(r.seq, a)
	if err := checkInvariants(r.engine.State()); err != nil {
		simLogger.Error().
			Str(logging.ActionKey, a.Name()).
			Msgf("Invariant violated: %s", err)
		r.err = fmt.Errorf("after %s: %s", a.Name(), err)
	}
}

// drain advances the virtual clock until every reveal, animation and
// notification has run its course.
func (r *runner) drain() {
	if r.err != nil {
		return
	}
	r.clock.Advance(drainBudget)
	if err := checkInvariants(r.engine.State()); err != nil {
		r.err = fmt.Errorf("after drain: %s", err)
	}
}

func (r *runner) playTurn(slot uint32) {
	if r.err != nil {
		return
	}

	s := r.engine.State()
	p := s.PlayerBySlot(slot)
	die1 := uint32(r.rng.Intn(6)) + 1
	die2 := uint32(r.rng.Intn(6)) + 1
	from := p.Position
	to := (from + die1 + die2) % game.BoardSize
	var goBonus int64
	if to < from {
		goBonus = 2000
	}

	r.event(game.ActionDiceResult{Slot: slot, Die1: die1, Die2: die2})
	r.event(game.ActionPlayerMoved{Slot: slot, From: from, To: to, GoBonus: goBonus})

	// Sometimes interleave the landing outcome before the walk finishes;
	// the reducer and scheduler must absorb either ordering.
	early := r.rng.Intn(2) == 0
	if !early {
		r.drain()
	}

	switch r.rng.Intn(5) {
	case 0:
		r.landBuy(slot, to)
	case 1:
		r.landRent(slot, to)
	case 2:
		r.landCard(slot)
	case 3:
		r.event(game.ActionTaxPaid{Slot: slot, CellIndex: to, Amount: 400})
	case 4:
		// Nothing on this cell.
	}
	r.drain()
}

func (r *runner) landBuy(slot uint32, cell uint32) {
	s := r.engine.State()
	for _, p := range s.Players {
		if p.Properties[cell] {
			return
		}
	}
	p := s.PlayerBySlot(slot)
	price := int64(600 + r.rng.Intn(10)*100)
	r.event(game.ActionPropertyBought{
		Slot: slot, CellIndex: cell,
		Price: price, RemainingPoints: p.Points - price,
	})
}

func (r *runner) landRent(slot uint32, cell uint32) {
	s := r.engine.State()
	for _, owner := range s.Players {
		if owner.Slot != slot && owner.Properties[cell] {
			r.event(game.ActionRentPaid{
				FromSlot: slot, ToSlot: owner.Slot,
				CellIndex: cell, Amount: int64(200 + r.rng.Intn(8)*50),
			})
			return
		}
	}
}

func (r *runner) landCard(slot uint32) {
	amount := int64(r.rng.Intn(21)-10) * 100
	var effect *game.CardEffect
	if amount != 0 {
		effect = &game.CardEffect{
			PointDeltas: []game.PointDelta{{Slot: slot, Amount: amount}},
		}
	}
	r.event(game.ActionCardDrawn{
		Card:   game.Card{Slot: slot, Title: "Chance", Description: "Synthetic card"},
		Effect: effect,
	})
}

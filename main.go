package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"tycoon.com/client/game"
	"tycoon.com/client/logging"
	"tycoon.com/client/nats"
	"tycoon.com/client/rest"
	"tycoon.com/client/util"
	"tycoon.com/client/util/random"
	"tycoon.com/client/util/simulation"
)

var runServer *bool
var runSimulation *bool
var numGames *uint
var simSeed *int64
var delayConfigFile *string
var mainLogger = logging.GetZeroLogger("main::main", nil)

func init() {
	runServer = flag.Bool("server", true, "runs the room client")
	runSimulation = flag.Bool("simulate", false, "runs randomized playthroughs against a virtual clock")
	numGames = flag.Uint("num-games", 100, "number of games when -simulate is set")
	simSeed = flag.Int64("seed", 0, "simulation seed; 0 picks a random one")
	delayConfigFile = flag.String("delays", "delays.yaml", "YAML file containing reveal pacing")
}

func main() {
	rand.Seed(random.NewSeed())

	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	delays, err := game.ParseDelayConfig(*delayConfigFile)
	if err != nil {
		mainLogger.Warn().Msgf("Falling back to default delays: %s", err)
		delays = game.DefaultDelays()
	}

	if *runSimulation {
		return simulation.Run(simulation.Config{
			NumGames: int(*numGames),
			Seed:     *simSeed,
			Delays:   delays,
		})
	}

	gameManager := game.CreateGameManager(delays)
	return runWithNats(gameManager)
}

func runWithNats(gameManager *game.Manager) error {
	mainLogger.Info().Msg("Running the room client with NATS")

	natsGameManager, err := nats.NewGameManager(gameManager)
	if err != nil {
		return errors.Wrap(err, "Error creating NATS game manager")
	}
	defer natsGameManager.Close()

	// Reattach the room from the previous run, if one was persisted.
	if code, err := gameManager.CurrentRoomCode(); err == nil && code != "" {
		mainLogger.Info().Str(logging.RoomCodeKey, code).Msg("Resuming persisted room")
		if _, err := natsGameManager.ResumeRoom(code); err != nil {
			mainLogger.Error().Msgf("Unable to resume room %s: %s", code, err)
		}
	}

	rest.RunRestServer(natsGameManager, gameManager)
	return nil
}

package nats

import (
	natsgo "github.com/nats-io/nats.go"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tycoon.com/client/game"
	"tycoon.com/client/logging"
	"tycoon.com/client/util"
)

var natsGMLogger = log.With().Str("logger_name", "nats::gamemanager").Logger()

// GameManager pairs room engines with their NATS attachments.
type GameManager struct {
	nc      *natsgo.Conn
	manager *game.Manager

	activeRooms cmap.ConcurrentMap
}

// NewGameManager connects to the NATS server named by the environment
// and wraps the engine manager.
func NewGameManager(manager *game.Manager) (*GameManager, error) {
	natsURL := util.Env.GetNatsURL()
	natsGMLogger.Info().Msgf("NATS url: %s", natsURL)

	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Error connecting to NATS server %s", natsURL)
	}

	return &GameManager{
		nc:          nc,
		manager:     manager,
		activeRooms: cmap.New(),
	}, nil
}

// NewRoom starts an engine for a room and attaches it to the room's
// subjects.
func (gm *GameManager) NewRoom(roomCode string, roomID uint64) (*NatsRoom, error) {
	engine, err := gm.manager.NewEngine(roomCode, roomID, func() {
		gm.onEngineCrash(roomCode)
	})
	if err != nil {
		return nil, err
	}
	room, err := newNatsRoom(gm.nc, engine)
	if err != nil {
		gm.manager.EndEngine(roomCode)
		return nil, err
	}
	gm.activeRooms.Set(roomCode, room)
	util.Metrics.SetActiveRoomsCount(gm.activeRooms.Count())
	return room, nil
}

// ResumeRoom restores a room from its persisted snapshot and reattaches
// it to the event stream.
func (gm *GameManager) ResumeRoom(roomCode string) (*NatsRoom, error) {
	engine, err := gm.manager.ResumeEngine(roomCode, func() {
		gm.onEngineCrash(roomCode)
	})
	if err != nil {
		return nil, err
	}
	room, err := newNatsRoom(gm.nc, engine)
	if err != nil {
		gm.manager.DetachEngine(roomCode)
		return nil, err
	}
	gm.activeRooms.Set(roomCode, room)
	util.Metrics.SetActiveRoomsCount(gm.activeRooms.Count())
	return room, nil
}

// GetRoom returns the attached room, or nil.
func (gm *GameManager) GetRoom(roomCode string) *NatsRoom {
	v, ok := gm.activeRooms.Get(roomCode)
	if !ok {
		return nil
	}
	return v.(*NatsRoom)
}

// DetachRoom unsubscribes and stops a room's engine, keeping its
// persisted snapshot so the room can be resumed.
func (gm *GameManager) DetachRoom(roomCode string) {
	gm.removeRoom(roomCode)
	gm.manager.DetachEngine(roomCode)
}

// EndRoom unsubscribes, stops the engine and clears all persisted
// traces of the room.
func (gm *GameManager) EndRoom(roomCode string) {
	gm.removeRoom(roomCode)
	gm.manager.EndEngine(roomCode)
}

func (gm *GameManager) removeRoom(roomCode string) {
	if v, ok := gm.activeRooms.Get(roomCode); ok {
		v.(*NatsRoom).cleanup()
	}
	gm.activeRooms.Remove(roomCode)
	util.Metrics.SetActiveRoomsCount(gm.activeRooms.Count())
}

func (gm *GameManager) onEngineCrash(roomCode string) {
	natsGMLogger.Error().
		Str(logging.RoomCodeKey, roomCode).
		Msg("Engine crashed; detaching room")
	gm.removeRoom(roomCode)
	gm.manager.DetachEngine(roomCode)
}

// Close detaches every room and drains the NATS connection.
func (gm *GameManager) Close() {
	for _, code := range gm.activeRooms.Keys() {
		gm.DetachRoom(code)
	}
	gm.nc.Close()
}

package game

import (
	"fmt"
	"sync"

	"tycoon.com/client/util"
)

// Manager wires engines to their shared collaborators (clock, delays,
// effect sink, persistence) and tracks the ones currently attached.
type Manager struct {
	delays  Delays
	clock   Clock
	sink    EffectSink
	persist PersistEngineState
	rooms   RoomKeyStore

	lock    sync.Mutex
	engines map[string]*Engine
}

var managerCreated *Manager

// CreateGameManager builds the process-wide manager. Persistence method
// comes from the environment ("redis" or "memory").
func CreateGameManager(delays Delays) *Manager {
	if managerCreated != nil {
		return managerCreated
	}

	var persist PersistEngineState
	var rooms RoomKeyStore
	if util.Env.GetPersistMethod() == "redis" {
		redisHost := util.Env.GetRedisHost()
		redisPort := util.Env.GetRedisPort()
		tracker := NewRedisSnapshotTracker(
			fmt.Sprintf("%s:%d", redisHost, redisPort),
			util.Env.GetRedisPW(),
			util.Env.GetRedisDB(),
		)
		persist = tracker
		rooms = tracker
	} else {
		tracker := NewMemorySnapshotTracker()
		persist = tracker
		rooms = tracker
	}

	managerCreated = NewManager(delays, NewRealClock(), NoopEffectSink{}, persist, rooms)
	return managerCreated
}

// NewManager builds a manager with explicit collaborators.
func NewManager(delays Delays, clock Clock, sink EffectSink,
	persist PersistEngineState, rooms RoomKeyStore) *Manager {
	return &Manager{
		delays:  delays,
		clock:   clock,
		sink:    sink,
		persist: persist,
		rooms:   rooms,
		engines: make(map[string]*Engine),
	}
}

// NewEngine creates and starts an engine for a room, saving the durable
// room key for reconnection.
func (m *Manager) NewEngine(roomCode string, roomID uint64, crashHandler func()) (*Engine, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, exists := m.engines[roomCode]; exists {
		return nil, fmt.Errorf("Engine for room %s already exists", roomCode)
	}
	e := NewEngine(roomCode, roomID, m.delays, m.clock, m.sink, m.persist, crashHandler)
	if m.rooms != nil {
		if err := m.rooms.SaveCurrentRoom(roomCode); err != nil {
			return nil, err
		}
	}
	m.engines[roomCode] = e
	e.Run()
	return e, nil
}

// ResumeEngine restores an engine from its persisted snapshot.
func (m *Manager) ResumeEngine(roomCode string, crashHandler func()) (*Engine, error) {
	if m.persist == nil {
		return nil, RoomNotFoundError{RoomCode: roomCode}
	}
	snap, err := m.persist.Load(roomCode)
	if err != nil {
		return nil, err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, exists := m.engines[roomCode]; exists {
		return nil, fmt.Errorf("Engine for room %s already exists", roomCode)
	}
	e := NewEngine(roomCode, snap.State.RoomID, m.delays, m.clock, m.sink, m.persist, crashHandler)
	e.Restore(snap)
	m.engines[roomCode] = e
	e.Run()
	return e, nil
}

// CurrentRoomCode returns the durable room key saved by the last
// attached engine, or "" when none was persisted.
func (m *Manager) CurrentRoomCode() (string, error) {
	if m.rooms == nil {
		return "", nil
	}
	return m.rooms.LoadCurrentRoom()
}

// GetEngine returns the attached engine for a room, or nil.
func (m *Manager) GetEngine(roomCode string) *Engine {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.engines[roomCode]
}

// ActiveRoomCodes lists the rooms with attached engines.
func (m *Manager) ActiveRoomCodes() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	codes := make([]string, 0, len(m.engines))
	for code := range m.engines {
		codes = append(codes, code)
	}
	return codes
}

// DetachEngine snapshots and stops an engine, keeping persisted state.
func (m *Manager) DetachEngine(roomCode string) {
	m.lock.Lock()
	e := m.engines[roomCode]
	delete(m.engines, roomCode)
	m.lock.Unlock()
	if e != nil {
		e.Detach()
	}
}

// EndEngine stops an engine and clears all persisted traces of the room.
func (m *Manager) EndEngine(roomCode string) {
	m.lock.Lock()
	e := m.engines[roomCode]
	delete(m.engines, roomCode)
	m.lock.Unlock()
	if e != nil {
		e.Stop()
	}
	if m.persist != nil {
		m.persist.Remove(roomCode)
	}
	if m.rooms != nil {
		m.rooms.ClearCurrentRoom()
	}
}

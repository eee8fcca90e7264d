package game

import "sync"

// MemorySnapshotTracker keeps snapshots in process memory. Used for
// tests and when no redis is configured.
type MemorySnapshotTracker struct {
	lock        sync.Mutex
	snapshots   map[string]*Snapshot
	currentRoom string
}

func NewMemorySnapshotTracker() *MemorySnapshotTracker {
	return &MemorySnapshotTracker{
		snapshots: make(map[string]*Snapshot),
	}
}

func (m *MemorySnapshotTracker) Load(roomCode string) (*Snapshot, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	snap, ok := m.snapshots[roomCode]
	if !ok {
		return nil, SnapshotNotFoundError{RoomCode: roomCode}
	}
	return snap, nil
}

func (m *MemorySnapshotTracker) Save(roomCode string, snap *Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshots[roomCode] = snap
	return nil
}

func (m *MemorySnapshotTracker) Remove(roomCode string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.snapshots, roomCode)
	return nil
}

func (m *MemorySnapshotTracker) SaveCurrentRoom(roomCode string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.currentRoom = roomCode
	return nil
}

func (m *MemorySnapshotTracker) LoadCurrentRoom() (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.currentRoom, nil
}

func (m *MemorySnapshotTracker) ClearCurrentRoom() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.currentRoom = ""
	return nil
}

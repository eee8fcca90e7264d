package game

import "time"

// Snapshot is the persisted engine state used to resume a session after
// a reconnect or process restart.
type Snapshot struct {
	RoomCode     string     `json:"roomCode"`
	State        *GameState `json:"state"`
	LastEventSeq uint64     `json:"lastEventSeq"`
	SavedAt      time.Time  `json:"savedAt"`
}

// PersistEngineState stores engine snapshots keyed by room code.
type PersistEngineState interface {
	Load(roomCode string) (*Snapshot, error)
	Save(roomCode string, snap *Snapshot) error
	Remove(roomCode string) error
}

// RoomKeyStore is the single durable key written on join/create and
// cleared on leave/finish; it only supports reconnection.
type RoomKeyStore interface {
	SaveCurrentRoom(roomCode string) error
	LoadCurrentRoom() (string, error)
	ClearCurrentRoom() error
}

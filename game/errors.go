package game

import "fmt"

type RoomNotFoundError struct {
	RoomCode string
}

func (e RoomNotFoundError) Error() string {
	return fmt.Sprintf("Room %s is not found", e.RoomCode)
}

type SnapshotNotFoundError struct {
	RoomCode string
}

func (e SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("Snapshot for room %s is not found", e.RoomCode)
}

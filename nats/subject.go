package nats

import (
	"fmt"
)

// GetRoomEventSubject is the server -> client broadcast stream for a
// room.
func GetRoomEventSubject(roomCode string) string {
	return fmt.Sprintf("room.%s.events", roomCode)
}

// GetRoomIntentSubject carries client -> server intent requests; the
// reply holds the acknowledgment.
func GetRoomIntentSubject(roomCode string) string {
	return fmt.Sprintf("room.%s.intents", roomCode)
}

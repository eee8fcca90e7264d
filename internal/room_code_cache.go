package internal

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// RoomCodeCacheStruct maps numeric room ids to the short join codes
// players type, in both directions. Entries for long-gone rooms age out
// of the LRU instead of leaking.
type RoomCodeCacheStruct struct {
	roomIDToCode *lru.Cache
	roomCodeToID *lru.Cache
}

var RoomCodeCache = createCache()

func createCache() *RoomCodeCacheStruct {
	c, err := NewCache()
	if err != nil {
		panic("Cannot initialize room code cache")
	}
	return c
}

func NewCache() (*RoomCodeCacheStruct, error) {
	size := 100000
	roomIDToCode, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize roomIDToCode cache")
	}
	roomCodeToID, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize roomCodeToID cache")
	}
	return &RoomCodeCacheStruct{
		roomIDToCode: roomIDToCode,
		roomCodeToID: roomCodeToID,
	}, nil
}

func (c *RoomCodeCacheStruct) Add(roomID uint64, roomCode string) error {
	if roomID == 0 {
		return fmt.Errorf("Invalid room ID [%d]", roomID)
	} else if roomCode == "" {
		return fmt.Errorf("Invalid room code [%s]", roomCode)
	}

	c.roomIDToCode.Add(roomID, roomCode)
	c.roomCodeToID.Add(roomCode, roomID)
	return nil
}

func (c *RoomCodeCacheStruct) RoomIDToCode(roomID uint64) (string, bool) {
	v, exists := c.roomIDToCode.Get(roomID)
	if !exists {
		return "", false
	}
	return v.(string), true
}

func (c *RoomCodeCacheStruct) RoomCodeToID(roomCode string) (uint64, bool) {
	v, exists := c.roomCodeToID.Get(roomCode)
	if !exists {
		return 0, false
	}
	return v.(uint64), true
}

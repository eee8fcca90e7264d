package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCodeCache(t *testing.T) {
	c, err := NewCache()
	require.NoError(t, err)
	require.NoError(t, c.Add(7, "ABCD"))

	code, ok := c.RoomIDToCode(7)
	assert.True(t, ok)
	assert.Equal(t, "ABCD", code)

	id, ok := c.RoomCodeToID("ABCD")
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	_, ok = c.RoomIDToCode(99)
	assert.False(t, ok)
}

func TestRoomCodeCacheRejectsInvalid(t *testing.T) {
	c, err := NewCache()
	require.NoError(t, err)
	assert.Error(t, c.Add(0, "ABCD"))
	assert.Error(t, c.Add(7, ""))
}

package game

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

const currentRoomKey = "room|current"

// RedisSnapshotTracker stores snapshots and the durable current-room
// key in redis.
type RedisSnapshotTracker struct {
	rdclient *redis.Client
}

func NewRedisSnapshotTracker(redisURL string, redisPW string, redisDB int) *RedisSnapshotTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisSnapshotTracker{
		rdclient: rdclient,
	}
}

func snapshotKey(roomCode string) string {
	return fmt.Sprintf("snapshot|%s", roomCode)
}

func (r *RedisSnapshotTracker) Load(roomCode string) (*Snapshot, error) {
	snapBytes, err := r.rdclient.Get(context.Background(), snapshotKey(roomCode)).Result()
	if err == redis.Nil {
		return nil, SnapshotNotFoundError{RoomCode: roomCode}
	} else if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	err = jsoniter.Unmarshal([]byte(snapBytes), snap)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *RedisSnapshotTracker) Save(roomCode string, snap *Snapshot) error {
	snapBytes, err := jsoniter.Marshal(snap)
	if err != nil {
		return err
	}
	return r.rdclient.Set(context.Background(), snapshotKey(roomCode), snapBytes, 0).Err()
}

func (r *RedisSnapshotTracker) Remove(roomCode string) error {
	return r.rdclient.Del(context.Background(), snapshotKey(roomCode)).Err()
}

func (r *RedisSnapshotTracker) SaveCurrentRoom(roomCode string) error {
	return r.rdclient.Set(context.Background(), currentRoomKey, roomCode, 0).Err()
}

func (r *RedisSnapshotTracker) LoadCurrentRoom() (string, error) {
	roomCode, err := r.rdclient.Get(context.Background(), currentRoomKey).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return roomCode, nil
}

func (r *RedisSnapshotTracker) ClearCurrentRoom() error {
	return r.rdclient.Del(context.Background(), currentRoomKey).Err()
}

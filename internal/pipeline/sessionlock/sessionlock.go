// Package sessionlock serializes ProcessObservation calls on the same
// session (spec.md §5: "two concurrent observations on the same session
// produce undefined archetype evolution").
package sessionlock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL   = 30 * time.Second
	keyPrefix = "pipeline:session-lock:"
)

var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker serializes work for a given session id.
type Locker interface {
	// Lock blocks until the session's lock is acquired or ctx is done.
	// The returned func releases it; it must be called exactly once.
	Lock(ctx context.Context, sessionID int64) (release func(), err error)
}

// redisLocker is the distributed implementation, used when a Redis
// client is configured (ground: spec.md §9 "a keyed queue ... is
// preferable for production").
type redisLocker struct {
	client *redis.Client
}

// NewRedis builds a Locker backed by Redis SET NX PX + a Lua CAS unlock.
func NewRedis(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Lock(ctx context.Context, sessionID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", keyPrefix, sessionID)
	token := randomToken()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("sessionlock: acquire: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		unlockScript.Run(releaseCtx, l.client, []string{key}, token)
	}
	return release, nil
}

func randomToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// memLocker is the in-process implementation used by the pipeline tests;
// cmd/server always builds the Redis-backed locker.
type memLocker struct {
	locks sync.Map // map[int64]*sync.Mutex
}

// NewInProcess builds a Locker backed by a sync.Map of per-session mutexes.
func NewInProcess() Locker {
	return &memLocker{}
}

func (l *memLocker) Lock(ctx context.Context, sessionID int64) (func(), error) {
	value, _ := l.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)

	done := make(chan struct{})
	go func() {
		mu.Lock()
		close(done)
	}()

	select {
	case <-done:
		return mu.Unlock, nil
	case <-ctx.Done():
		go func() { <-done; mu.Unlock() }()
		return nil, ctx.Err()
	}
}

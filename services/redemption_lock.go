package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockHeld = errors.New("redemption already in progress")

// RedemptionLock serializes redemption of a single coupon code.
type RedemptionLock interface {
	Acquire(ctx context.Context, code string) (release func(), err error)
}

// LocalLock is the single-process lock used when Redis is not configured.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]struct{})}
}

func (l *LocalLock) Acquire(ctx context.Context, code string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[code]; ok {
		return nil, ErrLockHeld
	}
	l.held[code] = struct{}{}
	return func() {
		l.mu.Lock()
		delete(l.held, code)
		l.mu.Unlock()
	}, nil
}

// unlockScript deletes the key only while it still carries our token, so a
// holder whose TTL expired cannot release someone else's lock.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock is a SET NX lock shared by every replica.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLock(client *redis.Client, ttl time.Duration) *RedisLock {
	return &RedisLock{client: client, ttl: ttl}
}

func (l *RedisLock) Acquire(ctx context.Context, code string) (func(), error) {
	key := "rclinic:redeem:" + code
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire redemption lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return func() {
		// The request context may already be cancelled by the time we release.
		unlockScript.Run(context.Background(), l.client, []string{key}, token)
	}, nil
}

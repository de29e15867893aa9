package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another process holds an account's reload lock.
var ErrLocked = errors.New("reload already in progress")

const lockPrefix = "catalog-sync:reload:"

// LocalLocker serializes reloads of the same account within this process.
type LocalLocker struct {
	slots *xsync.MapOf[string, chan struct{}]
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: xsync.NewMapOf[string, chan struct{}]()}
}

// Lock waits for key to be free or for ctx to end.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	slot, _ := l.slots.LoadOrCompute(key, func() chan struct{} {
		return make(chan struct{}, 1)
	})

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RedisLocker holds reload locks in Redis so that several instances sharing
// one database never reload the same account at once. The local locker is
// taken first so that callers in this process queue instead of failing.
type RedisLocker struct {
	client *redis.Client
	local  *LocalLocker
	ttl    time.Duration
}

// NewRedisLocker parses a Redis URL (e.g. "redis://host:6379/0").
func NewRedisLocker(rawURL string, ttl time.Duration) (*RedisLocker, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return newRedisLocker(redis.NewClient(opts), ttl), nil
}

func newRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisLocker{client: client, local: NewLocalLocker(), ttl: ttl}
}

// unlockScript deletes the key only while it still holds our token.
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`

// Lock acquires key with SET NX. ErrLocked is returned when another process holds it.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	releaseLocal, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}

	redisKey := lockPrefix + key
	token := randomToken()
	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		releaseLocal()
		return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
	}
	if !ok {
		releaseLocal()
		return nil, ErrLocked
	}

	return func() {
		// The reload's context may already be cancelled.
		_ = l.client.Eval(context.Background(), unlockScript, []string{redisKey}, token).Err()
		releaseLocal()
	}, nil
}

// Ping checks the connection to Redis.
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close shuts down the Redis client.
func (l *RedisLocker) Close() error {
	return l.client.Close()
}

// randomToken identifies the holder of a redis lock.
func randomToken() string {
	return uuid.NewString()
}

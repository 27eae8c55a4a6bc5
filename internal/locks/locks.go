// Package locks provides short-lived exclusive leases keyed by name.
package locks

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another holder owns the lease.
var ErrHeld = errors.New("lock already held")

// Locker acquires a lease that expires after ttl unless released earlier.
// The returned release func only removes the lease it created.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RedisLocker uses SET NX PX with a compare-and-delete release.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(c *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: c, prefix: prefix}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	k := l.prefix + key
	tok := newToken()
	ok, err := l.client.SetNX(ctx, k, tok, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}
	return func() {
		_ = releaseScript.Run(context.Background(), l.client, []string{k}, tok).Err()
	}, nil
}

type lease struct {
	token   string
	expires time.Time
}

// MemoryLocker is the in-process Locker.
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{leases: make(map[string]lease), now: time.Now}
}

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if cur, ok := l.leases[key]; ok && now.Before(cur.expires) {
		return nil, ErrHeld
	}
	tok := newToken()
	l.leases[key] = lease{token: tok, expires: now.Add(ttl)}
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.leases[key]; ok && cur.token == tok {
			delete(l.leases, key)
		}
	}, nil
}

package envelope

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/vocapulse/internal/domain"
	"github.com/pscheid92/vocapulse/internal/metrics"
)

// RedisStore keeps sealed envelopes in Redis, one key per slot, namespaced
// per client so concurrent users never share state.
//
// Staleness is always decided at read time from the envelope's saved_at.
// The Redis-side expiry is set to twice the TTL and exists only as garbage
// collection for slots nobody reads again.
type RedisStore struct {
	rdb       goredis.Cmdable
	clock     clockwork.Clock
	ttl       time.Duration
	namespace string
}

var _ domain.EnvelopeStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed envelope store. The namespace
// isolates one client (typically the user ID). A ttl of 0 means DefaultTTL.
func NewRedisStore(rdb goredis.Cmdable, clock clockwork.Clock, namespace string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, clock: clock, ttl: ttl, namespace: namespace}
}

// NewRedisClient creates a go-redis client from a URL (e.g.
// "redis://localhost:6379") with the circuit breaker hook installed.
func NewRedisClient(redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := goredis.NewClient(opts)
	rdb.AddHook(NewBreakerHook())
	return rdb, nil
}

func (s *RedisStore) key(slot string) string {
	return "envelope:" + s.namespace + ":" + slot
}

// Put seals payload with the current time and overwrites the slot
// unconditionally. Storage failures are logged and swallowed.
func (s *RedisStore) Put(ctx context.Context, slot string, payload any) {
	data, err := seal(payload, s.clock.Now())
	if err != nil {
		slog.Warn("envelope put failed", "slot", slot, "error", err)
		metrics.EnvelopeWritesTotal.WithLabelValues(slot, "error").Inc()
		return
	}

	if err := s.rdb.Set(ctx, s.key(slot), data, 2*s.ttl).Err(); err != nil {
		slog.Warn("envelope put failed", "slot", slot, "error", err)
		metrics.EnvelopeWritesTotal.WithLabelValues(slot, "error").Inc()
		return
	}
	metrics.EnvelopeWritesTotal.WithLabelValues(slot, "ok").Inc()
}

// Get decodes the slot into out. Absent, corrupt, and expired entries all
// report false; corrupt and expired entries are deleted so the failure
// cannot repeat. Redis errors degrade to a miss, never an error.
func (s *RedisStore) Get(ctx context.Context, slot string, out any) bool {
	data, err := s.rdb.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.EnvelopeReadsTotal.WithLabelValues(slot, string(readMiss)).Inc()
		return false
	}
	if err != nil {
		slog.Warn("envelope get failed", "slot", slot, "error", err)
		metrics.EnvelopeReadsTotal.WithLabelValues(slot, string(readError)).Inc()
		return false
	}

	result := open(data, s.clock.Now(), s.ttl, out)
	metrics.EnvelopeReadsTotal.WithLabelValues(slot, string(result)).Inc()
	if result != readHit {
		if err := s.rdb.Del(ctx, s.key(slot)).Err(); err != nil {
			slog.Warn("envelope delete failed", "slot", slot, "error", err)
		}
		slog.Debug("envelope discarded", "slot", slot, "reason", string(result))
		return false
	}
	return true
}

// Clear removes the slot; clearing an absent slot is a no-op.
func (s *RedisStore) Clear(ctx context.Context, slot string) {
	if err := s.rdb.Del(ctx, s.key(slot)).Err(); err != nil {
		slog.Warn("envelope clear failed", "slot", slot, "error", err)
	}
}

package envelope

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/vocapulse/internal/domain"
	"github.com/pscheid92/vocapulse/internal/metrics"
)

// MemoryStore keeps sealed envelopes in a mutex-guarded map. It holds the
// serialized bytes rather than live values so reads exercise the same
// decode-and-expire path as the Redis store.
type MemoryStore struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[string][]byte
}

var _ domain.EnvelopeStore = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory envelope store. A ttl of 0 means
// DefaultTTL.
func NewMemoryStore(clock clockwork.Clock, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string][]byte),
	}
}

// Put seals payload with the current time and overwrites the slot
// unconditionally.
func (s *MemoryStore) Put(_ context.Context, slot string, payload any) {
	data, err := seal(payload, s.clock.Now())
	if err != nil {
		slog.Warn("envelope put failed", "slot", slot, "error", err)
		metrics.EnvelopeWritesTotal.WithLabelValues(slot, "error").Inc()
		return
	}

	s.mu.Lock()
	s.entries[slot] = data
	s.mu.Unlock()
	metrics.EnvelopeWritesTotal.WithLabelValues(slot, "ok").Inc()
}

// Get decodes the slot into out. Absent, corrupt, and expired entries all
// report false; corrupt and expired entries are deleted on the way out.
func (s *MemoryStore) Get(_ context.Context, slot string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.entries[slot]
	if !ok {
		metrics.EnvelopeReadsTotal.WithLabelValues(slot, string(readMiss)).Inc()
		return false
	}

	result := open(data, s.clock.Now(), s.ttl, out)
	metrics.EnvelopeReadsTotal.WithLabelValues(slot, string(result)).Inc()
	if result != readHit {
		delete(s.entries, slot)
		slog.Debug("envelope discarded", "slot", slot, "reason", string(result))
		return false
	}
	return true
}

// Clear removes the slot; clearing an absent slot is a no-op.
func (s *MemoryStore) Clear(_ context.Context, slot string) {
	s.mu.Lock()
	delete(s.entries, slot)
	s.mu.Unlock()
}

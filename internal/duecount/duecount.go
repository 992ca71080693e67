// Package duecount holds the process-wide "cards due right now" value.
//
// The broadcaster is an explicit, injectable single-value store: it is
// constructed once at the application root and handed to every component
// that reads or publishes the count. There is no package-level singleton.
package duecount

import (
	"sync"

	"github.com/pscheid92/vocapulse/internal/metrics"
)

// Broadcaster is a single shared integer with many readers and a
// writer-of-record per update. Subscribers get a nudge on every Set;
// the channel conflates, so a dropped notification just means the
// subscriber re-reads Get a moment later.
type Broadcaster struct {
	mu          sync.RWMutex
	value       int
	subscribers map[chan int]struct{}
}

// NewBroadcaster creates a broadcaster with the value 0, the state before
// any authoritative source has reported.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan int]struct{}),
	}
}

// Set replaces the shared value and notifies subscribers. Callers must only
// publish counts received from an authoritative source: a server response,
// or totalDue - reviewed from a just-resumed persisted session. Deriving the
// count from a local queue length is a bug - the queue is a snapshot that
// goes stale against server-side scheduling.
func (b *Broadcaster) Set(count int) {
	b.mu.Lock()
	b.value = count
	for ch := range b.subscribers {
		select {
		case ch <- count:
		default:
		}
	}
	b.mu.Unlock()

	metrics.DueCount.Set(float64(count))
}

// Get returns the current value, 0 before any writer has run.
func (b *Broadcaster) Get() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Subscribe registers an observer channel. The channel is buffered and
// never blocks Set; callers must Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan int {
	ch := make(chan int, 1)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes an observer channel registered with Subscribe.
func (b *Broadcaster) Unsubscribe(ch chan int) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
}

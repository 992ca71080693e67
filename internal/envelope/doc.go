// Package envelope implements TTL-bounded, single-slot persistence for
// controller state.
//
// A payload is wrapped with its write timestamp ("sealed") and staleness is
// decided at read time, never at write time. The store is a pure cache of
// convenience: reads degrade corrupt or expired entries to a miss and delete
// them, writes swallow storage failures. Consumers must always be able to
// rebuild state from the trainer API when a slot comes back absent.
//
// Two implementations share the contract: MemoryStore for embedding without
// external infrastructure, RedisStore for state that survives process
// restarts. BreakerHook protects the Redis path so an unavailable Redis
// degrades to fast misses instead of slow ones.
package envelope

package envelope

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/vocapulse/internal/domain"
)

func setupRedisStore(t *testing.T, namespace string) (*RedisStore, *clockwork.FakeClock) {
	t.Helper()
	client := setupTestClient(t)
	clock := clockwork.NewFakeClock()
	return NewRedisStore(client, clock, namespace, 0), clock
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t, "user1")
	ctx := context.Background()

	want := testSession()
	store.Put(ctx, domain.SlotPracticeSession, want)

	var got domain.PracticeSession
	require.True(t, store.Get(ctx, domain.SlotPracticeSession, &got))
	assert.Equal(t, want, got)
}

func TestRedisStore_ExpiryDeletesKey(t *testing.T) {
	store, clock := setupRedisStore(t, "user1")
	ctx := context.Background()

	store.Put(ctx, domain.SlotPracticeSession, testSession())
	clock.Advance(DefaultTTL)

	var got domain.PracticeSession
	require.False(t, store.Get(ctx, domain.SlotPracticeSession, &got))

	n, err := store.rdb.Exists(ctx, store.key(domain.SlotPracticeSession)).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "expired key must be deleted on read")
}

func TestRedisStore_CorruptValueIsAMiss(t *testing.T) {
	store, _ := setupRedisStore(t, "user1")
	ctx := context.Background()

	err := store.rdb.Set(ctx, store.key(domain.SlotPracticeSession), "{broken", 0).Err()
	require.NoError(t, err)

	var got domain.PracticeSession
	require.False(t, store.Get(ctx, domain.SlotPracticeSession, &got))

	n, err := store.rdb.Exists(ctx, store.key(domain.SlotPracticeSession)).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "corrupt key must be deleted on read")
}

func TestRedisStore_NamespacesAreIsolated(t *testing.T) {
	client := setupTestClient(t)
	clock := clockwork.NewFakeClock()
	alice := NewRedisStore(client, clock, "alice", 0)
	bob := NewRedisStore(client, clock, "bob", 0)
	ctx := context.Background()

	alice.Put(ctx, domain.SlotPracticeSession, testSession())

	var got domain.PracticeSession
	assert.False(t, bob.Get(ctx, domain.SlotPracticeSession, &got))
	assert.True(t, alice.Get(ctx, domain.SlotPracticeSession, &got))
}

func TestRedisStore_ClearIsIdempotent(t *testing.T) {
	store, _ := setupRedisStore(t, "user1")
	ctx := context.Background()

	store.Put(ctx, domain.SlotAddCardDraft, domain.DraftRecord{SourceWord: "사과"})
	store.Clear(ctx, domain.SlotAddCardDraft)
	store.Clear(ctx, domain.SlotAddCardDraft)

	var rec domain.DraftRecord
	assert.False(t, store.Get(ctx, domain.SlotAddCardDraft, &rec))
}

func TestRedisStore_KeysCarryGarbageCollectionExpiry(t *testing.T) {
	store, _ := setupRedisStore(t, "user1")
	ctx := context.Background()

	store.Put(ctx, domain.SlotPracticeSession, testSession())

	ttl, err := store.rdb.TTL(ctx, store.key(domain.SlotPracticeSession)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, DefaultTTL, "redis expiry is GC only and must outlive the logical TTL")
	assert.LessOrEqual(t, ttl, 2*DefaultTTL)
}

func TestRedisStore_LastWriteWins(t *testing.T) {
	store, _ := setupRedisStore(t, "user1")
	ctx := context.Background()

	first := testSession()
	store.Put(ctx, domain.SlotPracticeSession, first)

	second := testSession()
	second.Reviewed = 2
	second.CurrentIndex = 2
	store.Put(ctx, domain.SlotPracticeSession, second)

	var got domain.PracticeSession
	require.True(t, store.Get(ctx, domain.SlotPracticeSession, &got))
	assert.Equal(t, second, got)
}

func TestRedisStore_FreshWriteSurvivesShortWait(t *testing.T) {
	store, clock := setupRedisStore(t, "user1")
	ctx := context.Background()

	store.Put(ctx, domain.SlotPracticeSession, testSession())
	clock.Advance(5 * time.Minute)

	var got domain.PracticeSession
	assert.True(t, store.Get(ctx, domain.SlotPracticeSession, &got))
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
)

func newRedisStore(t *testing.T, idleTimeout time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, idleTimeout), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, time.Hour)

	s := New("c1")
	RecordTurn(s, domain.Clarify([]domain.Candidate{
		{EntryID: "e1", Question: "What are your hours?", Answer: "9-5", Score: 0.6},
	}))
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ConversationID)
	assert.Equal(t, domain.DecisionClarify, got.LastDecision.Kind)
	require.Len(t, got.Pending, 1)
	assert.Equal(t, "e1", got.Pending[0].EntryID)
}

func TestRedisStoreMissing(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreIdleExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	require.NoError(t, store.Put(ctx, New("c1")))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, time.Hour)

	require.NoError(t, store.Put(ctx, New("c1")))
	require.NoError(t, store.Delete(ctx, "c1"))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
)

func clarifyDecision() domain.MatchDecision {
	return domain.Clarify([]domain.Candidate{
		{EntryID: "e1", Question: "What are your hours?", Answer: "9-5", Score: 0.6},
		{EntryID: "e2", Question: "Where are you located?", Answer: "123 Main St", Score: 0.58},
	})
}

func TestRecordTurnArmsClarification(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	assert.Equal(t, 1, s.TurnCount)
	assert.Len(t, s.Pending, 2)
	assert.Equal(t, domain.DecisionClarify, s.LastDecision.Kind)
}

func TestRecordTurnClearsPendingOnOtherDecisions(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	RecordTurn(s, domain.NoMatch())
	assert.Empty(t, s.Pending)
	assert.Equal(t, 2, s.TurnCount)
}

func TestResolveClarificationByNumber(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	picked, ok := ResolveClarification(s, "2")
	require.True(t, ok)
	assert.Equal(t, "e2", picked.EntryID)
	assert.Empty(t, s.Pending)
}

func TestResolveClarificationByWordOverlap(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	picked, ok := ResolveClarification(s, "hours")
	require.True(t, ok)
	assert.Equal(t, "e1", picked.EntryID)
}

func TestResolveClarificationNoMatch(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	_, ok := ResolveClarification(s, "something else entirely")
	assert.False(t, ok)
	// pending survives a failed resolution; the engine spends the budget
	assert.Len(t, s.Pending, 2)
}

func TestResolveClarificationOutOfRangeNumber(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	_, ok := ResolveClarification(s, "7")
	assert.False(t, ok)
}

func TestResolveClarificationWithoutPending(t *testing.T) {
	s := New("c1")
	_, ok := ResolveClarification(s, "1")
	assert.False(t, ok)
}

func TestGiveUpClarification(t *testing.T) {
	s := New("c1")
	RecordTurn(s, clarifyDecision())
	s.PendingTurns = 1
	GiveUpClarification(s)
	assert.Empty(t, s.Pending)
	assert.Zero(t, s.PendingTurns)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	s := New("c1")
	RecordTurn(s, clarifyDecision())
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.TurnCount, got.TurnCount)
	assert.Len(t, got.Pending, 2)

	// stored copy is isolated from later caller mutation
	s.TurnCount = 99
	got2, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, got2.TurnCount)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Put(ctx, New("c1")))
	require.NoError(t, store.Delete(ctx, "c1"))
	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	s := New("c1")
	s.LastActivity = time.Now().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	stale := New("old")
	stale.LastActivity = time.Now().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, stale))
	require.NoError(t, store.Put(ctx, New("fresh")))

	removed := store.Sweep()
	assert.Equal(t, 1, removed)

	got, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

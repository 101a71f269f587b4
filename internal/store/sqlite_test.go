package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func TestSaveAndListScores(t *testing.T) {
	db := newTestDB(t)

	for _, v := range []uint32{105, 15, 0} {
		require.NoError(t, db.SaveScore(&Score{Player: "alice", Value: v}))
	}
	require.NoError(t, db.SaveScore(&Score{Player: "bob", Value: 45}))

	scores, err := db.ListScores("alice")
	require.NoError(t, err)
	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, "alice", s.Player)
		assert.False(t, s.Revealed)
		assert.Zero(t, s.Value, "sealed values must not leak")
		assert.False(t, s.CreatedAt.IsZero())
	}

	none, err := db.ListScores("carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRevealScore(t *testing.T) {
	db := newTestDB(t)
	first := &Score{Player: "alice", Value: 105}
	second := &Score{Player: "alice", Value: 15}
	require.NoError(t, db.SaveScore(first))
	require.NoError(t, db.SaveScore(second))

	revealed, err := db.RevealScore("alice", second.ID)
	require.NoError(t, err)
	assert.True(t, revealed.Revealed)
	assert.Equal(t, uint32(15), revealed.Value)
	require.NotNil(t, revealed.RevealedAt)

	scores, err := db.ListScores("alice")
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, first.ID, scores[0].ID, "order follows submission")
	assert.False(t, scores[0].Revealed)
	assert.Zero(t, scores[0].Value)
	assert.True(t, scores[1].Revealed)
	assert.Equal(t, uint32(15), scores[1].Value)
}

func TestRevealKeepsFirstRevealTime(t *testing.T) {
	db := newTestDB(t)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	db.now = func() time.Time { return clock }

	s := &Score{Player: "alice", Value: 7}
	require.NoError(t, db.SaveScore(s))

	first, err := db.RevealScore("alice", s.ID)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	second, err := db.RevealScore("alice", s.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.RevealedAt, *second.RevealedAt)
}

func TestRevealScoreOwnership(t *testing.T) {
	db := newTestDB(t)
	s := &Score{Player: "alice", Value: 30}
	require.NoError(t, db.SaveScore(s))

	_, err := db.RevealScore("bob", s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.RevealScore("alice", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	scores, err := db.ListScores("alice")
	require.NoError(t, err)
	assert.False(t, scores[0].Revealed)
}

func TestMigrationIdempotency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Migrate(), "migration run %d", i+1)
	}

	s := &Score{Player: "alice", Value: 1}
	require.NoError(t, db.SaveScore(s))
	scores, err := db.ListScores("alice")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, s.ID, scores[0].ID)
}

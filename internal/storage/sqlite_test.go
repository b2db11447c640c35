package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 400, 300} {
		_, err := store.SaveScore("jewels", score)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("other", 999)
	require.NoError(t, err)

	scores, err := store.TopScores("jewels", 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{400, 300, 200}, []int{scores[0].Score, scores[1].Score, scores[2].Score})
	for _, s := range scores {
		assert.Equal(t, "jewels", s.GameID)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("jewels")
	require.NoError(t, err)
	assert.Zero(t, high)

	store.SaveScore("jewels", 120)
	store.SaveScore("jewels", 80)
	store.SaveScore("other", 500)

	high, err = store.HighScore("jewels")
	require.NoError(t, err)
	assert.Equal(t, 120, high)

	require.NoError(t, store.ClearScores("jewels"))
	scores, err := store.TopScores("jewels", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	other, err := store.TopScores("other", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "clearing one game must not touch another")
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GameStats("jewels")
	require.NoError(t, err)
	assert.Zero(t, stats.GamesCount)
	assert.True(t, stats.LastPlayed.IsZero())

	store.SaveScore("jewels", 10)
	store.SaveScore("jewels", 30)

	stats, err = store.GameStats("jewels")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 30, stats.HighScore)
	assert.InDelta(t, 20.0, stats.AvgScore, 0.001)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestStoreSaveLoadGame(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame("default", "jewels")
	require.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, store.SaveGame("default", "jewels", "blob-1", 7, 42))
	first, err := store.LoadGame("default", "jewels")
	require.NoError(t, err)
	assert.Equal(t, "blob-1", first.Data)
	assert.Equal(t, 7, first.Moves)
	assert.Equal(t, 42, first.Score)
	assert.False(t, first.UpdatedAt.IsZero())

	id, err := uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	require.NoError(t, store.SaveGame("default", "jewels", "blob-2", 3, 90))
	second, err := store.LoadGame("default", "jewels")
	require.NoError(t, err)
	assert.Equal(t, "blob-2", second.Data)
	assert.Equal(t, 90, second.Score)
	assert.Equal(t, first.ID, second.ID, "overwrite keeps the row id")
}

func TestStoreSavesAreScopedBySlot(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveGame("alice", "jewels", "a", 1, 10))
	require.NoError(t, store.SaveGame("bob", "jewels", "b", 2, 20))

	saves, err := store.ListSaves("jewels")
	require.NoError(t, err)
	require.Len(t, saves, 2)

	slots := []string{saves[0].Slot, saves[1].Slot}
	assert.ElementsMatch(t, []string{"alice", "bob"}, slots)

	require.NoError(t, store.DeleteGame("alice", "jewels"))
	_, err = store.LoadGame("alice", "jewels")
	assert.ErrorIs(t, err, ErrNoSave)

	bob, err := store.LoadGame("bob", "jewels")
	require.NoError(t, err)
	assert.Equal(t, "b", bob.Data)

	assert.NoError(t, store.DeleteGame("nobody", "jewels"), "deleting an empty slot is fine")
}

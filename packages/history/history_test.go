package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmeter/taskmeter/packages/stats"
)

func TestStore_RecordAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordRun("waiting time", stats.Stats{
		Samples: 3, Min: 1, Max: 5, Mean: 3, StdDev: 2,
	}))
	require.NoError(t, store.RecordRun("service time", stats.Stats{
		Samples: 3, Min: 0.5, Max: 2, Mean: 1.2, StdDev: 0.7,
	}))

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "waiting time", runs[0].Label)
	assert.Equal(t, 3, runs[0].Stats.Samples)
	assert.Equal(t, 5.0, runs[0].Stats.Max)
	assert.Equal(t, "service time", runs[1].Label)
	assert.False(t, runs[0].RecordedAt.IsZero())
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun("run", stats.Stats{Samples: 1, Min: 1, Max: 1, Mean: 1}))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newSnapshot := func(id string) *domain.Snapshot {
		return &domain.Snapshot{
			RunID:      id,
			Machine:    "compare",
			Cells:      "_XX0XX1_",
			Cursor:     6,
			State:      6,
			Halted:     true,
			Steps:      18,
			HaltLabel:  "A < B",
			StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			FinishedAt: time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot(runID)

		err := store.Save(ctx, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Cells, loaded.Cells)
		assert.Equal(t, snap.State, loaded.State)
		assert.Equal(t, snap.Cursor, loaded.Cursor)
		assert.Equal(t, snap.Steps, loaded.Steps)
		assert.True(t, loaded.Halted)
		assert.Equal(t, "A < B", loaded.HaltLabel)
		assert.True(t, snap.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		snap := newSnapshot(runID)
		snap.Error = "out of bound: cannot move left of cell 0"
		snap.Halted = false
		require.NoError(t, store.Save(ctx, snap))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.False(t, loaded.Halted)
		assert.Equal(t, snap.Error, loaded.Error)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Cells = "mutated"

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Cells)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newSnapshot(runID))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Delete of a missing run is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, newSnapshot(id1)))
		require.NoError(t, store.Save(ctx, newSnapshot(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})

	t.Run("Concurrent Save and Load", func(t *testing.T) {
		const workers = 8
		errs := make(chan error, workers*2)

		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := fmt.Sprintf("%s-concurrent-%d", runID, i)
				snap := newSnapshot(id)
				snap.Steps = i
				if err := store.Save(ctx, snap); err != nil {
					errs <- err
					return
				}
				loaded, err := store.Load(ctx, id)
				if err != nil {
					errs <- err
					return
				}
				if loaded.Steps != i {
					errs <- fmt.Errorf("run %s: loaded steps %d, want %d", id, loaded.Steps, i)
				}
				if _, err := store.List(ctx); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		for i := range workers {
			_ = store.Delete(ctx, fmt.Sprintf("%s-concurrent-%d", runID, i))
		}
	})
}

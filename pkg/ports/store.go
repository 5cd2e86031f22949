package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// SnapshotStore defines the interface for persisting finished runs.
type SnapshotStore interface {
	// Save persists the snapshot under snap.RunID, replacing any previous value.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a run ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a run ID. Deleting a missing run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of stored runs.
	List(ctx context.Context) ([]string, error)
}

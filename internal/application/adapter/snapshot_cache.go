package adapter

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// ErrSnapshotMiss is returned by SnapshotCache.Get when no snapshot is cached.
var ErrSnapshotMiss = errors.New("snapshot not cached")

// SnapshotCache stores the record snapshot of each user.
type SnapshotCache interface {
	// Get returns the cached snapshot or ErrSnapshotMiss.
	Get(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error)

	// Set stores the snapshot of a user.
	Set(ctx context.Context, snapshot *entity.RecordSnapshot) error

	// Delete drops the cached snapshot of a user.
	Delete(ctx context.Context, userID uuid.UUID) error
}

// SnapshotInvalidator drops derived record state after a mutation.
type SnapshotInvalidator interface {
	// Invalidate forgets the user's snapshot and announces the change.
	Invalidate(ctx context.Context, change RecordChange) error
}

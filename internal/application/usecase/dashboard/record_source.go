// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// SnapshotLoader loads the record snapshot of a user.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error)
}

// RecordSource is the single read path for a user's records. Every dashboard
// view reads through it, concurrent loads for a user are collapsed into one
// repository call and the result is kept in the snapshot cache until a record
// of the user changes.
type RecordSource struct {
	recordRepo adapter.RecordRepository
	cache      adapter.SnapshotCache
	publisher  adapter.RecordEventPublisher
	instanceID string

	group singleflight.Group

	mu          sync.Mutex
	generations map[uuid.UUID]uint64
}

// NewRecordSource creates a RecordSource. cache and publisher may be nil.
func NewRecordSource(
	recordRepo adapter.RecordRepository,
	cache adapter.SnapshotCache,
	publisher adapter.RecordEventPublisher,
	instanceID string,
) *RecordSource {
	return &RecordSource{
		recordRepo:  recordRepo,
		cache:       cache,
		publisher:   publisher,
		instanceID:  instanceID,
		generations: make(map[uuid.UUID]uint64),
	}
}

// InstanceID identifies this process in published record changes.
func (s *RecordSource) InstanceID() string {
	return s.instanceID
}

// Snapshot returns the user's records. A failed load is reported as
// ErrRecordSourceUnavailable, never as an empty snapshot.
func (s *RecordSource) Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, userID)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, adapter.ErrSnapshotMiss) {
			slog.Warn("snapshot cache read failed, loading from repository",
				"userID", userID,
				"error", err,
			)
		}
	}

	// The load outlives a single caller's cancellation since other callers share it.
	loadCtx := context.WithoutCancel(ctx)
	value, err, shared := s.group.Do(userID.String(), func() (interface{}, error) {
		return s.load(loadCtx, userID)
	})
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeRecordSourceUnavailable,
			"record source unavailable",
			fmt.Errorf("%w: %w", domainerror.ErrRecordSourceUnavailable, err),
		)
	}

	slog.Debug("record snapshot loaded", "userID", userID, "shared", shared)

	return value.(*entity.RecordSnapshot), nil
}

func (s *RecordSource) load(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	generation := s.generation(userID)

	records, err := s.recordRepo.FindAllByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to load records", "userID", userID, "error", err)
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	snapshot := entity.NewRecordSnapshot(userID, records)

	if s.cache != nil {
		s.store(ctx, snapshot, generation)
	}

	return snapshot, nil
}

// store caches a snapshot loaded at generation. A Drop landing while the
// write is in flight bumps the generation, so the entry is removed again.
func (s *RecordSource) store(ctx context.Context, snapshot *entity.RecordSnapshot, generation uint64) {
	userID := snapshot.UserID
	if s.generation(userID) != generation {
		return
	}

	if err := s.cache.Set(ctx, snapshot); err != nil {
		slog.Warn("failed to cache record snapshot", "userID", userID, "error", err)
		return
	}

	if s.generation(userID) != generation {
		if err := s.cache.Delete(ctx, userID); err != nil {
			slog.Warn("failed to drop stale record snapshot", "userID", userID, "error", err)
		}
	}
}

// Invalidate drops the user's snapshot locally and publishes the change to
// other instances.
func (s *RecordSource) Invalidate(ctx context.Context, change adapter.RecordChange) error {
	if err := s.Drop(ctx, change.UserID); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}

	if change.Origin == "" {
		change.Origin = s.instanceID
	}
	if err := s.publisher.PublishRecordChange(ctx, change); err != nil {
		// Local state is already consistent; peers converge on TTL expiry.
		slog.Warn("failed to publish record change",
			"userID", change.UserID,
			"recordID", change.RecordID,
			"error", err,
		)
	}

	return nil
}

// Drop forgets the user's snapshot on this instance only.
func (s *RecordSource) Drop(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	s.generations[userID]++
	s.mu.Unlock()

	s.group.Forget(userID.String())

	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to drop record snapshot: %w", err)
	}
	return nil
}

// HandleRecordChange applies a change received from another instance.
func (s *RecordSource) HandleRecordChange(ctx context.Context, change adapter.RecordChange) error {
	if change.Origin != "" && change.Origin == s.instanceID {
		return nil
	}
	return s.Drop(ctx, change.UserID)
}

func (s *RecordSource) generation(userID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

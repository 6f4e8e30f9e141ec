package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

func TestRecordSource_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("loads from repository and caches", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		_ = repo.Create(ctx, newRecord(userID, "2024-01-01T10:00:00Z", "10", "Food", "expense"))
		cache := newMemoryCache()
		source := NewRecordSource(repo, cache, nil, "api-1")

		first, err := source.Snapshot(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(first.Records))
		}

		if _, err := source.Snapshot(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls := repo.calls.Load(); calls != 1 {
			t.Errorf("expected 1 repository call, got %d", calls)
		}
	})

	t.Run("empty record set is not an error", func(t *testing.T) {
		source := NewRecordSource(newFakeRecordRepo(), nil, nil, "api-1")

		snapshot, err := source.Snapshot(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !snapshot.IsEmpty() {
			t.Errorf("expected empty snapshot")
		}
		if snapshot.Records == nil {
			t.Errorf("expected non-nil record slice")
		}
	})

	t.Run("repository failure is reported as unavailable", func(t *testing.T) {
		repo := newFakeRecordRepo()
		repo.err = errors.New("connection refused")
		source := NewRecordSource(repo, newMemoryCache(), nil, "api-1")

		_, err := source.Snapshot(ctx, uuid.New())

		if !errors.Is(err, domainerror.ErrRecordSourceUnavailable) {
			t.Fatalf("expected ErrRecordSourceUnavailable, got %v", err)
		}
		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeRecordSourceUnavailable {
			t.Errorf("expected DSH-990001, got %v", err)
		}
	})

	t.Run("cache read failure falls back to repository", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		_ = repo.Create(ctx, newRecord(userID, "2024-01-01T10:00:00Z", "10", "Food", "expense"))
		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		source := NewRecordSource(repo, cache, nil, "api-1")

		snapshot, err := source.Snapshot(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshot.Records) != 1 {
			t.Errorf("expected 1 record, got %d", len(snapshot.Records))
		}
	})

	t.Run("cache write failure does not fail the read", func(t *testing.T) {
		cache := newMemoryCache()
		cache.setErr = errors.New("redis down")
		source := NewRecordSource(newFakeRecordRepo(), cache, nil, "api-1")

		if _, err := source.Snapshot(ctx, uuid.New()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent loads share one repository call", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		repo.delay = 50 * time.Millisecond
		source := NewRecordSource(repo, nil, nil, "api-1")

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := source.Snapshot(ctx, userID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if calls := repo.calls.Load(); calls >= 10 {
			t.Errorf("expected collapsed loads, got %d repository calls", calls)
		}
	})
}

func TestRecordSource_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("drops cache and publishes change", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		cache := newMemoryCache()
		publisher := &recordingPublisher{}
		source := NewRecordSource(repo, cache, publisher, "api-1")

		if _, err := source.Snapshot(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cache.has(userID) {
			t.Fatal("expected snapshot to be cached")
		}

		recordID := uuid.New()
		err := source.Invalidate(ctx, adapter.RecordChange{UserID: userID, RecordID: recordID, Kind: adapter.RecordCreated})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache.has(userID) {
			t.Error("expected snapshot to be dropped")
		}
		if len(publisher.changes) != 1 {
			t.Fatalf("expected 1 published change, got %d", len(publisher.changes))
		}
		if publisher.changes[0].Origin != "api-1" {
			t.Errorf("expected origin api-1, got %q", publisher.changes[0].Origin)
		}

		_ = repo.Create(ctx, newRecord(userID, "2024-01-02T10:00:00Z", "5", "Food", "expense"))
		snapshot, err := source.Snapshot(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshot.Records) != 1 {
			t.Errorf("expected fresh snapshot with 1 record, got %d", len(snapshot.Records))
		}
	})

	t.Run("publish failure is not returned", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker down")}
		source := NewRecordSource(newFakeRecordRepo(), newMemoryCache(), publisher, "api-1")

		err := source.Invalidate(ctx, adapter.RecordChange{UserID: uuid.New(), Kind: adapter.RecordDeleted})
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("load racing with a mutation is not cached", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		repo.delay = 100 * time.Millisecond
		repo.started = make(chan struct{}, 1)
		cache := newMemoryCache()
		source := NewRecordSource(repo, cache, nil, "api-1")

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = source.Snapshot(ctx, userID)
		}()

		<-repo.started
		if err := source.Drop(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-done

		if cache.has(userID) {
			t.Error("stale snapshot was cached after invalidation")
		}
	})

	t.Run("mutation during cache write does not leave a stale entry", func(t *testing.T) {
		userID := uuid.New()
		repo := newFakeRecordRepo()
		cache := newMemoryCache()
		source := NewRecordSource(repo, cache, nil, "api-1")

		cache.beforeSet = func() {
			_ = repo.Create(ctx, newRecord(userID, "2024-01-03T10:00:00Z", "7", "Food", "expense"))
			_ = source.Invalidate(ctx, adapter.RecordChange{UserID: userID, Kind: adapter.RecordCreated})
		}

		if _, err := source.Snapshot(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.has(userID) {
			t.Fatal("snapshot from before the mutation is still cached")
		}

		snapshot, err := source.Snapshot(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshot.Records) != 1 {
			t.Errorf("expected 1 record after create, got %d", len(snapshot.Records))
		}
	})
}

func TestRecordSource_HandleRecordChange(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cache := newMemoryCache()
	source := NewRecordSource(newFakeRecordRepo(), cache, nil, "api-1")

	if _, err := source.Snapshot(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := source.HandleRecordChange(ctx, adapter.RecordChange{UserID: userID, Origin: "api-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cache.has(userID) {
		t.Error("own change should be ignored")
	}

	if err := source.HandleRecordChange(ctx, adapter.RecordChange{UserID: userID, Origin: "api-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.has(userID) {
		t.Error("peer change should drop the snapshot")
	}
}

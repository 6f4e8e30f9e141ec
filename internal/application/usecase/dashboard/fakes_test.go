package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

type staticLoader struct {
	snapshot *entity.RecordSnapshot
	err      error
}

func (l *staticLoader) Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.snapshot, nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID][]*entity.Record
	calls   atomic.Int32
	delay   time.Duration
	err     error
	started chan struct{}
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID][]*entity.Record)}
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *entity.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.UserID] = append(r.records[record.UserID], record)
	return nil
}

func (r *fakeRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRecordRepo) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Record, error) {
	r.calls.Add(1)
	if r.started != nil {
		select {
		case r.started <- struct{}{}:
		default:
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Record, len(r.records[userID]))
	copy(out, r.records[userID])
	return out, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, record *entity.Record) error { return nil }

func (r *fakeRecordRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type memoryCache struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*entity.RecordSnapshot
	getErr    error
	setErr    error
	sets      int
	// beforeSet runs ahead of each store, outside the lock.
	beforeSet func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{snapshots: make(map[uuid.UUID]*entity.RecordSnapshot)}
}

func (c *memoryCache) Get(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	snapshot, ok := c.snapshots[userID]
	if !ok {
		return nil, adapter.ErrSnapshotMiss
	}
	return snapshot, nil
}

func (c *memoryCache) Set(ctx context.Context, snapshot *entity.RecordSnapshot) error {
	if c.beforeSet != nil {
		hook := c.beforeSet
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.snapshots[snapshot.UserID] = snapshot
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, userID)
	return nil
}

func (c *memoryCache) has(userID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.snapshots[userID]
	return ok
}

type recordingPublisher struct {
	mu      sync.Mutex
	changes []adapter.RecordChange
	err     error
}

func (p *recordingPublisher) PublishRecordChange(ctx context.Context, change adapter.RecordChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return p.err
}

type fakeInsightService struct {
	available bool
	insights  []*adapter.Insight
	err       error
	summary   *adapter.SpendingSummary
}

func (s *fakeInsightService) GenerateInsights(ctx context.Context, summary *adapter.SpendingSummary) ([]*adapter.Insight, error) {
	s.summary = summary
	return s.insights, s.err
}

func (s *fakeInsightService) IsAvailable() bool { return s.available }

// stalledInsightService never answers until released, ignoring ctx.
type stalledInsightService struct {
	release chan struct{}
}

func (s *stalledInsightService) GenerateInsights(ctx context.Context, summary *adapter.SpendingSummary) ([]*adapter.Insight, error) {
	<-s.release
	return []*adapter.Insight{{ID: "late", Type: adapter.InsightTip}}, nil
}

func (s *stalledInsightService) IsAvailable() bool { return true }

func newRecord(userID uuid.UUID, date string, amount string, category string, recordType entity.RecordType) *entity.Record {
	d, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return entity.NewRecord(userID, category+" entry", decimal.RequireFromString(amount), category, recordType, d)
}

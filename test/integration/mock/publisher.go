package mock

import (
	"context"
	"sync"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// Publisher records published record changes in place of the AMQP broker.
type Publisher struct {
	mu      sync.Mutex
	changes []adapter.RecordChange
}

// NewPublisher creates an empty Publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishRecordChange implements adapter.RecordEventPublisher.
func (p *Publisher) PublishRecordChange(_ context.Context, change adapter.RecordChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

// Changes returns a copy of the published changes.
func (p *Publisher) Changes() []adapter.RecordChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]adapter.RecordChange(nil), p.changes...)
}

// Reset forgets the published changes.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = nil
}

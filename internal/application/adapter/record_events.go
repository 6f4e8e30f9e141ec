package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordChangeKind describes what happened to a record.
type RecordChangeKind string

const (
	RecordCreated RecordChangeKind = "created"
	RecordUpdated RecordChangeKind = "updated"
	RecordDeleted RecordChangeKind = "deleted"
)

// RecordChange is published after a record mutation so other instances
// can drop their cached snapshot of the user.
type RecordChange struct {
	UserID     uuid.UUID
	RecordID   uuid.UUID
	Kind       RecordChangeKind
	OccurredAt time.Time
	Origin     string // instance that produced the change
}

// RecordEventPublisher publishes record changes.
type RecordEventPublisher interface {
	PublishRecordChange(ctx context.Context, change RecordChange) error
}

package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// RecordChangedMessage announces that a user's records changed.
// It carries identifiers only; consumers reload the records themselves.
type RecordChangedMessage struct {
	UserID     uuid.UUID `json:"user_id"`
	RecordID   uuid.UUID `json:"record_id"`
	Kind       string    `json:"kind"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecordChangedMessage builds a message from a record change.
func NewRecordChangedMessage(change adapter.RecordChange) *RecordChangedMessage {
	occurredAt := change.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return &RecordChangedMessage{
		UserID:     change.UserID,
		RecordID:   change.RecordID,
		Kind:       string(change.Kind),
		Origin:     change.Origin,
		OccurredAt: occurredAt,
	}
}

// ToChange converts the message back to a record change.
func (m *RecordChangedMessage) ToChange() adapter.RecordChange {
	return adapter.RecordChange{
		UserID:     m.UserID,
		RecordID:   m.RecordID,
		Kind:       adapter.RecordChangeKind(m.Kind),
		Origin:     m.Origin,
		OccurredAt: m.OccurredAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangedMessageFromJSON decodes a message. A message without a user is rejected.
func RecordChangedMessageFromJSON(data []byte) (*RecordChangedMessage, error) {
	var msg RecordChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID == uuid.Nil {
		return nil, fmt.Errorf("record changed message without user_id")
	}
	return &msg, nil
}

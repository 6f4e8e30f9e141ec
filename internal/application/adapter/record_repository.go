// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// RecordRepository defines the interface for record persistence operations.
type RecordRepository interface {
	// Create persists a new record.
	Create(ctx context.Context, record *entity.Record) error

	// FindByID retrieves a record by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error)

	// FindAllByUserID returns every record of the user. No filtering or paging is applied.
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Record, error)

	// Update persists changes to an existing record.
	Update(ctx context.Context, record *entity.Record) error

	// Delete removes a record.
	Delete(ctx context.Context, id uuid.UUID) error
}

package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// DeleteRecordInput represents the input for record deletion.
type DeleteRecordInput struct {
	RecordID uuid.UUID
	UserID   uuid.UUID
}

// DeleteRecordUseCase handles record deletion logic.
type DeleteRecordUseCase struct {
	recordRepo  adapter.RecordRepository
	invalidator adapter.SnapshotInvalidator
}

// NewDeleteRecordUseCase creates a new DeleteRecordUseCase instance.
func NewDeleteRecordUseCase(
	recordRepo adapter.RecordRepository,
	invalidator adapter.SnapshotInvalidator,
) *DeleteRecordUseCase {
	return &DeleteRecordUseCase{
		recordRepo:  recordRepo,
		invalidator: invalidator,
	}
}

// Execute performs the record deletion.
func (uc *DeleteRecordUseCase) Execute(ctx context.Context, input DeleteRecordInput) error {
	record, err := findOwnedRecord(ctx, uc.recordRepo, input.RecordID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.recordRepo.Delete(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	invalidate(ctx, uc.invalidator, record, adapter.RecordDeleted)

	return nil
}

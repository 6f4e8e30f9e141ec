package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// UpdateRecordInput represents the input for record update. Nil fields are left unchanged.
type UpdateRecordInput struct {
	RecordID uuid.UUID
	UserID   uuid.UUID
	Text     *string
	Amount   *decimal.Decimal
	Category *string
	Type     *entity.RecordType
	Date     *time.Time
}

// UpdateRecordOutput represents the output of record update.
type UpdateRecordOutput struct {
	Record *RecordOutput
}

// UpdateRecordUseCase handles record update logic.
type UpdateRecordUseCase struct {
	recordRepo  adapter.RecordRepository
	invalidator adapter.SnapshotInvalidator
	format      valueobject.DisplayFormat
}

// NewUpdateRecordUseCase creates a new UpdateRecordUseCase instance.
func NewUpdateRecordUseCase(
	recordRepo adapter.RecordRepository,
	invalidator adapter.SnapshotInvalidator,
	format valueobject.DisplayFormat,
) *UpdateRecordUseCase {
	return &UpdateRecordUseCase{
		recordRepo:  recordRepo,
		invalidator: invalidator,
		format:      format,
	}
}

// Execute performs the record update.
func (uc *UpdateRecordUseCase) Execute(ctx context.Context, input UpdateRecordInput) (*UpdateRecordOutput, error) {
	record, err := findOwnedRecord(ctx, uc.recordRepo, input.RecordID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if err := validateText(text); err != nil {
			return nil, err
		}
		record.Text = text
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		record.Amount = *input.Amount
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if err := validateCategory(category); err != nil {
			return nil, err
		}
		record.Category = category
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		record.Type = *input.Type
	}

	if input.Date != nil {
		record.Date = input.Date.UTC()
	}

	record.UpdatedAt = time.Now().UTC()

	if err := uc.recordRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	invalidate(ctx, uc.invalidator, record, adapter.RecordUpdated)

	return &UpdateRecordOutput{
		Record: toRecordOutput(record, uc.format),
	}, nil
}

// findOwnedRecord loads a record and hides records of other users as not found.
func findOwnedRecord(ctx context.Context, repo adapter.RecordRepository, recordID, userID uuid.UUID) (*entity.Record, error) {
	record, err := repo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeRecordNotFound,
				"record not found",
				domainerror.ErrRecordNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	if record.UserID != userID {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeRecordNotFound,
			"record not found",
			domainerror.ErrRecordNotFound,
		)
	}

	return record, nil
}

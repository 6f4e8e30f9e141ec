package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// CreateRecordInput represents the input for record creation.
// A nil Date means now.
type CreateRecordInput struct {
	UserID   uuid.UUID
	Text     string
	Amount   decimal.Decimal
	Category string
	Type     entity.RecordType
	Date     *time.Time
}

// CreateRecordOutput represents the output of record creation.
type CreateRecordOutput struct {
	Record *RecordOutput
}

// CreateRecordUseCase handles record creation logic.
type CreateRecordUseCase struct {
	recordRepo  adapter.RecordRepository
	invalidator adapter.SnapshotInvalidator
	format      valueobject.DisplayFormat
}

// NewCreateRecordUseCase creates a new CreateRecordUseCase instance.
func NewCreateRecordUseCase(
	recordRepo adapter.RecordRepository,
	invalidator adapter.SnapshotInvalidator,
	format valueobject.DisplayFormat,
) *CreateRecordUseCase {
	return &CreateRecordUseCase{
		recordRepo:  recordRepo,
		invalidator: invalidator,
		format:      format,
	}
}

// Execute performs the record creation.
func (uc *CreateRecordUseCase) Execute(ctx context.Context, input CreateRecordInput) (*CreateRecordOutput, error) {
	input.Text = strings.TrimSpace(input.Text)
	input.Category = strings.TrimSpace(input.Category)

	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateText(input.Text); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	record := entity.NewRecord(input.UserID, input.Text, input.Amount, input.Category, input.Type, date)

	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	slog.Debug("record created",
		"userID", record.UserID,
		"recordID", record.ID,
		"type", record.Type,
	)

	invalidate(ctx, uc.invalidator, record, adapter.RecordCreated)

	return &CreateRecordOutput{
		Record: toRecordOutput(record, uc.format),
	}, nil
}

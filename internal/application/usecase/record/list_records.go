package record

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/aggregation"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// SnapshotLoader loads the record snapshot of a user.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error)
}

// ListRecordsInput represents the input for listing records.
type ListRecordsInput struct {
	UserID uuid.UUID
}

// ListRecordsOutput is the record history, newest first.
type ListRecordsOutput struct {
	Records []*RecordOutput
	Total   int
}

// ListRecordsUseCase lists the user's records from the shared snapshot.
type ListRecordsUseCase struct {
	source SnapshotLoader
	format valueobject.DisplayFormat
}

// NewListRecordsUseCase creates a new ListRecordsUseCase instance.
func NewListRecordsUseCase(source SnapshotLoader, format valueobject.DisplayFormat) *ListRecordsUseCase {
	return &ListRecordsUseCase{
		source: source,
		format: format,
	}
}

// Execute lists the user's records.
func (uc *ListRecordsUseCase) Execute(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error) {
	snapshot, err := uc.source.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return uc.FromSnapshot(snapshot), nil
}

// FromSnapshot lists the records of a loaded snapshot.
func (uc *ListRecordsUseCase) FromSnapshot(snapshot *entity.RecordSnapshot) *ListRecordsOutput {
	var records []*entity.Record
	if snapshot != nil {
		records = snapshot.Records
	}

	sorted := aggregation.SortNewestFirst(records)
	output := &ListRecordsOutput{
		Records: make([]*RecordOutput, 0, len(sorted)),
		Total:   len(sorted),
	}
	for _, r := range sorted {
		output.Records = append(output.Records, toRecordOutput(r, uc.format))
	}
	return output
}

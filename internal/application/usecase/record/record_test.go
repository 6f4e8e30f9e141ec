package record

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

type fakeRecordRepo struct {
	records   map[uuid.UUID]*entity.Record
	createErr error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID]*entity.Record)}
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *entity.Record) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, domainerror.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeRecordRepo) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Record, error) {
	var out []*entity.Record
	for _, record := range r.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, record *entity.Record) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type recordingInvalidator struct {
	changes []adapter.RecordChange
	err     error
}

func (i *recordingInvalidator) Invalidate(ctx context.Context, change adapter.RecordChange) error {
	i.changes = append(i.changes, change)
	return i.err
}

type repoLoader struct {
	repo *fakeRecordRepo
}

func (l *repoLoader) Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	records, err := l.repo.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entity.NewRecordSnapshot(userID, records), nil
}

func recordErrorCode(err error) domainerror.RecordErrorCode {
	var recErr *domainerror.RecordError
	if errors.As(err, &recErr) {
		return recErr.Code
	}
	return ""
}

func TestCreateRecordUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    CreateRecordInput
		wantCode domainerror.RecordErrorCode
	}{
		{
			name:  "valid expense",
			input: CreateRecordInput{UserID: userID, Text: "Lunch", Amount: decimal.NewFromInt(12), Category: "Food", Type: entity.RecordTypeExpense, Date: &date},
		},
		{
			name:  "zero amount is allowed",
			input: CreateRecordInput{UserID: userID, Text: "Free sample", Amount: decimal.Zero, Category: "Food", Type: entity.RecordTypeExpense},
		},
		{
			name:     "invalid type",
			input:    CreateRecordInput{UserID: userID, Text: "x", Amount: decimal.NewFromInt(1), Category: "Food", Type: "transfer"},
			wantCode: domainerror.ErrCodeInvalidRecordType,
		},
		{
			name:     "negative amount",
			input:    CreateRecordInput{UserID: userID, Text: "x", Amount: decimal.NewFromInt(-1), Category: "Food", Type: entity.RecordTypeExpense},
			wantCode: domainerror.ErrCodeNegativeAmount,
		},
		{
			name:     "missing category",
			input:    CreateRecordInput{UserID: userID, Text: "x", Amount: decimal.NewFromInt(1), Category: "  ", Type: entity.RecordTypeIncome},
			wantCode: domainerror.ErrCodeMissingCategory,
		},
		{
			name:     "missing text",
			input:    CreateRecordInput{UserID: userID, Amount: decimal.NewFromInt(1), Category: "Salary", Type: entity.RecordTypeIncome},
			wantCode: domainerror.ErrCodeMissingText,
		},
		{
			name:     "text too long",
			input:    CreateRecordInput{UserID: userID, Text: strings.Repeat("a", 101), Amount: decimal.NewFromInt(1), Category: "Salary", Type: entity.RecordTypeIncome},
			wantCode: domainerror.ErrCodeTextTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRecordRepo()
			invalidator := &recordingInvalidator{}
			uc := NewCreateRecordUseCase(repo, invalidator, valueobject.DefaultDisplayFormat())

			out, err := uc.Execute(ctx, tt.input)

			if tt.wantCode != "" {
				if code := recordErrorCode(err); code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				if len(repo.records) != 0 || len(invalidator.changes) != 0 {
					t.Error("invalid input must not persist or invalidate")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.records) != 1 {
				t.Fatalf("expected 1 stored record, got %d", len(repo.records))
			}
			if len(invalidator.changes) != 1 || invalidator.changes[0].Kind != adapter.RecordCreated {
				t.Fatalf("expected one created change, got %+v", invalidator.changes)
			}
			if invalidator.changes[0].UserID != userID || invalidator.changes[0].RecordID != out.Record.ID {
				t.Errorf("change does not match record: %+v", invalidator.changes[0])
			}
			if tt.input.Date != nil && !out.Record.Date.Equal(*tt.input.Date) {
				t.Errorf("expected date %v, got %v", *tt.input.Date, out.Record.Date)
			}
		})
	}

	t.Run("invalidation failure does not fail creation", func(t *testing.T) {
		repo := newFakeRecordRepo()
		uc := NewCreateRecordUseCase(repo, &recordingInvalidator{err: errors.New("redis down")}, valueobject.DefaultDisplayFormat())

		out, err := uc.Execute(ctx, CreateRecordInput{UserID: userID, Text: "Pay", Amount: decimal.NewFromInt(1000), Category: "Salary", Type: entity.RecordTypeIncome})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Record.Symbol != "💼" || out.Record.AmountLabel != "Rs. 1000.00" {
			t.Errorf("unexpected output %+v", out.Record)
		}
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := newFakeRecordRepo()
		repo.createErr = errors.New("db down")
		uc := NewCreateRecordUseCase(repo, nil, valueobject.DefaultDisplayFormat())

		_, err := uc.Execute(ctx, CreateRecordInput{UserID: userID, Text: "Pay", Amount: decimal.NewFromInt(1), Category: "Salary", Type: entity.RecordTypeIncome})
		if err == nil || !strings.Contains(err.Error(), "failed to create record") {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}

func TestUpdateRecordUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	seed := func() (*fakeRecordRepo, *entity.Record) {
		repo := newFakeRecordRepo()
		r := entity.NewRecord(owner, "Groceries", decimal.NewFromInt(40), "Food", entity.RecordTypeExpense, time.Now())
		repo.records[r.ID] = r
		return repo, r
	}

	t.Run("partial update", func(t *testing.T) {
		repo, r := seed()
		invalidator := &recordingInvalidator{}
		uc := NewUpdateRecordUseCase(repo, invalidator, valueobject.DefaultDisplayFormat())

		amount := decimal.NewFromInt(55)
		category := "Shopping"
		out, err := uc.Execute(ctx, UpdateRecordInput{RecordID: r.ID, UserID: owner, Amount: &amount, Category: &category})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Record.Amount.Equal(amount) || out.Record.Category != "Shopping" || out.Record.Text != "Groceries" {
			t.Errorf("unexpected record %+v", out.Record)
		}
		if len(invalidator.changes) != 1 || invalidator.changes[0].Kind != adapter.RecordUpdated {
			t.Errorf("expected one updated change, got %+v", invalidator.changes)
		}
	})

	t.Run("other user's record is not found", func(t *testing.T) {
		repo, r := seed()
		uc := NewUpdateRecordUseCase(repo, nil, valueobject.DefaultDisplayFormat())

		text := "hijack"
		_, err := uc.Execute(ctx, UpdateRecordInput{RecordID: r.ID, UserID: uuid.New(), Text: &text})
		if code := recordErrorCode(err); code != domainerror.ErrCodeRecordNotFound {
			t.Errorf("expected REC-020001, got %v", err)
		}
		if repo.records[r.ID].Text != "Groceries" {
			t.Error("record was modified")
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		repo, r := seed()
		uc := NewUpdateRecordUseCase(repo, nil, valueobject.DefaultDisplayFormat())

		amount := decimal.NewFromInt(-5)
		_, err := uc.Execute(ctx, UpdateRecordInput{RecordID: r.ID, UserID: owner, Amount: &amount})
		if code := recordErrorCode(err); code != domainerror.ErrCodeNegativeAmount {
			t.Errorf("expected REC-010002, got %v", err)
		}
	})
}

func TestDeleteRecordUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newFakeRecordRepo()
	r := entity.NewRecord(owner, "Rent", decimal.NewFromInt(500), "Bills", entity.RecordTypeExpense, time.Now())
	repo.records[r.ID] = r
	invalidator := &recordingInvalidator{}
	uc := NewDeleteRecordUseCase(repo, invalidator)

	if err := uc.Execute(ctx, DeleteRecordInput{RecordID: r.ID, UserID: uuid.New()}); recordErrorCode(err) != domainerror.ErrCodeRecordNotFound {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	if err := uc.Execute(ctx, DeleteRecordInput{RecordID: r.ID, UserID: owner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.records[r.ID]; ok {
		t.Error("record was not deleted")
	}
	if len(invalidator.changes) != 1 || invalidator.changes[0].Kind != adapter.RecordDeleted {
		t.Errorf("expected one deleted change, got %+v", invalidator.changes)
	}

	if err := uc.Execute(ctx, DeleteRecordInput{RecordID: r.ID, UserID: owner}); recordErrorCode(err) != domainerror.ErrCodeRecordNotFound {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestListRecordsUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newFakeRecordRepo()
	for i, day := range []int{3, 1, 2} {
		r := entity.NewRecord(owner, "entry", decimal.NewFromInt(int64(i+1)), "Food", entity.RecordTypeExpense,
			time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC))
		repo.records[r.ID] = r
	}
	other := entity.NewRecord(uuid.New(), "other", decimal.NewFromInt(1), "Food", entity.RecordTypeExpense, time.Now())
	repo.records[other.ID] = other

	uc := NewListRecordsUseCase(&repoLoader{repo: repo}, valueobject.DefaultDisplayFormat())

	out, err := uc.Execute(ctx, ListRecordsInput{UserID: owner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 3 {
		t.Fatalf("expected 3 records, got %d", out.Total)
	}
	for i, day := range []int{3, 2, 1} {
		if out.Records[i].Date.Day() != day {
			t.Errorf("position %d: expected day %d, got %d", i, day, out.Records[i].Date.Day())
		}
	}
}

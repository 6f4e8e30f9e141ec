package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/aggregation"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// GetCategoryBreakdownInput represents the input for the category breakdown.
// An empty Type selects the expense tab.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Type   entity.RecordType
}

// CategoryBreakdownItem is one row of the breakdown list.
type CategoryBreakdownItem struct {
	Category        string
	Symbol          string
	Amount          decimal.Decimal
	Percentage      float64
	AmountLabel     string
	PercentageLabel string
}

// GetCategoryBreakdownOutput represents the breakdown of one tab.
type GetCategoryBreakdownOutput struct {
	State        ViewState
	Type         entity.RecordType
	Total        decimal.Decimal
	TotalLabel   string
	Categories   []CategoryBreakdownItem
	EmptyMessage string
}

// GetCategoryBreakdownUseCase groups the user's records by category for a tab.
type GetCategoryBreakdownUseCase struct {
	source SnapshotLoader
	format valueobject.DisplayFormat
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(source SnapshotLoader, format valueobject.DisplayFormat) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		source: source,
		format: format,
	}
}

// Execute retrieves the breakdown of the requested tab.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if input.Type == "" {
		input.Type = entity.RecordTypeExpense
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidBreakdownType,
			"type must be: expense or income",
			domainerror.ErrInvalidBreakdownType,
		)
	}

	snapshot, err := uc.source.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return uc.FromSnapshot(snapshot, input.Type), nil
}

// FromSnapshot computes the breakdown of recordType from a loaded snapshot.
func (uc *GetCategoryBreakdownUseCase) FromSnapshot(snapshot *entity.RecordSnapshot, recordType entity.RecordType) *GetCategoryBreakdownOutput {
	var records []*entity.Record
	if snapshot != nil {
		records = snapshot.Records
	}

	amounts := aggregation.GroupByCategory(records, recordType)
	total := aggregation.Sum(amounts)

	items := make([]CategoryBreakdownItem, 0, len(amounts))
	for _, a := range amounts {
		percentage := aggregation.Percentage(a.Amount, total)
		items = append(items, CategoryBreakdownItem{
			Category:        a.Category,
			Symbol:          entity.CategorySymbol(a.Category, recordType),
			Amount:          a.Amount,
			Percentage:      percentage,
			AmountLabel:     uc.format.Amount(a.Amount),
			PercentageLabel: uc.format.Percent(percentage),
		})
	}

	output := &GetCategoryBreakdownOutput{
		State:      stateOf(len(items) == 0),
		Type:       recordType,
		Total:      total,
		TotalLabel: uc.format.Amount(total),
		Categories: items,
	}
	if len(items) == 0 {
		output.EmptyMessage = fmt.Sprintf("No %s records found", recordType)
	}

	return output
}

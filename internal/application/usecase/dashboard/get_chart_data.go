package dashboard

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/aggregation"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// GetChartDataInput represents the input for the income/expense bar chart.
type GetChartDataInput struct {
	UserID uuid.UUID
}

// ChartPoint is one day of the chart.
type ChartPoint struct {
	Date          string // YYYY-MM-DD
	Label         string // MM/DD
	Expense       decimal.Decimal
	Income        decimal.Decimal
	Categories    []string
	ExpenseDetail string // "Expense: Rs.12.00"
	IncomeDetail  string
	CategoryLine  string // "Categories: Food, Bills"
}

// GetChartDataOutput is the bar chart of daily totals.
type GetChartDataOutput struct {
	State     ViewState
	AxisTitle string
	Labels    []string
	Expenses  []decimal.Decimal
	Income    []decimal.Decimal
	Points    []ChartPoint
}

// GetChartDataUseCase groups the user's records per day.
type GetChartDataUseCase struct {
	source SnapshotLoader
	format valueobject.DisplayFormat
}

// NewGetChartDataUseCase creates a new GetChartDataUseCase instance.
func NewGetChartDataUseCase(source SnapshotLoader, format valueobject.DisplayFormat) *GetChartDataUseCase {
	return &GetChartDataUseCase{
		source: source,
		format: format,
	}
}

// Execute loads the snapshot and builds the chart.
func (uc *GetChartDataUseCase) Execute(ctx context.Context, input GetChartDataInput) (*GetChartDataOutput, error) {
	snapshot, err := uc.source.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return uc.FromSnapshot(snapshot), nil
}

// FromSnapshot builds the chart from a loaded snapshot.
func (uc *GetChartDataUseCase) FromSnapshot(snapshot *entity.RecordSnapshot) *GetChartDataOutput {
	var records []*entity.Record
	if snapshot != nil {
		records = snapshot.Records
	}

	buckets := aggregation.GroupByDate(records)

	output := &GetChartDataOutput{
		State:     stateOf(len(buckets) == 0),
		AxisTitle: uc.format.AxisTitle(),
		Labels:    make([]string, 0, len(buckets)),
		Expenses:  make([]decimal.Decimal, 0, len(buckets)),
		Income:    make([]decimal.Decimal, 0, len(buckets)),
		Points:    make([]ChartPoint, 0, len(buckets)),
	}

	for _, b := range buckets {
		output.Labels = append(output.Labels, b.Label)
		output.Expenses = append(output.Expenses, b.TotalExpense)
		output.Income = append(output.Income, b.TotalIncome)
		output.Points = append(output.Points, ChartPoint{
			Date:          b.Key,
			Label:         b.Label,
			Expense:       b.TotalExpense,
			Income:        b.TotalIncome,
			Categories:    b.Categories,
			ExpenseDetail: "Expense: " + uc.format.CompactAmount(b.TotalExpense),
			IncomeDetail:  "Income: " + uc.format.CompactAmount(b.TotalIncome),
			CategoryLine:  "Categories: " + strings.Join(b.Categories, ", "),
		})
	}

	return output
}

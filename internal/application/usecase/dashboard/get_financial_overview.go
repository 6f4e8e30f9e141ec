package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/aggregation"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// GetFinancialOverviewInput represents the input for the overview cards.
type GetFinancialOverviewInput struct {
	UserID uuid.UUID
}

// GetFinancialOverviewOutput holds the income, expense and balance cards.
type GetFinancialOverviewOutput struct {
	State              ViewState
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	Balance            decimal.Decimal
	TotalIncomeLabel   string
	TotalExpensesLabel string
	BalanceLabel       string
	BalanceHealthy     bool
}

// GetFinancialOverviewUseCase computes the overview cards.
type GetFinancialOverviewUseCase struct {
	source SnapshotLoader
	format valueobject.DisplayFormat
}

// NewGetFinancialOverviewUseCase creates a new GetFinancialOverviewUseCase instance.
func NewGetFinancialOverviewUseCase(source SnapshotLoader, format valueobject.DisplayFormat) *GetFinancialOverviewUseCase {
	return &GetFinancialOverviewUseCase{
		source: source,
		format: format,
	}
}

// Execute loads the user's snapshot and computes the overview.
func (uc *GetFinancialOverviewUseCase) Execute(ctx context.Context, input GetFinancialOverviewInput) (*GetFinancialOverviewOutput, error) {
	snapshot, err := uc.source.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return uc.FromSnapshot(snapshot), nil
}

// FromSnapshot computes the overview from an already loaded snapshot.
func (uc *GetFinancialOverviewUseCase) FromSnapshot(snapshot *entity.RecordSnapshot) *GetFinancialOverviewOutput {
	var records []*entity.Record
	if snapshot != nil {
		records = snapshot.Records
	}
	totals := aggregation.ComputeTotals(records)

	return &GetFinancialOverviewOutput{
		State:              stateOf(snapshot.IsEmpty()),
		TotalIncome:        totals.Income,
		TotalExpenses:      totals.Expense,
		Balance:            totals.Balance,
		TotalIncomeLabel:   uc.format.Amount(totals.Income),
		TotalExpensesLabel: uc.format.Amount(totals.Expense),
		BalanceLabel:       uc.format.Amount(totals.Balance),
		BalanceHealthy:     !totals.Balance.IsNegative(),
	}
}

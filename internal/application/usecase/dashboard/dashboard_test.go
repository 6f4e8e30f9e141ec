package dashboard

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

func sampleSnapshot(userID uuid.UUID) *entity.RecordSnapshot {
	return entity.NewRecordSnapshot(userID, []*entity.Record{
		newRecord(userID, "2024-01-05T23:00:00Z", "100", "Food", entity.RecordTypeExpense),
		newRecord(userID, "2024-01-06T01:00:00Z", "50", "Food", entity.RecordTypeExpense),
		newRecord(userID, "2024-01-06T09:00:00Z", "1000", "Salary", entity.RecordTypeIncome),
		newRecord(userID, "2024-01-07T09:00:00Z", "500", "Freelance", entity.RecordTypeIncome),
		newRecord(userID, "2024-01-07T12:00:00Z", "30", "Pets", entity.RecordTypeExpense),
	})
}

func TestGetFinancialOverviewUseCase(t *testing.T) {
	format := valueobject.DefaultDisplayFormat()
	userID := uuid.New()

	tests := []struct {
		name         string
		snapshot     *entity.RecordSnapshot
		state        ViewState
		incomeLabel  string
		expenseLabel string
		balanceLabel string
		healthy      bool
	}{
		{
			name:         "populated",
			snapshot:     sampleSnapshot(userID),
			state:        ViewStatePopulated,
			incomeLabel:  "Rs. 1500.00",
			expenseLabel: "Rs. 180.00",
			balanceLabel: "Rs. 1320.00",
			healthy:      true,
		},
		{
			name: "negative balance",
			snapshot: entity.NewRecordSnapshot(userID, []*entity.Record{
				newRecord(userID, "2024-01-05T10:00:00Z", "20", "Bills", entity.RecordTypeExpense),
			}),
			state:        ViewStatePopulated,
			incomeLabel:  "Rs. 0.00",
			expenseLabel: "Rs. 20.00",
			balanceLabel: "Rs. -20.00",
			healthy:      false,
		},
		{
			name:         "empty",
			snapshot:     entity.NewRecordSnapshot(userID, nil),
			state:        ViewStateEmpty,
			incomeLabel:  "Rs. 0.00",
			expenseLabel: "Rs. 0.00",
			balanceLabel: "Rs. 0.00",
			healthy:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetFinancialOverviewUseCase(&staticLoader{snapshot: tt.snapshot}, format)

			out, err := uc.Execute(context.Background(), GetFinancialOverviewInput{UserID: userID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.State != tt.state {
				t.Errorf("expected state %s, got %s", tt.state, out.State)
			}
			if out.TotalIncomeLabel != tt.incomeLabel {
				t.Errorf("expected income %q, got %q", tt.incomeLabel, out.TotalIncomeLabel)
			}
			if out.TotalExpensesLabel != tt.expenseLabel {
				t.Errorf("expected expenses %q, got %q", tt.expenseLabel, out.TotalExpensesLabel)
			}
			if out.BalanceLabel != tt.balanceLabel {
				t.Errorf("expected balance %q, got %q", tt.balanceLabel, out.BalanceLabel)
			}
			if out.BalanceHealthy != tt.healthy {
				t.Errorf("expected healthy %v, got %v", tt.healthy, out.BalanceHealthy)
			}
		})
	}

	t.Run("source failure is returned", func(t *testing.T) {
		sourceErr := domainerror.NewDashboardError(
			domainerror.ErrCodeRecordSourceUnavailable,
			"record source unavailable",
			domainerror.ErrRecordSourceUnavailable,
		)
		uc := NewGetFinancialOverviewUseCase(&staticLoader{err: sourceErr}, format)

		_, err := uc.Execute(context.Background(), GetFinancialOverviewInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrRecordSourceUnavailable) {
			t.Errorf("expected ErrRecordSourceUnavailable, got %v", err)
		}
	})
}

func TestGetCategoryBreakdownUseCase(t *testing.T) {
	format := valueobject.DefaultDisplayFormat()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("income tab", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, format)

		out, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID, Type: entity.RecordTypeIncome})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(out.Categories))
		}
		want := []struct{ category, symbol, amount, percent string }{
			{"Salary", "💼", "Rs. 1000.00", "66.7%"},
			{"Freelance", "💻", "Rs. 500.00", "33.3%"},
		}
		for i, w := range want {
			got := out.Categories[i]
			if got.Category != w.category || got.Symbol != w.symbol || got.AmountLabel != w.amount || got.PercentageLabel != w.percent {
				t.Errorf("row %d: expected %+v, got %+v", i, w, got)
			}
		}
		if !out.Total.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected total 1500, got %s", out.Total)
		}
		if out.State != ViewStatePopulated || out.EmptyMessage != "" {
			t.Errorf("unexpected state %s / %q", out.State, out.EmptyMessage)
		}
	})

	t.Run("defaults to expense tab", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, format)

		out, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Type != entity.RecordTypeExpense {
			t.Errorf("expected expense tab, got %s", out.Type)
		}
		if out.Categories[0].Category != "Food" || out.Categories[0].Symbol != "🍔" {
			t.Errorf("unexpected first row %+v", out.Categories[0])
		}
		if out.Categories[1].Category != "Pets" || out.Categories[1].Symbol != "📦" {
			t.Errorf("unknown category should use fallback symbol, got %+v", out.Categories[1])
		}
	})

	t.Run("empty tabs", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&staticLoader{snapshot: entity.NewRecordSnapshot(userID, nil)}, format)

		for _, recordType := range []entity.RecordType{entity.RecordTypeExpense, entity.RecordTypeIncome} {
			out, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID, Type: recordType})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.State != ViewStateEmpty {
				t.Errorf("expected empty state, got %s", out.State)
			}
			if want := "No " + string(recordType) + " records found"; out.EmptyMessage != want {
				t.Errorf("expected %q, got %q", want, out.EmptyMessage)
			}
			if len(out.Categories) != 0 {
				t.Errorf("expected no categories, got %d", len(out.Categories))
			}
		}
	})

	t.Run("invalid tab", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, format)

		_, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID, Type: "transfer"})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeInvalidBreakdownType {
			t.Errorf("expected DSH-010001, got %v", err)
		}
	})
}

func TestGetChartDataUseCase(t *testing.T) {
	userID := uuid.New()
	uc := NewGetChartDataUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, valueobject.DefaultDisplayFormat())

	out, err := uc.Execute(context.Background(), GetChartDataInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Join(out.Labels, ",") != "01/05,01/06,01/07" {
		t.Errorf("unexpected labels %v", out.Labels)
	}
	if len(out.Expenses) != 3 || len(out.Income) != 3 || len(out.Points) != 3 {
		t.Fatalf("expected 3 values per series")
	}
	if !out.Expenses[1].Equal(decimal.NewFromInt(50)) || !out.Income[1].Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected 01/06 totals: %s / %s", out.Expenses[1], out.Income[1])
	}
	if out.Points[1].ExpenseDetail != "Expense: Rs.50.00" {
		t.Errorf("unexpected expense detail %q", out.Points[1].ExpenseDetail)
	}
	if out.Points[1].CategoryLine != "Categories: Food, Salary" {
		t.Errorf("unexpected category line %q", out.Points[1].CategoryLine)
	}
	if out.AxisTitle != "Amount (Rs.)" {
		t.Errorf("unexpected axis title %q", out.AxisTitle)
	}

	empty := uc.FromSnapshot(entity.NewRecordSnapshot(userID, nil))
	if empty.State != ViewStateEmpty || len(empty.Labels) != 0 {
		t.Errorf("expected empty chart, got %+v", empty)
	}
}

func TestGetQuickActionsUseCase(t *testing.T) {
	out := NewGetQuickActionsUseCase().Execute()

	want := []struct{ id, title, description, icon string }{
		{"add-expense", "Add Expense", "Quick expense entry", "💳"},
		{"add-income", "Add Income", "Record new income", "💰"},
		{"view-stats", "View Analytics", "Financial insights", "📊"},
	}
	if len(out.Actions) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(out.Actions))
	}
	for i, w := range want {
		a := out.Actions[i]
		if a.ID != w.id || a.Title != w.title || a.Description != w.description || a.Icon != w.icon {
			t.Errorf("action %d: expected %+v, got %+v", i, w, a)
		}
	}
	if out.Actions[1].RecordType != entity.RecordTypeIncome {
		t.Errorf("add-income should preselect income")
	}
	if out.Actions[2].Section != "stats" {
		t.Errorf("view-stats should target the stats section")
	}
}

func TestGetInsightsUseCase(t *testing.T) {
	format := valueobject.DefaultDisplayFormat()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("empty snapshot gets a starter insight", func(t *testing.T) {
		service := &fakeInsightService{available: true}
		uc := NewGetInsightsUseCase(&staticLoader{snapshot: entity.NewRecordSnapshot(userID, nil)}, service, format, time.Second)

		out, err := uc.Execute(ctx, GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.State != ViewStateEmpty || len(out.Insights) != 1 || out.Insights[0].ID != "get-started" {
			t.Errorf("unexpected output %+v", out)
		}
		if service.summary != nil {
			t.Error("generator should not be called without records")
		}
	})

	t.Run("uses generator when available", func(t *testing.T) {
		service := &fakeInsightService{
			available: true,
			insights: []*adapter.Insight{
				{ID: "1", Type: adapter.InsightTip, Title: "a"},
				{ID: "2", Type: adapter.InsightTip, Title: "b"},
				{ID: "3", Type: adapter.InsightTip, Title: "c"},
				{ID: "4", Type: adapter.InsightTip, Title: "d"},
			},
		}
		uc := NewGetInsightsUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, service, format, time.Second)

		out, err := uc.Execute(ctx, GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Source != InsightSourceAI {
			t.Errorf("expected ai source, got %s", out.Source)
		}
		if len(out.Insights) != MaxInsights {
			t.Errorf("expected %d insights, got %d", MaxInsights, len(out.Insights))
		}
		if service.summary.TotalIncome != "1500.00" || service.summary.RecordCount != 5 {
			t.Errorf("unexpected summary %+v", service.summary)
		}
		if service.summary.FirstDate != "2024-01-05" || service.summary.LastDate != "2024-01-07" {
			t.Errorf("unexpected summary range %s..%s", service.summary.FirstDate, service.summary.LastDate)
		}
	})

	t.Run("generator failure falls back to rules", func(t *testing.T) {
		service := &fakeInsightService{available: true, err: errors.New("quota exceeded")}
		uc := NewGetInsightsUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, service, format, time.Second)

		out, err := uc.Execute(ctx, GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Source != InsightSourceRules {
			t.Errorf("expected rules source, got %s", out.Source)
		}
		if out.Insights[0].ID != "savings-rate" || out.Insights[0].Message != "You saved 88.0% of your income." {
			t.Errorf("unexpected first insight %+v", out.Insights[0])
		}
		if out.Insights[1].ID != "top-expense-category" {
			t.Errorf("unexpected second insight %+v", out.Insights[1])
		}
	})

	t.Run("slow generator falls back to rules after the deadline", func(t *testing.T) {
		service := &stalledInsightService{release: make(chan struct{})}
		defer close(service.release)
		uc := NewGetInsightsUseCase(&staticLoader{snapshot: sampleSnapshot(userID)}, service, format, 20*time.Millisecond)

		start := time.Now()
		out, err := uc.Execute(ctx, GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("insights took %s, expected the deadline to cut them short", elapsed)
		}
		if out.Source != InsightSourceRules {
			t.Errorf("expected rules source, got %s", out.Source)
		}
		if out.State != ViewStatePopulated || len(out.Insights) == 0 {
			t.Errorf("unexpected output %+v", out)
		}
	})

	t.Run("negative balance warning without generator", func(t *testing.T) {
		snapshot := entity.NewRecordSnapshot(userID, []*entity.Record{
			newRecord(userID, "2024-01-05T10:00:00Z", "80", "Food", entity.RecordTypeExpense),
			newRecord(userID, "2024-01-05T11:00:00Z", "20", "Bills", entity.RecordTypeExpense),
			newRecord(userID, "2024-01-05T12:00:00Z", "40", "Salary", entity.RecordTypeIncome),
		})
		uc := NewGetInsightsUseCase(&staticLoader{snapshot: snapshot}, nil, format, time.Second)

		out, err := uc.Execute(ctx, GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Insights) != 3 {
			t.Fatalf("expected 3 insights, got %d", len(out.Insights))
		}
		if out.Insights[0].Type != adapter.InsightWarning || out.Insights[0].Message != "You spent Rs. 60.00 more than you earned." {
			t.Errorf("unexpected warning %+v", out.Insights[0])
		}
		if out.Insights[2].ID != "concentrated-spending" {
			t.Errorf("expected concentrated spending tip, got %+v", out.Insights[2])
		}
	})
}

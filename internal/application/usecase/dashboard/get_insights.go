package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/aggregation"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// MaxInsights bounds the number of insight cards.
const MaxInsights = 3

// topCategoriesForAI is how many categories per type are summarized for the generator.
const topCategoriesForAI = 5

// InsightSource tells where the insights came from.
type InsightSource string

const (
	InsightSourceAI    InsightSource = "ai"
	InsightSourceRules InsightSource = "rules"
)

// GetInsightsInput represents the input for the insights panel.
type GetInsightsInput struct {
	UserID uuid.UUID
}

// GetInsightsOutput is the insights panel.
type GetInsightsOutput struct {
	State    ViewState
	Source   InsightSource
	Insights []*adapter.Insight
}

// GetInsightsUseCase produces short observations about the user's finances.
// It uses the insight service when available and falls back to local rules.
type GetInsightsUseCase struct {
	source         SnapshotLoader
	insightService adapter.InsightService
	format         valueobject.DisplayFormat
	timeout        time.Duration
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance. insightService may be nil.
// timeout bounds each generator call; zero leaves it unbounded.
func NewGetInsightsUseCase(
	source SnapshotLoader,
	insightService adapter.InsightService,
	format valueobject.DisplayFormat,
	timeout time.Duration,
) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		source:         source,
		insightService: insightService,
		format:         format,
		timeout:        timeout,
	}
}

// Execute loads the snapshot and generates insights.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (*GetInsightsOutput, error) {
	snapshot, err := uc.source.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return uc.FromSnapshot(ctx, snapshot), nil
}

// FromSnapshot generates insights from a loaded snapshot. Generator failures
// degrade to rule based insights.
func (uc *GetInsightsUseCase) FromSnapshot(ctx context.Context, snapshot *entity.RecordSnapshot) *GetInsightsOutput {
	if snapshot.IsEmpty() {
		return &GetInsightsOutput{
			State:    ViewStateEmpty,
			Source:   InsightSourceRules,
			Insights: uc.ruleInsights(nil),
		}
	}

	if uc.insightService != nil && uc.insightService.IsAvailable() {
		insights, err := uc.generate(ctx, snapshot.Records)
		if err == nil && len(insights) > 0 {
			if len(insights) > MaxInsights {
				insights = insights[:MaxInsights]
			}
			return &GetInsightsOutput{
				State:    ViewStatePopulated,
				Source:   InsightSourceAI,
				Insights: insights,
			}
		}
		if err != nil {
			slog.Warn("insight generation failed, using rule based insights",
				"userID", snapshot.UserID,
				"timedOut", errors.Is(err, context.DeadlineExceeded),
				"error", err,
			)
		}
	}

	return &GetInsightsOutput{
		State:    ViewStatePopulated,
		Source:   InsightSourceRules,
		Insights: uc.ruleInsights(snapshot.Records),
	}
}

// generate calls the insight service under the configured deadline. The
// result is abandoned once the deadline passes, even if the service ignores ctx.
func (uc *GetInsightsUseCase) generate(ctx context.Context, records []*entity.Record) ([]*adapter.Insight, error) {
	summary := uc.summarize(records)
	if uc.timeout <= 0 {
		return uc.insightService.GenerateInsights(ctx, summary)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type result struct {
		insights []*adapter.Insight
		err      error
	}
	done := make(chan result, 1)
	go func() {
		insights, err := uc.insightService.GenerateInsights(ctx, summary)
		done <- result{insights, err}
	}()

	select {
	case r := <-done:
		return r.insights, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("insight generation abandoned: %w", ctx.Err())
	}
}

func (uc *GetInsightsUseCase) ruleInsights(records []*entity.Record) []*adapter.Insight {
	if len(records) == 0 {
		return []*adapter.Insight{{
			ID:      "get-started",
			Type:    adapter.InsightInfo,
			Title:   "Start tracking",
			Message: "Add your first income or expense record to get personalized insights.",
			Action:  "Add a record",
		}}
	}

	totals := aggregation.ComputeTotals(records)
	insights := make([]*adapter.Insight, 0, MaxInsights)

	switch {
	case totals.Balance.IsNegative():
		insights = append(insights, &adapter.Insight{
			ID:      "negative-balance",
			Type:    adapter.InsightWarning,
			Title:   "Spending exceeds income",
			Message: fmt.Sprintf("You spent %s more than you earned.", uc.format.Amount(totals.Balance.Abs())),
			Action:  "Review expenses",
		})
	case totals.Income.IsPositive():
		rate := aggregation.Percentage(totals.Balance, totals.Income)
		insights = append(insights, &adapter.Insight{
			ID:      "savings-rate",
			Type:    adapter.InsightSuccess,
			Title:   "Positive balance",
			Message: fmt.Sprintf("You saved %s of your income.", uc.format.Percent(rate)),
			Action:  "Keep it up",
		})
	}

	expenses := aggregation.GroupByCategory(records, entity.RecordTypeExpense)
	if len(expenses) > 0 {
		top := expenses[0]
		share := aggregation.Percentage(top.Amount, aggregation.Sum(expenses))
		insights = append(insights, &adapter.Insight{
			ID:    "top-expense-category",
			Type:  adapter.InsightInfo,
			Title: "Top spending category",
			Message: fmt.Sprintf("%s %s accounts for %s of your expenses (%s).",
				entity.CategorySymbol(top.Category, entity.RecordTypeExpense),
				top.Category,
				uc.format.Percent(share),
				uc.format.Amount(top.Amount),
			),
			Action: "View breakdown",
		})

		if share > 50 && len(expenses) > 1 {
			insights = append(insights, &adapter.Insight{
				ID:      "concentrated-spending",
				Type:    adapter.InsightTip,
				Title:   "Concentrated spending",
				Message: fmt.Sprintf("More than half of your spending goes to %s. Setting a limit there has the biggest effect.", top.Category),
				Action:  "Plan a budget",
			})
		}
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func (uc *GetInsightsUseCase) summarize(records []*entity.Record) *adapter.SpendingSummary {
	totals := aggregation.ComputeTotals(records)
	buckets := aggregation.GroupByDate(records)

	summary := &adapter.SpendingSummary{
		TotalIncome:   totals.Income.StringFixed(2),
		TotalExpenses: totals.Expense.StringFixed(2),
		Balance:       totals.Balance.StringFixed(2),
		RecordCount:   len(records),
		TopExpenses:   topCategories(records, entity.RecordTypeExpense),
		TopIncome:     topCategories(records, entity.RecordTypeIncome),
	}
	if len(buckets) > 0 {
		summary.FirstDate = buckets[0].Key
		summary.LastDate = buckets[len(buckets)-1].Key
	}
	return summary
}

func topCategories(records []*entity.Record, recordType entity.RecordType) []adapter.CategorySpend {
	amounts := aggregation.GroupByCategory(records, recordType)
	total := aggregation.Sum(amounts)
	if len(amounts) > topCategoriesForAI {
		amounts = amounts[:topCategoriesForAI]
	}

	result := make([]adapter.CategorySpend, 0, len(amounts))
	for _, a := range amounts {
		result = append(result, adapter.CategorySpend{
			Category:   a.Category,
			Amount:     a.Amount.StringFixed(2),
			Percentage: decimal.NewFromFloat(aggregation.Percentage(a.Amount, total)).Round(1).InexactFloat64(),
		})
	}
	return result
}

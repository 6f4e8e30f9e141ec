package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
)

// OverviewResponse holds the income, expense and balance cards.
type OverviewResponse struct {
	State              string `json:"state"`
	TotalIncome        string `json:"total_income"`
	TotalExpenses      string `json:"total_expenses"`
	Balance            string `json:"balance"`
	TotalIncomeLabel   string `json:"total_income_label"`
	TotalExpensesLabel string `json:"total_expenses_label"`
	BalanceLabel       string `json:"balance_label"`
	BalanceHealthy     bool   `json:"balance_healthy"`
}

// CategoryBreakdownItemResponse is one row of the breakdown.
type CategoryBreakdownItemResponse struct {
	Category        string  `json:"category"`
	Symbol          string  `json:"symbol"`
	Amount          string  `json:"amount"`
	Percentage      float64 `json:"percentage"`
	AmountLabel     string  `json:"amount_label"`
	PercentageLabel string  `json:"percentage_label"`
}

// CategoryBreakdownResponse is the breakdown of one tab.
type CategoryBreakdownResponse struct {
	State        string                          `json:"state"`
	Type         string                          `json:"type"`
	Total        string                          `json:"total"`
	TotalLabel   string                          `json:"total_label"`
	Categories   []CategoryBreakdownItemResponse `json:"categories"`
	EmptyMessage string                          `json:"empty_message,omitempty"`
}

// ChartPointResponse is one day of the chart with its tooltip lines.
type ChartPointResponse struct {
	Date          string   `json:"date"`
	Label         string   `json:"label"`
	Expense       float64  `json:"expense"`
	Income        float64  `json:"income"`
	Categories    []string `json:"categories"`
	ExpenseDetail string   `json:"expense_detail"`
	IncomeDetail  string   `json:"income_detail"`
	CategoryLine  string   `json:"category_line"`
}

// ChartResponse is the daily bar chart.
type ChartResponse struct {
	State     string               `json:"state"`
	AxisTitle string               `json:"axis_title"`
	Labels    []string             `json:"labels"`
	Expenses  []float64            `json:"expenses"`
	Income    []float64            `json:"income"`
	Points    []ChartPointResponse `json:"points"`
}

// QuickActionResponse is one quick action button.
type QuickActionResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	RecordType  string `json:"record_type,omitempty"`
	Section     string `json:"section,omitempty"`
}

// QuickActionsResponse is the quick actions panel.
type QuickActionsResponse struct {
	Title    string                `json:"title"`
	Subtitle string                `json:"subtitle"`
	Actions  []QuickActionResponse `json:"actions"`
}

// InsightResponse is one insight card.
type InsightResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// InsightsResponse is the insights panel.
type InsightsResponse struct {
	State    string            `json:"state"`
	Source   string            `json:"source"`
	Insights []InsightResponse `json:"insights"`
}

// ToOverviewResponse converts a GetFinancialOverviewOutput to its DTO.
func ToOverviewResponse(output *dashboard.GetFinancialOverviewOutput) OverviewResponse {
	return OverviewResponse{
		State:              string(output.State),
		TotalIncome:        output.TotalIncome.StringFixed(2),
		TotalExpenses:      output.TotalExpenses.StringFixed(2),
		Balance:            output.Balance.StringFixed(2),
		TotalIncomeLabel:   output.TotalIncomeLabel,
		TotalExpensesLabel: output.TotalExpensesLabel,
		BalanceLabel:       output.BalanceLabel,
		BalanceHealthy:     output.BalanceHealthy,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to its DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	items := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		items[i] = CategoryBreakdownItemResponse{
			Category:        c.Category,
			Symbol:          c.Symbol,
			Amount:          c.Amount.StringFixed(2),
			Percentage:      c.Percentage,
			AmountLabel:     c.AmountLabel,
			PercentageLabel: c.PercentageLabel,
		}
	}
	return CategoryBreakdownResponse{
		State:        string(output.State),
		Type:         string(output.Type),
		Total:        output.Total.StringFixed(2),
		TotalLabel:   output.TotalLabel,
		Categories:   items,
		EmptyMessage: output.EmptyMessage,
	}
}

// ToChartResponse converts a GetChartDataOutput to its DTO.
func ToChartResponse(output *dashboard.GetChartDataOutput) ChartResponse {
	points := make([]ChartPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = ChartPointResponse{
			Date:          p.Date,
			Label:         p.Label,
			Expense:       p.Expense.InexactFloat64(),
			Income:        p.Income.InexactFloat64(),
			Categories:    p.Categories,
			ExpenseDetail: p.ExpenseDetail,
			IncomeDetail:  p.IncomeDetail,
			CategoryLine:  p.CategoryLine,
		}
	}
	return ChartResponse{
		State:     string(output.State),
		AxisTitle: output.AxisTitle,
		Labels:    nonNilStrings(output.Labels),
		Expenses:  toFloats(output.Expenses),
		Income:    toFloats(output.Income),
		Points:    points,
	}
}

// ToQuickActionsResponse converts a GetQuickActionsOutput to its DTO.
func ToQuickActionsResponse(output *dashboard.GetQuickActionsOutput) QuickActionsResponse {
	actions := make([]QuickActionResponse, len(output.Actions))
	for i, a := range output.Actions {
		actions[i] = QuickActionResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			RecordType:  string(a.RecordType),
			Section:     a.Section,
		}
	}
	return QuickActionsResponse{
		Title:    output.Title,
		Subtitle: output.Subtitle,
		Actions:  actions,
	}
}

// ToInsightsResponse converts a GetInsightsOutput to its DTO.
func ToInsightsResponse(output *dashboard.GetInsightsOutput) InsightsResponse {
	insights := make([]InsightResponse, len(output.Insights))
	for i, in := range output.Insights {
		insights[i] = InsightResponse{
			ID:      in.ID,
			Type:    string(in.Type),
			Title:   in.Title,
			Message: in.Message,
			Action:  in.Action,
		}
	}
	return InsightsResponse{
		State:    string(output.State),
		Source:   string(output.Source),
		Insights: insights,
	}
}

func toFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

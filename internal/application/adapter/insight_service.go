package adapter

import (
	"context"
)

// InsightType classifies an insight card.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightSuccess InsightType = "success"
	InsightTip     InsightType = "tip"
)

// Insight is a short observation about the user's finances.
type Insight struct {
	ID      string
	Type    InsightType
	Title   string
	Message string
	Action  string
}

// SpendingSummary is the aggregated, anonymous input sent to the insight generator.
type SpendingSummary struct {
	TotalIncome   string
	TotalExpenses string
	Balance       string
	RecordCount   int
	TopExpenses   []CategorySpend
	TopIncome     []CategorySpend
	FirstDate     string
	LastDate      string
}

// CategorySpend is a category total inside a SpendingSummary.
type CategorySpend struct {
	Category   string
	Amount     string
	Percentage float64
}

// InsightService generates insights from a spending summary.
type InsightService interface {
	// GenerateInsights returns at most a few insights for the summary.
	GenerateInsights(ctx context.Context, summary *SpendingSummary) ([]*Insight, error)

	// IsAvailable checks if the service is configured.
	IsAvailable() bool
}

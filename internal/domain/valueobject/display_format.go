// Package valueobject contains domain value objects for the finance dashboard.
package valueobject

import (
	"github.com/shopspring/decimal"
)

// DisplayFormat controls how amounts and percentages are labelled.
type DisplayFormat struct {
	CurrencyPrefix string // "Rs."
	AmountPlaces   int32  // 2
	PercentPlaces  int32  // 1
}

// DefaultDisplayFormat returns the default display format.
func DefaultDisplayFormat() DisplayFormat {
	return DisplayFormat{
		CurrencyPrefix: "Rs.",
		AmountPlaces:   2,
		PercentPlaces:  1,
	}
}

// NewDisplayFormat returns the default format with the given currency prefix.
// An empty prefix keeps the default.
func NewDisplayFormat(currencyPrefix string) DisplayFormat {
	f := DefaultDisplayFormat()
	if currencyPrefix != "" {
		f.CurrencyPrefix = currencyPrefix
	}
	return f
}

// Amount formats a card amount, e.g. "Rs. 1000.00".
func (f DisplayFormat) Amount(amount decimal.Decimal) string {
	return f.CurrencyPrefix + " " + amount.StringFixed(f.AmountPlaces)
}

// CompactAmount formats a chart amount without the separating space, e.g. "Rs.1000.00".
func (f DisplayFormat) CompactAmount(amount decimal.Decimal) string {
	return f.CurrencyPrefix + amount.StringFixed(f.AmountPlaces)
}

// Percent formats a percentage, e.g. "66.7%".
func (f DisplayFormat) Percent(percentage float64) string {
	return decimal.NewFromFloat(percentage).StringFixed(f.PercentPlaces) + "%"
}

// AxisTitle is the chart's amount axis title, e.g. "Amount (Rs.)".
func (f DisplayFormat) AxisTitle() string {
	return "Amount (" + f.CurrencyPrefix + ")"
}

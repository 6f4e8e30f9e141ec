// Package aggregation derives dashboard summaries from a flat list of records.
// All functions are pure: they never mutate their input.
package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DateKeyLayout is the layout of a bucket key (UTC calendar day).
const DateKeyLayout = "2006-01-02"

// DateBucket holds the totals of one UTC calendar day.
type DateBucket struct {
	Key          string // YYYY-MM-DD
	Label        string // MM/DD
	TotalExpense decimal.Decimal
	TotalIncome  decimal.Decimal
	Categories   []string
	OriginalDate time.Time // first-seen timestamp for the day
}

// CategoryAmount is the summed amount of one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Totals are the overall income, expense and balance of a record list.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// DateKey returns the UTC YYYY-MM-DD key of t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// GroupByDate buckets records per UTC calendar day, sorted chronologically.
// Missing days are not filled in.
func GroupByDate(records []*entity.Record) []DateBucket {
	buckets := make(map[string]*DateBucket)
	seen := make(map[string]map[string]struct{})
	order := make([]string, 0)

	for _, r := range records {
		key := DateKey(r.Date)
		bucket, ok := buckets[key]
		if !ok {
			utc := r.Date.UTC()
			bucket = &DateBucket{
				Key:          key,
				Label:        utc.Format("01/02"),
				TotalExpense: decimal.Zero,
				TotalIncome:  decimal.Zero,
				Categories:   []string{},
				OriginalDate: r.Date,
			}
			buckets[key] = bucket
			seen[key] = make(map[string]struct{})
			order = append(order, key)
		}

		if r.Type == entity.RecordTypeExpense {
			bucket.TotalExpense = bucket.TotalExpense.Add(r.Amount)
		} else {
			bucket.TotalIncome = bucket.TotalIncome.Add(r.Amount)
		}

		if _, ok := seen[key][r.Category]; !ok {
			seen[key][r.Category] = struct{}{}
			bucket.Categories = append(bucket.Categories, r.Category)
		}
	}

	result := make([]DateBucket, 0, len(order))
	for _, key := range order {
		result = append(result, *buckets[key])
	}

	// Sorted by timestamp, not by key string.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OriginalDate.Before(result[j].OriginalDate)
	})

	return result
}

// GroupByCategory sums the amounts of records of the given type per category,
// sorted descending by amount. Ties keep first-encountered order.
func GroupByCategory(records []*entity.Record, recordType entity.RecordType) []CategoryAmount {
	index := make(map[string]int)
	result := make([]CategoryAmount, 0)

	for _, r := range records {
		if r.Type != recordType {
			continue
		}
		i, ok := index[r.Category]
		if !ok {
			index[r.Category] = len(result)
			result = append(result, CategoryAmount{Category: r.Category, Amount: r.Amount})
			continue
		}
		result[i].Amount = result[i].Amount.Add(r.Amount)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount.GreaterThan(result[j].Amount)
	})

	return result
}

// Sum returns the total amount of the given category amounts.
func Sum(amounts []CategoryAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Amount)
	}
	return total
}

// Percentage returns amount as a percentage of total. A zero total yields 0.
func Percentage(amount, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return amount.Mul(decimal.NewFromInt(100)).Div(total).InexactFloat64()
}

// ComputeTotals sums income and expense over all records.
func ComputeTotals(records []*entity.Record) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range records {
		if r.Type == entity.RecordTypeExpense {
			totals.Expense = totals.Expense.Add(r.Amount)
		} else {
			totals.Income = totals.Income.Add(r.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// SortNewestFirst returns a copy of records ordered by date descending.
func SortNewestFirst(records []*entity.Record) []*entity.Record {
	sorted := make([]*entity.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

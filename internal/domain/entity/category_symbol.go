package entity

var incomeSymbols = map[string]string{
	"Salary":     "💼",
	"Freelance":  "💻",
	"Business":   "🏢",
	"Investment": "📈",
	"Gift":       "🎁",
	"Other":      "💰",
}

var expenseSymbols = map[string]string{
	"Food":           "🍔",
	"Transportation": "🚗",
	"Shopping":       "🛒",
	"Entertainment":  "🎬",
	"Bills":          "💡",
	"Healthcare":     "🏥",
	"Other":          "📦",
}

const (
	DefaultIncomeSymbol  = "💰"
	DefaultExpenseSymbol = "📦"
)

// CategorySymbol returns the decorative symbol for a category label.
// Unknown labels get the default symbol of the record type.
func CategorySymbol(category string, recordType RecordType) string {
	if recordType == RecordTypeIncome {
		if symbol, ok := incomeSymbols[category]; ok {
			return symbol
		}
		return DefaultIncomeSymbol
	}
	if symbol, ok := expenseSymbols[category]; ok {
		return symbol
	}
	return DefaultExpenseSymbol
}

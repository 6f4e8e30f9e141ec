package entity

import "testing"

func TestCategorySymbol(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		recordType RecordType
		want       string
	}{
		{"salary", "Salary", RecordTypeIncome, "💼"},
		{"freelance", "Freelance", RecordTypeIncome, "💻"},
		{"business", "Business", RecordTypeIncome, "🏢"},
		{"investment", "Investment", RecordTypeIncome, "📈"},
		{"gift", "Gift", RecordTypeIncome, "🎁"},
		{"income other", "Other", RecordTypeIncome, "💰"},
		{"unknown income", "Lottery", RecordTypeIncome, "💰"},
		{"food", "Food", RecordTypeExpense, "🍔"},
		{"transportation", "Transportation", RecordTypeExpense, "🚗"},
		{"shopping", "Shopping", RecordTypeExpense, "🛒"},
		{"entertainment", "Entertainment", RecordTypeExpense, "🎬"},
		{"bills", "Bills", RecordTypeExpense, "💡"},
		{"healthcare", "Healthcare", RecordTypeExpense, "🏥"},
		{"expense other", "Other", RecordTypeExpense, "📦"},
		{"unknown expense", "Pets", RecordTypeExpense, "📦"},
		{"case sensitive", "food", RecordTypeExpense, "📦"},
		{"income label on expense tab", "Salary", RecordTypeExpense, "📦"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorySymbol(tt.category, tt.recordType); got != tt.want {
				t.Errorf("CategorySymbol(%q, %q) = %q, want %q", tt.category, tt.recordType, got, tt.want)
			}
		})
	}
}

func TestFirstNameOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ana Souza", "Ana"},
		{"  Ravi  ", "Ravi"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FirstNameOf(tt.in); got != tt.want {
				t.Errorf("FirstNameOf(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

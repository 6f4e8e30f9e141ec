package dashboard

import (
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// QuickAction is a shortcut button of the dashboard.
type QuickAction struct {
	ID          string
	Title       string
	Description string
	Icon        string
	RecordType  entity.RecordType // preselected entry type, empty for navigation actions
	Section     string            // section to reveal, empty for entry actions
}

// GetQuickActionsOutput is the quick actions panel.
type GetQuickActionsOutput struct {
	Title    string
	Subtitle string
	Actions  []QuickAction
}

// GetQuickActionsUseCase returns the fixed quick actions panel.
type GetQuickActionsUseCase struct{}

// NewGetQuickActionsUseCase creates a new GetQuickActionsUseCase instance.
func NewGetQuickActionsUseCase() *GetQuickActionsUseCase {
	return &GetQuickActionsUseCase{}
}

// Execute returns the quick actions in display order.
func (uc *GetQuickActionsUseCase) Execute() *GetQuickActionsOutput {
	return &GetQuickActionsOutput{
		Title:    "Quick Actions",
		Subtitle: "Fast access to common tasks",
		Actions: []QuickAction{
			{
				ID:          "add-expense",
				Title:       "Add Expense",
				Description: "Quick expense entry",
				Icon:        "💳",
				RecordType:  entity.RecordTypeExpense,
			},
			{
				ID:          "add-income",
				Title:       "Add Income",
				Description: "Record new income",
				Icon:        "💰",
				RecordType:  entity.RecordTypeIncome,
			},
			{
				ID:          "view-stats",
				Title:       "View Analytics",
				Description: "Financial insights",
				Icon:        "📊",
				Section:     "stats",
			},
		},
	}
}

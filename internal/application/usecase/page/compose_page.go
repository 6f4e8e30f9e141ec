// Package page composes the dashboard screen.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/application/usecase/record"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// State is the gate of the page.
type State string

const (
	StateGuest         State = "guest"
	StateAuthenticated State = "authenticated"
)

const tagline = "Track your income and expenses, get AI insights, and manage your complete financial health efficiently."

// ComposePageInput represents the input for composing the page. A nil UserID is a guest.
type ComposePageInput struct {
	UserID *uuid.UUID
}

// GuestView is the landing view for visitors without identity.
type GuestView struct {
	Title       string
	Description string
	SignInHint  string
}

// WelcomeView greets the authenticated user.
type WelcomeView struct {
	Greeting    string
	DisplayName string
	FirstName   string
	ImageURL    string
	Message     string
}

// ComposePageOutput is the whole screen. Only Guest is set in the guest state.
type ComposePageOutput struct {
	State        State
	Guest        *GuestView
	Welcome      *WelcomeView
	QuickActions *dashboard.GetQuickActionsOutput
	Overview     *dashboard.GetFinancialOverviewOutput
	Breakdown    *dashboard.GetCategoryBreakdownOutput
	Chart        *dashboard.GetChartDataOutput
	Insights     *dashboard.GetInsightsOutput
	History      *record.ListRecordsOutput
}

// ComposePageUseCase assembles the dashboard from one shared record snapshot.
type ComposePageUseCase struct {
	currentUser  *auth.GetCurrentUserUseCase
	source       dashboard.SnapshotLoader
	quickActions *dashboard.GetQuickActionsUseCase
	overview     *dashboard.GetFinancialOverviewUseCase
	breakdown    *dashboard.GetCategoryBreakdownUseCase
	chart        *dashboard.GetChartDataUseCase
	insights     *dashboard.GetInsightsUseCase
	history      *record.ListRecordsUseCase
}

// NewComposePageUseCase creates a new ComposePageUseCase instance.
func NewComposePageUseCase(
	currentUser *auth.GetCurrentUserUseCase,
	source dashboard.SnapshotLoader,
	quickActions *dashboard.GetQuickActionsUseCase,
	overview *dashboard.GetFinancialOverviewUseCase,
	breakdown *dashboard.GetCategoryBreakdownUseCase,
	chart *dashboard.GetChartDataUseCase,
	insights *dashboard.GetInsightsUseCase,
	history *record.ListRecordsUseCase,
) *ComposePageUseCase {
	return &ComposePageUseCase{
		currentUser:  currentUser,
		source:       source,
		quickActions: quickActions,
		overview:     overview,
		breakdown:    breakdown,
		chart:        chart,
		insights:     insights,
		history:      history,
	}
}

// Execute composes the page for the caller.
func (uc *ComposePageUseCase) Execute(ctx context.Context, input ComposePageInput) (*ComposePageOutput, error) {
	if input.UserID == nil {
		return guestPage(), nil
	}
	userID := *input.UserID

	// Identity comes first so a token for a removed user never reaches the record source.
	identity, err := uc.currentUser.Execute(ctx, auth.GetCurrentUserInput{UserID: userID})
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			slog.Debug("token subject not found, rendering guest page", "userID", userID)
			return guestPage(), nil
		}
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	snapshot, err := uc.source.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ComposePageOutput{
		State: StateAuthenticated,
		Welcome: &WelcomeView{
			Greeting:    fmt.Sprintf("Welcome Back, %s!", identity.FirstName),
			DisplayName: identity.DisplayName,
			FirstName:   identity.FirstName,
			ImageURL:    identity.ImageURL,
			Message:     tagline,
		},
		QuickActions: uc.quickActions.Execute(),
		Overview:     uc.overview.FromSnapshot(snapshot),
		Breakdown:    uc.breakdown.FromSnapshot(snapshot, entity.RecordTypeExpense),
		Chart:        uc.chart.FromSnapshot(snapshot),
		Insights:     uc.insights.FromSnapshot(ctx, snapshot),
		History:      uc.history.FromSnapshot(snapshot),
	}, nil
}

func guestPage() *ComposePageOutput {
	return &ComposePageOutput{
		State: StateGuest,
		Guest: &GuestView{
			Title:       "Welcome to your finance dashboard",
			Description: tagline,
			SignInHint:  "Sign in to start tracking your records",
		},
	}
}

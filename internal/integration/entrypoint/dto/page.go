package dto

import (
	"github.com/finance-tracker/dashboard/internal/application/usecase/page"
)

// GuestResponse is the landing view for visitors.
type GuestResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SignInHint  string `json:"sign_in_hint"`
}

// WelcomeResponse greets the authenticated user.
type WelcomeResponse struct {
	Greeting    string `json:"greeting"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Message     string `json:"message"`
}

// PageResponse is the composed dashboard screen.
type PageResponse struct {
	State        string                     `json:"state"`
	Guest        *GuestResponse             `json:"guest,omitempty"`
	Welcome      *WelcomeResponse           `json:"welcome,omitempty"`
	QuickActions *QuickActionsResponse      `json:"quick_actions,omitempty"`
	Overview     *OverviewResponse          `json:"overview,omitempty"`
	Breakdown    *CategoryBreakdownResponse `json:"breakdown,omitempty"`
	Chart        *ChartResponse             `json:"chart,omitempty"`
	Insights     *InsightsResponse          `json:"insights,omitempty"`
	History      *RecordListResponse        `json:"history,omitempty"`
}

// ToPageResponse converts a ComposePageOutput to its DTO.
func ToPageResponse(output *page.ComposePageOutput) PageResponse {
	resp := PageResponse{State: string(output.State)}

	if output.Guest != nil {
		resp.Guest = &GuestResponse{
			Title:       output.Guest.Title,
			Description: output.Guest.Description,
			SignInHint:  output.Guest.SignInHint,
		}
		return resp
	}

	resp.Welcome = &WelcomeResponse{
		Greeting:    output.Welcome.Greeting,
		DisplayName: output.Welcome.DisplayName,
		FirstName:   output.Welcome.FirstName,
		ImageURL:    output.Welcome.ImageURL,
		Message:     output.Welcome.Message,
	}

	quickActions := ToQuickActionsResponse(output.QuickActions)
	overview := ToOverviewResponse(output.Overview)
	breakdown := ToCategoryBreakdownResponse(output.Breakdown)
	chart := ToChartResponse(output.Chart)
	insights := ToInsightsResponse(output.Insights)
	history := ToRecordListResponse(output.History)

	resp.QuickActions = &quickActions
	resp.Overview = &overview
	resp.Breakdown = &breakdown
	resp.Chart = &chart
	resp.Insights = &insights
	resp.History = &history
	return resp
}

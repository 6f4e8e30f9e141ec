package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

// DashboardController handles the dashboard widget endpoints.
type DashboardController struct {
	overviewUseCase     *dashboard.GetFinancialOverviewUseCase
	breakdownUseCase    *dashboard.GetCategoryBreakdownUseCase
	chartUseCase        *dashboard.GetChartDataUseCase
	quickActionsUseCase *dashboard.GetQuickActionsUseCase
	insightsUseCase     *dashboard.GetInsightsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetFinancialOverviewUseCase,
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	chartUseCase *dashboard.GetChartDataUseCase,
	quickActionsUseCase *dashboard.GetQuickActionsUseCase,
	insightsUseCase *dashboard.GetInsightsUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase:     overviewUseCase,
		breakdownUseCase:    breakdownUseCase,
		chartUseCase:        chartUseCase,
		quickActionsUseCase: quickActionsUseCase,
		insightsUseCase:     insightsUseCase,
	}
}

// GetOverview handles GET /dashboard/overview requests.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetFinancialOverviewInput{UserID: userID})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/categories?type=expense|income requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Type:   entity.RecordType(ctx.Query("type")),
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// GetChart handles GET /dashboard/chart requests.
func (c *DashboardController) GetChart(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.chartUseCase.Execute(ctx.Request.Context(), dashboard.GetChartDataInput{UserID: userID})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChartResponse(output))
}

// GetQuickActions handles GET /dashboard/quick-actions requests.
func (c *DashboardController) GetQuickActions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToQuickActionsResponse(c.quickActionsUseCase.Execute()))
}

// GetInsights handles GET /dashboard/insights requests.
func (c *DashboardController) GetInsights(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.insightsUseCase.Execute(ctx.Request.Context(), dashboard.GetInsightsInput{UserID: userID})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightsResponse(output))
}

// requireUser reads the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return id, false
	}
	return id, true
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
// A failed record fetch is a 503, never an empty dashboard.
func handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("dashboard request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidBreakdownType:
		return http.StatusBadRequest
	case domainerror.ErrCodeRecordSourceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

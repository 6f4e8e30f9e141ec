package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/application/usecase/page"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

// PageController serves the composed dashboard screen.
type PageController struct {
	composeUseCase *page.ComposePageUseCase
}

// NewPageController creates a new page controller instance.
func NewPageController(composeUseCase *page.ComposePageUseCase) *PageController {
	return &PageController{
		composeUseCase: composeUseCase,
	}
}

// Get handles GET /page requests. Anonymous callers get the guest view.
func (c *PageController) Get(ctx *gin.Context) {
	input := page.ComposePageInput{}
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		input.UserID = &userID
	}

	output, err := c.composeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPageResponse(output))
}

package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/usecase/record"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// RecordController handles record endpoints.
type RecordController struct {
	listUseCase   *record.ListRecordsUseCase
	createUseCase *record.CreateRecordUseCase
	updateUseCase *record.UpdateRecordUseCase
	deleteUseCase *record.DeleteRecordUseCase
}

// NewRecordController creates a new record controller instance.
func NewRecordController(
	listUseCase *record.ListRecordsUseCase,
	createUseCase *record.CreateRecordUseCase,
	updateUseCase *record.UpdateRecordUseCase,
	deleteUseCase *record.DeleteRecordUseCase,
) *RecordController {
	return &RecordController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /records requests.
func (c *RecordController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), record.ListRecordsInput{UserID: userID})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordListResponse(output))
}

// Create handles POST /records requests.
func (c *RecordController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecordFields),
		})
		return
	}

	input := record.CreateRecordInput{
		UserID:   userID,
		Text:     req.Text,
		Amount:   decimal.NewFromFloat(*req.Amount),
		Category: req.Category,
		Type:     entity.RecordType(req.Type),
	}

	if req.Date != "" {
		date, err := parseRecordDate(req.Date)
		if err != nil {
			c.writeInvalidDate(ctx)
			return
		}
		input.Date = &date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordResponse(output.Record))
}

// Update handles PUT /records/:id requests.
func (c *RecordController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	recordID, ok := c.parseRecordID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecordFields),
		})
		return
	}

	input := record.UpdateRecordInput{
		RecordID: recordID,
		UserID:   userID,
		Text:     req.Text,
		Category: req.Category,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Type != nil {
		recordType := entity.RecordType(*req.Type)
		input.Type = &recordType
	}
	if req.Date != nil {
		date, err := parseRecordDate(*req.Date)
		if err != nil {
			c.writeInvalidDate(ctx)
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordResponse(output.Record))
}

// Delete handles DELETE /records/:id requests.
func (c *RecordController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	recordID, ok := c.parseRecordID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), record.DeleteRecordInput{
		RecordID: recordID,
		UserID:   userID,
	}); err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *RecordController) parseRecordID(ctx *gin.Context) (uuid.UUID, bool) {
	recordID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Record not found",
			Code:  string(domainerror.ErrCodeRecordNotFound),
		})
		return uuid.Nil, false
	}
	return recordID, true
}

func (c *RecordController) writeInvalidDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "date must be YYYY-MM-DD or RFC 3339",
		Code:  string(domainerror.ErrCodeInvalidRecordDate),
	})
}

// parseRecordDate accepts a calendar date or a full timestamp.
func parseRecordDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.DateOnly, value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}

// handleRecordError handles record errors and returns appropriate HTTP responses.
func (c *RecordController) handleRecordError(ctx *gin.Context, err error) {
	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		ctx.JSON(c.getStatusCodeForRecordError(recordErr.Code), dto.ErrorResponse{
			Error: recordErr.Message,
			Code:  string(recordErr.Code),
		})
		return
	}

	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		handleDashboardError(ctx, err)
		return
	}

	slog.Error("record request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecordError maps record error codes to HTTP status codes.
func (c *RecordController) getStatusCodeForRecordError(code domainerror.RecordErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecordNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidRecordType,
		domainerror.ErrCodeNegativeAmount,
		domainerror.ErrCodeInvalidRecordAmount,
		domainerror.ErrCodeInvalidRecordDate,
		domainerror.ErrCodeMissingCategory,
		domainerror.ErrCodeMissingText,
		domainerror.ErrCodeTextTooLong,
		domainerror.ErrCodeMissingRecordFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package dto

import (
	"time"

	"github.com/finance-tracker/dashboard/internal/application/usecase/record"
)

// CreateRecordRequest represents the request body for record creation.
// Date accepts YYYY-MM-DD or RFC 3339 and defaults to now.
type CreateRecordRequest struct {
	Text     string   `json:"text"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Type     string   `json:"type"`
	Date     string   `json:"date,omitempty"`
}

// UpdateRecordRequest represents the request body for a partial record update.
type UpdateRecordRequest struct {
	Text     *string  `json:"text,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Category *string  `json:"category,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Date     *string  `json:"date,omitempty"`
}

// RecordResponse represents a single record in API responses.
type RecordResponse struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Amount      string    `json:"amount"`
	AmountLabel string    `json:"amount_label"`
	Category    string    `json:"category"`
	Symbol      string    `json:"symbol"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecordListResponse is the record history.
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total"`
}

// ToRecordResponse converts a RecordOutput to a RecordResponse DTO.
func ToRecordResponse(output *record.RecordOutput) RecordResponse {
	return RecordResponse{
		ID:          output.ID.String(),
		Text:        output.Text,
		Amount:      output.Amount.StringFixed(2),
		AmountLabel: output.AmountLabel,
		Category:    output.Category,
		Symbol:      output.Symbol,
		Type:        string(output.Type),
		Date:        output.Date.Format(time.RFC3339),
		CreatedAt:   output.CreatedAt,
		UpdatedAt:   output.UpdatedAt,
	}
}

// ToRecordListResponse converts a ListRecordsOutput to its DTO.
func ToRecordListResponse(output *record.ListRecordsOutput) RecordListResponse {
	records := make([]RecordResponse, len(output.Records))
	for i, r := range output.Records {
		records[i] = ToRecordResponse(r)
	}
	return RecordListResponse{
		Records: records,
		Total:   output.Total,
	}
}

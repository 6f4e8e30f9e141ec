// Package record contains record-related use cases.
package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

// RecordOutput represents a record in use case outputs.
type RecordOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Text        string
	Amount      decimal.Decimal
	AmountLabel string
	Category    string
	Symbol      string
	Type        entity.RecordType
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toRecordOutput(r *entity.Record, format valueobject.DisplayFormat) *RecordOutput {
	return &RecordOutput{
		ID:          r.ID,
		UserID:      r.UserID,
		Text:        r.Text,
		Amount:      r.Amount,
		AmountLabel: format.Amount(r.Amount),
		Category:    r.Category,
		Symbol:      entity.CategorySymbol(r.Category, r.Type),
		Type:        r.Type,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeMissingText,
			"text is required",
			domainerror.ErrMissingText,
		)
	}
	if len([]rune(text)) > domainerror.MaxRecordTextLength {
		return domainerror.NewRecordError(
			domainerror.ErrCodeTextTooLong,
			fmt.Sprintf("text must not exceed %d characters", domainerror.MaxRecordTextLength),
			domainerror.ErrTextTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	return nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}
	return nil
}

func validateType(recordType entity.RecordType) error {
	if !recordType.IsValid() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordType,
			"record type must be 'expense' or 'income'",
			domainerror.ErrInvalidRecordType,
		)
	}
	return nil
}

// invalidate drops the user's snapshot. A failure leaves the snapshot stale
// until its TTL expires, so it is logged and not returned.
func invalidate(ctx context.Context, invalidator adapter.SnapshotInvalidator, r *entity.Record, kind adapter.RecordChangeKind) {
	if invalidator == nil {
		return
	}
	change := adapter.RecordChange{
		UserID:     r.UserID,
		RecordID:   r.ID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	if err := invalidator.Invalidate(ctx, change); err != nil {
		slog.Warn("failed to invalidate record snapshot",
			"userID", r.UserID,
			"recordID", r.ID,
			"error", err,
		)
	}
}

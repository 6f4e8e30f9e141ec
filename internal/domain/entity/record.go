// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType partitions records into income and expense.
type RecordType string

const (
	RecordTypeExpense RecordType = "expense"
	RecordTypeIncome  RecordType = "income"
)

// IsValid reports whether t is one of the known record types.
func (t RecordType) IsValid() bool {
	return t == RecordTypeExpense || t == RecordTypeIncome
}

// Record is a single income or expense entry owned by a user.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Text      string
	Amount    decimal.Decimal
	Category  string
	Type      RecordType
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord creates a new Record. Date is normalized to UTC.
func NewRecord(userID uuid.UUID, text string, amount decimal.Decimal, category string, recordType RecordType, date time.Time) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Amount:    amount,
		Category:  category,
		Type:      recordType,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpense reports whether the record is an expense.
func (r *Record) IsExpense() bool {
	return r.Type == RecordTypeExpense
}

// RecordSnapshot is the full, read-only record set of a user at LoadedAt.
// Every dashboard view is derived from the same snapshot.
type RecordSnapshot struct {
	UserID   uuid.UUID
	Records  []*Record
	LoadedAt time.Time
}

// NewRecordSnapshot builds a snapshot for the given user.
func NewRecordSnapshot(userID uuid.UUID, records []*Record) *RecordSnapshot {
	if records == nil {
		records = []*Record{}
	}
	return &RecordSnapshot{
		UserID:   userID,
		Records:  records,
		LoadedAt: time.Now().UTC(),
	}
}

// IsEmpty reports whether the snapshot holds no records.
func (s *RecordSnapshot) IsEmpty() bool {
	return s == nil || len(s.Records) == 0
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// RecordModel represents the records table in the database.
// Date keeps the full timestamp; day bucketing happens on read.
type RecordModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Text      string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category  string          `gorm:"type:varchar(50);not null"`
	Type      string          `gorm:"type:varchar(10);not null;index"`
	Date      time.Time       `gorm:"not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RecordModel.
func (RecordModel) TableName() string {
	return "records"
}

// ToEntity converts a RecordModel to a domain Record entity.
func (m *RecordModel) ToEntity() *entity.Record {
	return &entity.Record{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		Amount:    m.Amount,
		Category:  m.Category,
		Type:      entity.RecordType(m.Type),
		Date:      m.Date.UTC(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RecordFromEntity creates a RecordModel from a domain Record entity.
func RecordFromEntity(record *entity.Record) *RecordModel {
	return &RecordModel{
		ID:        record.ID,
		UserID:    record.UserID,
		Text:      record.Text,
		Amount:    record.Amount,
		Category:  record.Category,
		Type:      string(record.Type),
		Date:      record.Date.UTC(),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

// recordRepository implements the adapter.RecordRepository interface.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) adapter.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// Create creates a new record in the database.
func (r *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).Create(model.RecordFromEntity(record)).Error
}

// FindByID retrieves a record by its ID.
func (r *recordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	var recordModel model.RecordModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecordNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// FindAllByUserID retrieves every record of a user, newest first.
func (r *recordRepository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Record, error) {
	var recordModels []model.RecordModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.Record, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToEntity()
	}
	return records, nil
}

// Update updates an existing record in the database.
func (r *recordRepository) Update(ctx context.Context, record *entity.Record) error {
	result := r.db.WithContext(ctx).Save(model.RecordFromEntity(record))
	return result.Error
}

// Delete removes a record from the database.
func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

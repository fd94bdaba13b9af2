package notes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
)

// Repository exposes persistence helpers for batch notes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BatchForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error)
	Create(ctx context.Context, note *models.Note) error
	List(ctx context.Context, batchID uuid.UUID, filters ListFilters) ([]models.Note, error)
	Delete(ctx context.Context, noteID, batchID, userID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a note repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) BatchForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", batchID, userID).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repositoryImpl) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repositoryImpl) List(ctx context.Context, batchID uuid.UUID, filters ListFilters) ([]models.Note, error) {
	query := r.db.WithContext(ctx).Where("batch_id = ?", batchID)
	if filters.StageID != nil {
		query = query.Where("stage_id = ?", *filters.StageID)
	}

	direction := "DESC"
	if filters.Order == "asc" {
		direction = "ASC"
	}

	var notes []models.Note
	if err := query.Order("created_at " + direction).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, noteID, batchID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND batch_id = ? AND user_id = ?", noteID, batchID, userID).
		Delete(&models.Note{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

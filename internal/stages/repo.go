package stages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/types"
)

// Repository exposes persistence helpers for batch stages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BatchForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error)
	ListOrdered(ctx context.Context, batchID uuid.UUID) ([]models.BatchStage, error)
	CompleteIfOpen(ctx context.Context, stageID uuid.UUID, day types.Date) (int64, error)
	Start(ctx context.Context, stageID uuid.UUID, day types.Date) error
	CreateNote(ctx context.Context, note *models.Note) error
	ListStageNotes(ctx context.Context, batchID, stageID uuid.UUID) ([]models.Note, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a stage repository bound to the provided database.
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

func (r *repositoryImpl) ListOrdered(ctx context.Context, batchID uuid.UUID) ([]models.BatchStage, error) {
	var list []models.BatchStage
	err := r.db.WithContext(ctx).
		Joins("JOIN template_stages ON template_stages.id = batch_stages.template_stage_id").
		Preload("TemplateStage").
		Where("batch_stages.batch_id = ?", batchID).
		Order("template_stages.position ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CompleteIfOpen sets completed_at only when the stage is still open, so a
// concurrent advance loses the race instead of double-completing.
func (r *repositoryImpl) CompleteIfOpen(ctx context.Context, stageID uuid.UUID, day types.Date) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BatchStage{}).
		Where("id = ? AND completed_at IS NULL", stageID).
		UpdateColumn("completed_at", day)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) Start(ctx context.Context, stageID uuid.UUID, day types.Date) error {
	return r.db.WithContext(ctx).
		Model(&models.BatchStage{}).
		Where("id = ?", stageID).
		UpdateColumn("started_at", day).Error
}

func (r *repositoryImpl) CreateNote(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repositoryImpl) ListStageNotes(ctx context.Context, batchID, stageID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND stage_id = ?", batchID, stageID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

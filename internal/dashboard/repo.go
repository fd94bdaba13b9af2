package dashboard

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
)

// Repository exposes the aggregate queries behind the dashboard.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ActiveBatches(ctx context.Context, userID uuid.UUID, limit int) ([]models.Batch, error)
	ArchivedCount(ctx context.Context, userID uuid.UUID) (int64, error)
	NotesCount(ctx context.Context, userID uuid.UUID) (int64, error)
	LatestNote(ctx context.Context, batchID uuid.UUID) (*models.Note, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a dashboard repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ActiveBatches(ctx context.Context, userID uuid.UUID, limit int) ([]models.Batch, error) {
	var list []models.Batch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.BatchStatusActive).
		Order("started_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repositoryImpl) ArchivedCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("user_id = ? AND status = ?", userID, enums.BatchStatusArchived).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) NotesCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) LatestNote(ctx context.Context, batchID uuid.UUID) (*models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Limit(1).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

package batches

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/types"
)

// Repository exposes persistence helpers for batches and their projections.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, batch *models.Batch) error
	ForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.Batch, error)
	UpdateName(ctx context.Context, batchID, userID uuid.UUID, name string) (int64, error)
	Archive(ctx context.Context, batchID uuid.UUID, day types.Date) error
	Delete(ctx context.Context, batchID, userID uuid.UUID) (int64, error)
	LatestNote(ctx context.Context, batchID uuid.UUID) (*models.Note, error)
	ListNotes(ctx context.Context, batchID uuid.UUID) ([]models.Note, error)
	RatingValue(ctx context.Context, batchID, userID uuid.UUID) (*int, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a batch repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// Create inserts the batch together with any stages attached to it.
func (r *repositoryImpl) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *repositoryImpl) ForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", batchID, userID).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"started_at": "started_at",
	"name":       "name",
}

func (r *repositoryImpl) List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.Batch, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("user_id = ?", userID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	column, ok := sortColumns[filters.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filters.Order == "asc" {
		direction = "ASC"
	}

	var list []models.Batch
	if err := query.Order(column + " " + direction).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repositoryImpl) UpdateName(ctx context.Context, batchID, userID uuid.UUID, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ? AND user_id = ?", batchID, userID).
		Update("name", name)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) Archive(ctx context.Context, batchID uuid.UUID, day types.Date) error {
	return r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"status":       "archived",
			"completed_at": day,
		}).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, batchID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", batchID, userID).
		Delete(&models.Batch{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// LatestNote returns the newest note for the batch, or nil when none exist.
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

func (r *repositoryImpl) ListNotes(ctx context.Context, batchID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// RatingValue returns the user's rating for the batch, or nil when unrated.
func (r *repositoryImpl) RatingValue(ctx context.Context, batchID, userID uuid.UUID) (*int, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND user_id = ?", batchID, userID).
		Limit(1).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}
	value := ratings[0].Rating
	return &value, nil
}

package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MajQs/WineLog/pkg/db/models"
)

// Repository exposes persistence helpers for batch ratings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BatchForUser(ctx context.Context, batchID, userID uuid.UUID) (*models.Batch, error)
	Get(ctx context.Context, batchID, userID uuid.UUID) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a rating repository bound to the provided database.
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

func (r *repositoryImpl) Get(ctx context.Context, batchID, userID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND user_id = ?", batchID, userID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Upsert writes the rating, replacing any existing value for the same
// (batch, user) pair in a single statement.
func (r *repositoryImpl) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "batch_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
}

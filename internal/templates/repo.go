package templates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
)

// Repository exposes persistence helpers for the template catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, typeFilter *enums.BatchType) ([]models.Template, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Template, error)
	GetWithStages(ctx context.Context, id uuid.UUID) (*models.Template, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a template repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) List(ctx context.Context, typeFilter *enums.BatchType) ([]models.Template, error) {
	query := r.db.WithContext(ctx).Model(&models.Template{})
	if typeFilter != nil {
		query = query.Where("type = ?", *typeFilter)
	}

	var list []models.Template
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repositoryImpl) GetWithStages(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var template models.Template
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

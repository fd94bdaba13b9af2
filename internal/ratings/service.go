package ratings

import (
	"context"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
)

// Service defines rating operations. Ratings exist only on completed batches.
type Service interface {
	Get(ctx context.Context, userID, batchID uuid.UUID) (*DTO, error)
	// Upsert stores the rating and reports whether it was newly created.
	Upsert(ctx context.Context, userID, batchID uuid.UUID, cmd UpsertCommand) (*DTO, bool, error)
}

type service struct {
	repo Repository
}

// NewService wires rating dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rating repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID, batchID uuid.UUID) (*DTO, error) {
	if _, err := s.repo.BatchForUser(ctx, batchID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	rating, err := s.repo.Get(ctx, batchID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeRatingNotFound, "rating not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch rating")
	}

	dto := newDTO(*rating)
	return &dto, nil
}

func (s *service) Upsert(ctx context.Context, userID, batchID uuid.UUID, cmd UpsertCommand) (*DTO, bool, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	batch, err := s.repo.BatchForUser(ctx, batchID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, false, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}
	if batch.Status != enums.BatchStatusArchived {
		return nil, false, pkgerrors.New(pkgerrors.CodeBatchNotCompleted, "only completed batches can be rated")
	}

	existing, err := s.repo.Get(ctx, batchID, userID)
	if err != nil && !db.IsNotFound(err) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch rating")
	}
	isNew := existing == nil

	row := &models.Rating{BatchID: batchID, UserID: userID, Rating: cmd.Rating}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert rating")
	}

	dto := newDTO(*row)
	return &dto, isNew, nil
}

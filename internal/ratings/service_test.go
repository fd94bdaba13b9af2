package ratings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
)

type fakeRepo struct {
	batch  *models.Batch
	rating *models.Rating

	upserted *models.Rating
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) BatchForUser(_ context.Context, batchID, userID uuid.UUID) (*models.Batch, error) {
	if f.batch == nil || f.batch.ID != batchID || f.batch.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.batch, nil
}

func (f *fakeRepo) Get(_ context.Context, batchID, userID uuid.UUID) (*models.Rating, error) {
	if f.rating == nil || f.rating.BatchID != batchID || f.rating.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.rating, nil
}

func (f *fakeRepo) Upsert(_ context.Context, rating *models.Rating) error {
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	f.upserted = rating
	return nil
}

func archivedBatch(userID uuid.UUID) *models.Batch {
	return &models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusArchived}
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestGetRating(t *testing.T) {
	userID := uuid.New()
	batch := archivedBatch(userID)
	repo := &fakeRepo{
		batch:  batch,
		rating: &models.Rating{BatchID: batch.ID, UserID: userID, Rating: 5},
	}
	svc, _ := NewService(repo)

	dto, err := svc.Get(context.Background(), userID, batch.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", dto.Rating)
	}
}

func TestGetRatingNotFound(t *testing.T) {
	userID := uuid.New()
	batch := archivedBatch(userID)
	svc, _ := NewService(&fakeRepo{batch: batch})

	_, err := svc.Get(context.Background(), userID, batch.ID)
	expectCode(t, err, pkgerrors.CodeRatingNotFound)
}

func TestGetBatchNotFound(t *testing.T) {
	svc, _ := NewService(&fakeRepo{})

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	expectCode(t, err, pkgerrors.CodeBatchNotFound)
}

func TestUpsertCreatesRating(t *testing.T) {
	userID := uuid.New()
	batch := archivedBatch(userID)
	repo := &fakeRepo{batch: batch}
	svc, _ := NewService(repo)

	dto, isNew, err := svc.Upsert(context.Background(), userID, batch.ID, UpsertCommand{Rating: 4})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !isNew {
		t.Fatal("first rating must be reported as new")
	}
	if dto.Rating != 4 || repo.upserted == nil {
		t.Fatalf("expected stored rating 4, got %+v", dto)
	}
}

func TestUpsertReplacesExistingRating(t *testing.T) {
	userID := uuid.New()
	batch := archivedBatch(userID)
	repo := &fakeRepo{
		batch:  batch,
		rating: &models.Rating{BatchID: batch.ID, UserID: userID, Rating: 2},
	}
	svc, _ := NewService(repo)

	dto, isNew, err := svc.Upsert(context.Background(), userID, batch.ID, UpsertCommand{Rating: 5})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if isNew {
		t.Fatal("replacing an existing rating must not be reported as new")
	}
	if dto.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", dto.Rating)
	}
}

func TestUpsertRejectsActiveBatch(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusActive}
	svc, _ := NewService(&fakeRepo{batch: batch})

	_, _, err := svc.Upsert(context.Background(), userID, batch.ID, UpsertCommand{Rating: 3})
	expectCode(t, err, pkgerrors.CodeBatchNotCompleted)
}

func TestUpsertRejectsOutOfRangeRating(t *testing.T) {
	userID := uuid.New()
	batch := archivedBatch(userID)
	svc, _ := NewService(&fakeRepo{batch: batch})

	for _, value := range []int{0, 6, -1} {
		_, _, err := svc.Upsert(context.Background(), userID, batch.ID, UpsertCommand{Rating: value})
		expectCode(t, err, pkgerrors.CodeValidation)
	}
}

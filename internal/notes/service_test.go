package notes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/types"
)

type fakeRepo struct {
	batch *models.Batch
	notes []models.Note

	created     []*models.Note
	lastFilters ListFilters
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) BatchForUser(_ context.Context, batchID, userID uuid.UUID) (*models.Batch, error) {
	if f.batch == nil || f.batch.ID != batchID || f.batch.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.batch, nil
}

func (f *fakeRepo) Create(_ context.Context, note *models.Note) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	f.created = append(f.created, note)
	return nil
}

func (f *fakeRepo) List(_ context.Context, batchID uuid.UUID, filters ListFilters) ([]models.Note, error) {
	f.lastFilters = filters
	var out []models.Note
	for _, n := range f.notes {
		if n.BatchID != batchID {
			continue
		}
		if filters.StageID != nil && (n.StageID == nil || *n.StageID != *filters.StageID) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, noteID, batchID, userID uuid.UUID) (int64, error) {
	for _, n := range f.notes {
		if n.ID == noteID && n.BatchID == batchID && n.UserID == userID {
			return 1, nil
		}
	}
	return 0, nil
}

type fakeStageRepo struct {
	stages []models.BatchStage
}

func (f *fakeStageRepo) ListOrdered(_ context.Context, _ uuid.UUID) ([]models.BatchStage, error) {
	return f.stages, nil
}

func datePtr(s string) *types.Date {
	t, _ := time.Parse("2006-01-02", s)
	d := types.NewDate(t)
	return &d
}

func openStage(name enums.StageName, position int) models.BatchStage {
	return models.BatchStage{
		ID:            uuid.New(),
		StartedAt:     datePtr("2024-06-01"),
		TemplateStage: &models.TemplateStage{Position: position, Name: name},
	}
}

func doneStage(name enums.StageName, position int) models.BatchStage {
	stage := openStage(name, position)
	stage.CompletedAt = datePtr("2024-06-10")
	return stage
}

func newTestService(repo *fakeRepo, stageRepo *fakeStageRepo) Service {
	if stageRepo == nil {
		stageRepo = &fakeStageRepo{}
	}
	svc, err := NewService(repo, stageRepo)
	if err != nil {
		panic(err)
	}
	return svc
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

func TestCreateAttachesToCurrentStage(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusActive}
	fermenting := openStage(enums.StageNameFermentation, 2)
	repo := &fakeRepo{batch: batch}
	svc := newTestService(repo, &fakeStageRepo{stages: []models.BatchStage{
		doneStage(enums.StageNamePreparation, 1),
		fermenting,
	}})

	dto, err := svc.Create(context.Background(), userID, batch.ID, CreateCommand{Action: "added nutrient"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.StageID == nil || *dto.StageID != fermenting.ID {
		t.Fatalf("expected note on the fermentation stage, got %v", dto.StageID)
	}
	if dto.StageName == nil || *dto.StageName != enums.StageNameFermentation {
		t.Fatalf("expected stage name tag, got %v", dto.StageName)
	}
}

func TestCreateWithoutOpenStageKeepsNoteBatchLevel(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusActive}
	repo := &fakeRepo{batch: batch}
	svc := newTestService(repo, &fakeStageRepo{stages: []models.BatchStage{
		doneStage(enums.StageNamePreparation, 1),
		doneStage(enums.StageNameBottling, 2),
	}})

	dto, err := svc.Create(context.Background(), userID, batch.ID, CreateCommand{Action: "labelled bottles"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.StageID != nil {
		t.Fatalf("expected batch-level note, got stage %v", dto.StageID)
	}
}

func TestCreateActionTooLong(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID}
	svc := newTestService(&fakeRepo{batch: batch}, nil)

	_, err := svc.Create(context.Background(), userID, batch.ID, CreateCommand{
		Action: strings.Repeat("a", 201),
	})
	expectCode(t, err, pkgerrors.CodeActionTooLong)
}

func TestCreateObservationsTooLong(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID}
	svc := newTestService(&fakeRepo{batch: batch}, nil)

	obs := strings.Repeat("o", 201)
	_, err := svc.Create(context.Background(), userID, batch.ID, CreateCommand{
		Action:       "check gravity",
		Observations: &obs,
	})
	expectCode(t, err, pkgerrors.CodeObservationsTooLong)
}

func TestCreateBatchNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateCommand{Action: "x"})
	expectCode(t, err, pkgerrors.CodeBatchNotFound)
}

func TestListFiltersByStage(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID}
	fermenting := openStage(enums.StageNameFermentation, 2)
	stageID := fermenting.ID
	repo := &fakeRepo{
		batch: batch,
		notes: []models.Note{
			{ID: uuid.New(), BatchID: batch.ID, StageID: &stageID, UserID: userID, Action: "pitched yeast"},
			{ID: uuid.New(), BatchID: batch.ID, UserID: userID, Action: "general remark"},
		},
	}
	svc := newTestService(repo, &fakeStageRepo{stages: []models.BatchStage{fermenting}})

	result, err := svc.List(context.Background(), userID, batch.ID, ListFilters{StageID: &stageID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || result.Notes[0].Action != "pitched yeast" {
		t.Fatalf("expected only the stage note, got %+v", result)
	}
	if result.Notes[0].StageName == nil || *result.Notes[0].StageName != enums.StageNameFermentation {
		t.Fatalf("expected stage name tag, got %v", result.Notes[0].StageName)
	}
}

func TestDeleteNote(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID}
	note := models.Note{ID: uuid.New(), BatchID: batch.ID, UserID: userID, Action: "x"}
	svc := newTestService(&fakeRepo{batch: batch, notes: []models.Note{note}}, nil)

	result, err := svc.Delete(context.Background(), userID, batch.ID, note.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if result.Message == "" {
		t.Fatal("expected confirmation message")
	}
}

func TestDeleteMissingNote(t *testing.T) {
	userID := uuid.New()
	batch := &models.Batch{ID: uuid.New(), UserID: userID}
	svc := newTestService(&fakeRepo{batch: batch}, nil)

	_, err := svc.Delete(context.Background(), userID, batch.ID, uuid.New())
	expectCode(t, err, pkgerrors.CodeNoteNotFound)
}

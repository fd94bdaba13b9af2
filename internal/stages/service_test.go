package stages

import (
	"context"
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
	batch  *models.Batch
	stages []models.BatchStage
	notes  []models.Note

	completed    []uuid.UUID
	started      []uuid.UUID
	createdNotes []*models.Note

	completeRows int64
	completeSet  bool
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) BatchForUser(_ context.Context, batchID, userID uuid.UUID) (*models.Batch, error) {
	if f.batch == nil || f.batch.ID != batchID || f.batch.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.batch, nil
}

func (f *fakeRepo) ListOrdered(_ context.Context, _ uuid.UUID) ([]models.BatchStage, error) {
	return f.stages, nil
}

func (f *fakeRepo) CompleteIfOpen(_ context.Context, stageID uuid.UUID, _ types.Date) (int64, error) {
	f.completed = append(f.completed, stageID)
	if f.completeSet {
		return f.completeRows, nil
	}
	return 1, nil
}

func (f *fakeRepo) Start(_ context.Context, stageID uuid.UUID, _ types.Date) error {
	f.started = append(f.started, stageID)
	return nil
}

func (f *fakeRepo) CreateNote(_ context.Context, note *models.Note) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	f.createdNotes = append(f.createdNotes, note)
	return nil
}

func (f *fakeRepo) ListStageNotes(_ context.Context, _, stageID uuid.UUID) ([]models.Note, error) {
	var out []models.Note
	for _, n := range f.notes {
		if n.StageID != nil && *n.StageID == stageID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeTx struct {
	err error
}

func (f *fakeTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

func newTestService(repo *fakeRepo) *service {
	return &service{repo: repo, tx: &fakeTx{}, now: func() time.Time {
		return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	}}
}

func activeBatch(userID uuid.UUID) *models.Batch {
	return &models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusActive}
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

func TestAdvanceHappyPath(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), nil),
		stageWith(2, nil, nil),
		stageWith(3, nil, nil),
	}
	svc := newTestService(repo)

	result, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if len(repo.completed) != 1 || repo.completed[0] != repo.stages[0].ID {
		t.Fatalf("expected stage 1 to be completed, got %v", repo.completed)
	}
	if len(repo.started) != 1 || repo.started[0] != repo.stages[1].ID {
		t.Fatalf("expected stage 2 to be started, got %v", repo.started)
	}
	if result.PreviousStage.CompletedAt == nil {
		t.Fatal("expected previous stage completion date in response")
	}
	if result.CurrentStage.Status != StageStatusInProgress {
		t.Fatalf("expected new current stage in_progress, got %s", result.CurrentStage.Status)
	}
	if result.Note != nil {
		t.Fatal("no note was requested")
	}
}

func TestAdvanceAttachesNoteToCompletedStage(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), nil),
		stageWith(2, nil, nil),
	}
	svc := newTestService(repo)

	obs := "gravity 1.010"
	result, err := svc.Advance(context.Background(), userID, repo.batch.ID, &AdvanceNote{
		Action:       "pressed the must",
		Observations: &obs,
	})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if len(repo.createdNotes) != 1 {
		t.Fatalf("expected one note, got %d", len(repo.createdNotes))
	}
	created := repo.createdNotes[0]
	if created.StageID == nil || *created.StageID != repo.stages[0].ID {
		t.Fatal("note must attach to the just-completed stage")
	}
	if result.Note == nil || result.Note.Action != "pressed the must" {
		t.Fatalf("expected note in response, got %v", result.Note)
	}
}

func TestAdvanceBatchNotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), uuid.New(), uuid.New(), nil)
	expectCode(t, err, pkgerrors.CodeBatchNotFound)
}

func TestAdvanceArchivedBatch(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	repo.batch.Status = enums.BatchStatusArchived
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	expectCode(t, err, pkgerrors.CodeBatchArchived)
}

func TestAdvanceNoStages(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	expectCode(t, err, pkgerrors.CodeNoStagesFound)
}

func TestAdvanceFinalStageWhenAllComplete(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), datePtr("2024-06-05")),
		stageWith(2, datePtr("2024-06-05"), datePtr("2024-06-10")),
	}
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	expectCode(t, err, pkgerrors.CodeFinalStage)
}

func TestAdvanceFinalStageWhenCurrentIsLast(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), datePtr("2024-06-05")),
		stageWith(2, datePtr("2024-06-05"), nil),
	}
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	expectCode(t, err, pkgerrors.CodeFinalStage)
}

func TestAdvanceConflictWhenStageAlreadyCompleted(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID), completeSet: true, completeRows: 0}
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), nil),
		stageWith(2, nil, nil),
	}
	svc := newTestService(repo)

	_, err := svc.Advance(context.Background(), userID, repo.batch.ID, nil)
	expectCode(t, err, pkgerrors.CodeConflict)

	if len(repo.createdNotes) != 0 {
		t.Fatal("conflict must abort before note creation")
	}
}

func TestCurrentReturnsStageWithNotes(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	current := stageWith(2, datePtr("2024-06-10"), nil)
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), datePtr("2024-06-10")),
		current,
	}
	stageID := current.ID
	repo.notes = []models.Note{
		{ID: uuid.New(), BatchID: repo.batch.ID, StageID: &stageID, UserID: userID, Action: "stirred the lees", CreatedAt: time.Now()},
	}
	svc := newTestService(repo)

	details, err := svc.Current(context.Background(), userID, repo.batch.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if details.ID != current.ID {
		t.Fatal("expected the open stage to be current")
	}
	if len(details.Notes) != 1 || details.Notes[0].Action != "stirred the lees" {
		t.Fatalf("expected stage notes, got %v", details.Notes)
	}
	if details.DaysElapsed == nil {
		t.Fatal("expected days_elapsed for an open stage")
	}
}

func TestCurrentFallsBackToLastStage(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{batch: activeBatch(userID)}
	last := stageWith(2, datePtr("2024-06-05"), datePtr("2024-06-10"))
	repo.stages = []models.BatchStage{
		stageWith(1, datePtr("2024-06-01"), datePtr("2024-06-05")),
		last,
	}
	svc := newTestService(repo)

	details, err := svc.Current(context.Background(), userID, repo.batch.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if details.ID != last.ID {
		t.Fatal("expected fallback to the last stage")
	}
	if details.Status != StageStatusCompleted {
		t.Fatalf("expected completed status, got %s", details.Status)
	}
}

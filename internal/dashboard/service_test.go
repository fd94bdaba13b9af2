package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

type fakeRepo struct {
	active        []models.Batch
	archivedCount int64
	notesCount    int64
	latest        map[uuid.UUID]*models.Note

	lastLimit int
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) ActiveBatches(_ context.Context, _ uuid.UUID, limit int) ([]models.Batch, error) {
	f.lastLimit = limit
	if len(f.active) > limit {
		return f.active[:limit], nil
	}
	return f.active, nil
}

func (f *fakeRepo) ArchivedCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.archivedCount, nil
}

func (f *fakeRepo) NotesCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.notesCount, nil
}

func (f *fakeRepo) LatestNote(_ context.Context, batchID uuid.UUID) (*models.Note, error) {
	return f.latest[batchID], nil
}

type fakeStageRepo struct {
	byBatch map[uuid.UUID][]models.BatchStage
}

func (f *fakeStageRepo) ListOrdered(_ context.Context, batchID uuid.UUID) ([]models.BatchStage, error) {
	return f.byBatch[batchID], nil
}

func datePtr(s string) *types.Date {
	t, _ := time.Parse("2006-01-02", s)
	d := types.NewDate(t)
	return &d
}

func TestDashboardAssemblesCards(t *testing.T) {
	userID := uuid.New()
	batch := models.Batch{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Cellar Red",
		Type:      enums.BatchTypeRedWine,
		Status:    enums.BatchStatusActive,
		StartedAt: *datePtr("2024-06-01"),
	}
	fermenting := models.BatchStage{
		ID:            uuid.New(),
		BatchID:       batch.ID,
		StartedAt:     datePtr("2024-06-05"),
		TemplateStage: &models.TemplateStage{Position: 2, Name: enums.StageNameFermentation},
	}

	repo := &fakeRepo{
		active:        []models.Batch{batch},
		archivedCount: 3,
		notesCount:    12,
		latest: map[uuid.UUID]*models.Note{
			batch.ID: {ID: uuid.New(), BatchID: batch.ID, Action: "punched down the cap", CreatedAt: time.Now()},
		},
	}
	stageRepo := &fakeStageRepo{byBatch: map[uuid.UUID][]models.BatchStage{
		batch.ID: {fermenting},
	}}
	svc, err := NewService(repo, stageRepo, 10)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(dto.ActiveBatches) != 1 {
		t.Fatalf("expected one card, got %d", len(dto.ActiveBatches))
	}
	card := dto.ActiveBatches[0]
	if card.CurrentStage.Name != enums.StageNameFermentation || card.CurrentStage.Position != 2 {
		t.Fatalf("unexpected current stage %+v", card.CurrentStage)
	}
	if card.LatestNote == nil || card.LatestNote.Action != "punched down the cap" {
		t.Fatalf("expected latest note, got %v", card.LatestNote)
	}
	if dto.ArchivedBatchesCount != 3 || dto.TotalNotes != 12 {
		t.Fatalf("unexpected counts %+v", dto)
	}
}

func TestDashboardHonoursBatchLimit(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{}
	for i := 0; i < 15; i++ {
		repo.active = append(repo.active, models.Batch{
			ID:     uuid.New(),
			UserID: userID,
			Status: enums.BatchStatusActive,
		})
	}
	svc, _ := NewService(repo, &fakeStageRepo{}, 10)

	dto, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if repo.lastLimit != 10 {
		t.Fatalf("expected limit 10 passed to repository, got %d", repo.lastLimit)
	}
	if len(dto.ActiveBatches) != 10 {
		t.Fatalf("expected 10 cards, got %d", len(dto.ActiveBatches))
	}
}

func TestDashboardFallbackStage(t *testing.T) {
	userID := uuid.New()
	batch := models.Batch{ID: uuid.New(), UserID: userID, Status: enums.BatchStatusActive}
	svc, _ := NewService(&fakeRepo{active: []models.Batch{batch}}, &fakeStageRepo{}, 10)

	dto, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	card := dto.ActiveBatches[0]
	if card.CurrentStage.Position != 1 || card.CurrentStage.Name != enums.StageNamePreparation {
		t.Fatalf("expected preparation fallback, got %+v", card.CurrentStage)
	}
	if card.LatestNote != nil {
		t.Fatal("expected no latest note")
	}
}

func TestDashboardEmpty(t *testing.T) {
	svc, _ := NewService(&fakeRepo{}, &fakeStageRepo{}, 10)

	dto, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.ActiveBatches) != 0 || dto.ArchivedBatchesCount != 0 || dto.TotalNotes != 0 {
		t.Fatalf("expected empty dashboard, got %+v", dto)
	}
}

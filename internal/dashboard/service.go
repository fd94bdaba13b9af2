package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
)

// Service assembles the landing-page view.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*DTO, error)
}

type stageReader interface {
	ListOrdered(ctx context.Context, batchID uuid.UUID) ([]models.BatchStage, error)
}

var _ stageReader = (stages.Repository)(nil)

const fanOutLimit = 8

type service struct {
	repo       Repository
	stageRepo  stageReader
	batchLimit int
	now        func() time.Time
}

// NewService wires dashboard dependencies. batchLimit caps how many active
// batches the dashboard shows, newest first.
func NewService(repo Repository, stageRepo stageReader, batchLimit int) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dashboard repository required")
	}
	if stageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stage repository required")
	}
	if batchLimit <= 0 {
		batchLimit = 10
	}
	return &service{repo: repo, stageRepo: stageRepo, batchLimit: batchLimit, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*DTO, error) {
	rows, err := s.repo.ActiveBatches(ctx, userID, s.batchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active batches")
	}

	active := make([]ActiveBatchDTO, len(rows))
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i := range rows {
		i := i
		g.Go(func() error {
			card, err := s.buildCard(gctx, rows[i], now)
			if err != nil {
				return err
			}
			active[i] = card
			return nil
		})
	}

	var archivedCount, totalNotes int64
	g.Go(func() error {
		count, err := s.repo.ArchivedCount(gctx, userID)
		if err != nil {
			return err
		}
		archivedCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.NotesCount(gctx, userID)
		if err != nil {
			return err
		}
		totalNotes = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assemble dashboard")
	}

	return &DTO{
		ActiveBatches:        active,
		ArchivedBatchesCount: archivedCount,
		TotalNotes:           totalNotes,
	}, nil
}

func (s *service) buildCard(ctx context.Context, batch models.Batch, now time.Time) (ActiveBatchDTO, error) {
	card := ActiveBatchDTO{
		ID:        batch.ID,
		Name:      batch.Name,
		Type:      batch.Type,
		StartedAt: batch.StartedAt,
		CurrentStage: batches.CurrentStageInfo{
			Position: 1,
			Name:     enums.StageNamePreparation,
		},
	}

	list, err := s.stageRepo.ListOrdered(ctx, batch.ID)
	if err != nil {
		return card, err
	}
	if current, ok := stages.CurrentOrLast(list); ok {
		card.CurrentStage = batches.NewCurrentStageInfo(current, now)
	}

	note, err := s.repo.LatestNote(ctx, batch.ID)
	if err != nil {
		return card, err
	}
	if note != nil {
		card.LatestNote = &batches.LatestNote{ID: note.ID, Action: note.Action, CreatedAt: note.CreatedAt}
	}

	return card, nil
}

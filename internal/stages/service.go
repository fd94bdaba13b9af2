package stages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/types"
)

// Service defines stage progression operations for a batch.
type Service interface {
	Advance(ctx context.Context, userID, batchID uuid.UUID, note *AdvanceNote) (*AdvanceResult, error)
	Current(ctx context.Context, userID, batchID uuid.UUID) (*CurrentStageDetails, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService wires stage dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stage repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

var _ txRunner = (*db.Client)(nil)

// Advance completes the current stage, starts the next one, and optionally
// records a note against the just-completed stage. All three writes share one
// transaction.
func (s *service) Advance(ctx context.Context, userID, batchID uuid.UUID, note *AdvanceNote) (*AdvanceResult, error) {
	batch, err := s.repo.BatchForUser(ctx, batchID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}
	if batch.Status == enums.BatchStatusArchived {
		return nil, pkgerrors.New(pkgerrors.CodeBatchArchived, "cannot advance an archived batch")
	}

	list, err := s.repo.ListOrdered(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch stages")
	}
	if len(list) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoStagesFound, "no stages found for this batch")
	}

	currentIdx, ok := FirstIncomplete(list)
	if !ok || currentIdx == len(list)-1 {
		return nil, pkgerrors.New(pkgerrors.CodeFinalStage, "batch is already at the final stage")
	}

	current := list[currentIdx]
	next := list[currentIdx+1]
	today := types.NewDate(s.now())

	var created *models.Note
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		rows, err := repo.CompleteIfOpen(ctx, current.ID, today)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete current stage")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "stage was advanced by another request")
		}

		if err := repo.Start(ctx, next.ID, today); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start next stage")
		}

		if note != nil {
			stageID := current.ID
			row := &models.Note{
				BatchID:      batchID,
				StageID:      &stageID,
				UserID:       userID,
				Action:       note.Action,
				Observations: note.Observations,
			}
			if err := repo.CreateNote(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create advance note")
			}
			created = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	current.CompletedAt = &today
	next.StartedAt = &today

	result := &AdvanceResult{
		PreviousStage: BuildStageSummary(current),
		CurrentStage:  BuildStageDTO(next, s.now()),
	}
	if created != nil {
		dto := NewNoteDTO(*created, stageName(current))
		result.Note = &dto
	}
	return result, nil
}

// Current returns the first incomplete stage (or the last stage when the run
// is fully complete) together with its notes.
func (s *service) Current(ctx context.Context, userID, batchID uuid.UUID) (*CurrentStageDetails, error) {
	if _, err := s.repo.BatchForUser(ctx, batchID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	list, err := s.repo.ListOrdered(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch stages")
	}

	current, ok := CurrentOrLast(list)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNoStagesFound, "no stages found for this batch")
	}

	rows, err := s.repo.ListStageNotes(ctx, batchID, current.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stage notes")
	}

	notes := make([]NoteDTO, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, NewNoteDTO(row, stageName(current)))
	}

	return &CurrentStageDetails{
		BatchStageDTO: BuildStageDTO(current, s.now()),
		Notes:         notes,
	}, nil
}

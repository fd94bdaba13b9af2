package notes

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
)

// Service defines note operations scoped to a batch.
type Service interface {
	Create(ctx context.Context, userID, batchID uuid.UUID, cmd CreateCommand) (*stages.NoteDTO, error)
	List(ctx context.Context, userID, batchID uuid.UUID, filters ListFilters) (*ListResult, error)
	Delete(ctx context.Context, userID, batchID, noteID uuid.UUID) (*DeleteResult, error)
}

type stageReader interface {
	ListOrdered(ctx context.Context, batchID uuid.UUID) ([]models.BatchStage, error)
}

var _ stageReader = (stages.Repository)(nil)

type service struct {
	repo      Repository
	stageRepo stageReader
}

// NewService wires note dependencies.
func NewService(repo Repository, stageRepo stageReader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "note repository required")
	}
	if stageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stage repository required")
	}
	return &service{repo: repo, stageRepo: stageRepo}, nil
}

// Create logs a note against the batch's current stage. When every stage is
// complete the note is kept batch-level with no stage reference.
func (s *service) Create(ctx context.Context, userID, batchID uuid.UUID, cmd CreateCommand) (*stages.NoteDTO, error) {
	if utf8.RuneCountInString(cmd.Action) > maxFieldLength {
		return nil, pkgerrors.New(pkgerrors.CodeActionTooLong, "action must be at most 200 characters")
	}
	if cmd.Observations != nil && utf8.RuneCountInString(*cmd.Observations) > maxFieldLength {
		return nil, pkgerrors.New(pkgerrors.CodeObservationsTooLong, "observations must be at most 200 characters")
	}

	if _, err := s.repo.BatchForUser(ctx, batchID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	list, err := s.stageRepo.ListOrdered(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch stages")
	}

	note := &models.Note{
		BatchID:      batchID,
		UserID:       userID,
		Action:       cmd.Action,
		Observations: cmd.Observations,
	}
	var stageName *enums.StageName
	if idx, ok := stages.FirstIncomplete(list); ok {
		stageID := list[idx].ID
		note.StageID = &stageID
		if ts := list[idx].TemplateStage; ts != nil {
			name := ts.Name
			stageName = &name
		}
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create note")
	}

	dto := stages.NewNoteDTO(*note, stageName)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID, batchID uuid.UUID, filters ListFilters) (*ListResult, error) {
	if _, err := s.repo.BatchForUser(ctx, batchID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	rows, err := s.repo.List(ctx, batchID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notes")
	}

	list, err := s.stageRepo.ListOrdered(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch stages")
	}
	names := make(map[uuid.UUID]enums.StageName, len(list))
	for _, stage := range list {
		if stage.TemplateStage != nil {
			names[stage.ID] = stage.TemplateStage.Name
		}
	}

	out := make([]stages.NoteDTO, 0, len(rows))
	for _, row := range rows {
		var stageName *enums.StageName
		if row.StageID != nil {
			if name, ok := names[*row.StageID]; ok {
				stageName = &name
			}
		}
		out = append(out, stages.NewNoteDTO(row, stageName))
	}

	return &ListResult{Notes: out, Total: len(out)}, nil
}

func (s *service) Delete(ctx context.Context, userID, batchID, noteID uuid.UUID) (*DeleteResult, error) {
	if _, err := s.repo.BatchForUser(ctx, batchID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	rows, err := s.repo.Delete(ctx, noteID, batchID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete note")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoteNotFound, "note not found")
	}
	return &DeleteResult{Message: "Note deleted successfully"}, nil
}

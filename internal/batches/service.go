package batches

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/internal/templates"
	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/types"
)

// Service defines the batch lifecycle operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*DetailDTO, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResult, error)
	Get(ctx context.Context, userID, batchID uuid.UUID) (*DetailDTO, error)
	Rename(ctx context.Context, userID, batchID uuid.UUID, cmd RenameCommand) (*RenameResult, error)
	Complete(ctx context.Context, userID, batchID uuid.UUID) (*CompleteResult, error)
	Delete(ctx context.Context, userID, batchID uuid.UUID) (*DeleteResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type templateReader interface {
	GetWithStages(ctx context.Context, id uuid.UUID) (*models.Template, error)
}

type stageReader interface {
	ListOrdered(ctx context.Context, batchID uuid.UUID) ([]models.BatchStage, error)
}

var (
	_ txRunner       = (*db.Client)(nil)
	_ templateReader = (templates.Repository)(nil)
	_ stageReader    = (stages.Repository)(nil)
)

// listFanOutLimit caps concurrent per-batch projection queries.
const listFanOutLimit = 8

type service struct {
	repo      Repository
	stageRepo stageReader
	templates templateReader
	tx        txRunner
	now       func() time.Time
}

// NewService wires batch dependencies.
func NewService(repo Repository, stageRepo stageReader, templateRepo templateReader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "batch repository required")
	}
	if stageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stage repository required")
	}
	if templateRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "template repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{
		repo:      repo,
		stageRepo: stageRepo,
		templates: templateRepo,
		tx:        tx,
		now:       time.Now,
	}, nil
}

// DefaultName builds the fallback batch name from the template and start date.
func DefaultName(templateName string, day types.Date) string {
	return fmt.Sprintf("%s - %s", templateName, day.Format("02.01.2006"))
}

// Create instantiates a batch from a template. The batch row and every stage
// row are written in a single transaction, with stage one started immediately.
func (s *service) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*DetailDTO, error) {
	template, err := s.templates.GetWithStages(ctx, cmd.TemplateID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeTemplateNotFound, "template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch template")
	}
	if len(template.Stages) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidTemplate, "template has no stages")
	}

	today := types.NewDate(s.now())
	name := DefaultName(template.Name, today)
	if cmd.Name != nil && *cmd.Name != "" {
		name = *cmd.Name
	}

	templateID := template.ID
	batch := &models.Batch{
		UserID:     userID,
		TemplateID: &templateID,
		Name:       name,
		Type:       template.Type,
		Status:     enums.BatchStatusActive,
		StartedAt:  today,
	}
	batch.Stages = make([]models.BatchStage, 0, len(template.Stages))
	for i, ts := range template.Stages {
		stage := models.BatchStage{TemplateStageID: ts.ID}
		if i == 0 {
			started := today
			stage.StartedAt = &started
		}
		batch.Stages = append(batch.Stages, stage)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, batch); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create batch")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := s.buildDetail(*batch, template, nil, nil, now)
	for i := range batch.Stages {
		batch.Stages[i].TemplateStage = &template.Stages[i]
		detail.Stages = append(detail.Stages, stages.BuildStageDTO(batch.Stages[i], now))
	}
	position := 1
	detail.CurrentStagePosition = &position
	info := NewCurrentStageInfo(batch.Stages[0], now)
	detail.CurrentStage = &info
	return detail, nil
}

// List returns the user's batches with their listing projections. The
// per-batch lookups fan out concurrently and are reassembled in query order.
func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResult, error) {
	rows, err := s.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batches")
	}

	items := make([]ListItemDTO, len(rows))
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listFanOutLimit)
	for i := range rows {
		i := i
		g.Go(func() error {
			item, err := s.buildListItem(gctx, rows[i], userID, now)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "project batch listing")
	}

	return &ListResult{Batches: items, Total: len(items)}, nil
}

func (s *service) buildListItem(ctx context.Context, batch models.Batch, userID uuid.UUID, now time.Time) (ListItemDTO, error) {
	item := ListItemDTO{
		ID:          batch.ID,
		TemplateID:  batch.TemplateID,
		Name:        batch.Name,
		Type:        batch.Type,
		Status:      batch.Status,
		StartedAt:   batch.StartedAt,
		CompletedAt: batch.CompletedAt,
		CreatedAt:   batch.CreatedAt,
		UpdatedAt:   batch.UpdatedAt,
		CurrentStage: CurrentStageInfo{
			Position: 1,
			Name:     enums.StageNamePreparation,
		},
	}

	list, err := s.stageRepo.ListOrdered(ctx, batch.ID)
	if err != nil {
		return item, err
	}
	if current, ok := stages.CurrentOrLast(list); ok {
		item.CurrentStage = NewCurrentStageInfo(current, now)
	}

	note, err := s.repo.LatestNote(ctx, batch.ID)
	if err != nil {
		return item, err
	}
	if note != nil {
		item.LatestNote = &LatestNote{ID: note.ID, Action: note.Action, CreatedAt: note.CreatedAt}
	}

	rating, err := s.repo.RatingValue(ctx, batch.ID, userID)
	if err != nil {
		return item, err
	}
	item.Rating = rating

	return item, nil
}

// Get returns the full batch view: template summary, stages with derived
// status, notes newest first, and the caller's rating.
func (s *service) Get(ctx context.Context, userID, batchID uuid.UUID) (*DetailDTO, error) {
	batch, err := s.repo.ForUser(ctx, batchID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}

	var template *models.Template
	if batch.TemplateID != nil {
		template, err = s.templates.GetWithStages(ctx, *batch.TemplateID)
		if err != nil && !db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch template")
		}
	}

	list, err := s.stageRepo.ListOrdered(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch stages")
	}

	noteRows, err := s.repo.ListNotes(ctx, batchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch notes")
	}

	rating, err := s.repo.RatingValue(ctx, batchID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch rating")
	}

	now := s.now()
	detail := s.buildDetail(*batch, template, noteRows, list, now)
	detail.Rating = rating

	for _, stage := range list {
		detail.Stages = append(detail.Stages, stages.BuildStageDTO(stage, now))
	}

	// An archived batch may have been completed before its final stage was
	// closed out. Display that stage as completed on the batch's completion
	// date; the stage row itself keeps its null completed_at.
	if batch.Status == enums.BatchStatusArchived && batch.CompletedAt != nil && len(detail.Stages) > 0 {
		last := &detail.Stages[len(detail.Stages)-1]
		if last.CompletedAt == nil {
			last.CompletedAt = batch.CompletedAt
			last.Status = stages.StageStatusCompleted
			last.DaysElapsed = nil
		}
	}

	if idx, ok := stages.FirstIncomplete(list); ok {
		info := NewCurrentStageInfo(list[idx], now)
		detail.CurrentStage = &info
		if ts := list[idx].TemplateStage; ts != nil {
			position := ts.Position
			detail.CurrentStagePosition = &position
		}
	}

	return detail, nil
}

func (s *service) buildDetail(batch models.Batch, template *models.Template, noteRows []models.Note, stageRows []models.BatchStage, now time.Time) *DetailDTO {
	detail := &DetailDTO{
		ID:          batch.ID,
		UserID:      batch.UserID,
		TemplateID:  batch.TemplateID,
		Name:        batch.Name,
		Type:        batch.Type,
		Status:      batch.Status,
		StartedAt:   batch.StartedAt,
		CompletedAt: batch.CompletedAt,
		CreatedAt:   batch.CreatedAt,
		UpdatedAt:   batch.UpdatedAt,
		Stages:      make([]stages.BatchStageDTO, 0, len(stageRows)),
	}
	if template != nil {
		detail.Template = &TemplateSummary{ID: template.ID, Name: template.Name, Type: template.Type}
	}

	if len(noteRows) > 0 {
		names := make(map[uuid.UUID]enums.StageName, len(stageRows))
		for _, stage := range stageRows {
			if stage.TemplateStage != nil {
				names[stage.ID] = stage.TemplateStage.Name
			}
		}
		detail.Notes = make([]stages.NoteDTO, 0, len(noteRows))
		for _, note := range noteRows {
			var stageName *enums.StageName
			if note.StageID != nil {
				if name, ok := names[*note.StageID]; ok {
					stageName = &name
				}
			}
			detail.Notes = append(detail.Notes, stages.NewNoteDTO(note, stageName))
		}
	}

	return detail
}

func (s *service) Rename(ctx context.Context, userID, batchID uuid.UUID, cmd RenameCommand) (*RenameResult, error) {
	rows, err := s.repo.UpdateName(ctx, batchID, userID, cmd.Name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename batch")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
	}

	batch, err := s.repo.ForUser(ctx, batchID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch renamed batch")
	}
	return &RenameResult{ID: batch.ID, Name: batch.Name, UpdatedAt: batch.UpdatedAt}, nil
}

// Complete archives the batch. Stages left open stay open; the run is simply
// considered finished as of today.
func (s *service) Complete(ctx context.Context, userID, batchID uuid.UUID) (*CompleteResult, error) {
	batch, err := s.repo.ForUser(ctx, batchID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch batch")
	}
	if batch.Status == enums.BatchStatusArchived {
		return nil, pkgerrors.New(pkgerrors.CodeBatchCompleted, "batch is already completed")
	}

	today := types.NewDate(s.now())
	if err := s.repo.Archive(ctx, batchID, today); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive batch")
	}

	return &CompleteResult{
		ID:          batch.ID,
		Name:        batch.Name,
		Status:      enums.BatchStatusArchived,
		CompletedAt: today,
		Message:     "Batch completed successfully",
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, batchID uuid.UUID) (*DeleteResult, error) {
	rows, err := s.repo.Delete(ctx, batchID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete batch")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeBatchNotFound, "batch not found or you don't have access to it")
	}
	return &DeleteResult{Message: "Batch deleted successfully"}, nil
}

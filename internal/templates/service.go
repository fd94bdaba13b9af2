package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
)

// Service defines template catalog reads.
type Service interface {
	List(ctx context.Context, typeFilter *enums.BatchType) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*DetailDTO, error)
}

type service struct {
	repo Repository
}

// NewService wires template dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "template repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, typeFilter *enums.BatchType) (*ListResult, error) {
	rows, err := s.repo.List(ctx, typeFilter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}

	items := make([]ListItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, newListItem(row))
	}
	return &ListResult{Templates: items, Total: len(items)}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DetailDTO, error) {
	template, err := s.repo.GetWithStages(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeTemplateNotFound, "template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch template")
	}

	detail := &DetailDTO{
		ListItemDTO: newListItem(*template),
		Stages:      make([]StageDTO, 0, len(template.Stages)),
	}
	for _, stage := range template.Stages {
		detail.Stages = append(detail.Stages, newStageDTO(stage))
	}
	return detail, nil
}

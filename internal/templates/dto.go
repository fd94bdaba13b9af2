package templates

import (
	"time"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
)

// ListItemDTO is the summary view used by the catalog listing.
type ListItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      enums.BatchType `json:"type"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
}

// StageDTO is one ordered step of a template.
type StageDTO struct {
	ID           uuid.UUID       `json:"id"`
	Position     int             `json:"position"`
	Name         enums.StageName `json:"name"`
	Description  *string         `json:"description"`
	Instructions *string         `json:"instructions"`
	Materials    []string        `json:"materials"`
	DaysMin      *int            `json:"days_min"`
	DaysMax      *int            `json:"days_max"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DetailDTO is the full template with its ordered stages.
type DetailDTO struct {
	ListItemDTO
	Stages []StageDTO `json:"stages"`
}

// ListResult wraps the catalog listing.
type ListResult struct {
	Templates []ListItemDTO `json:"templates"`
	Total     int           `json:"total"`
}

func newListItem(t models.Template) ListItemDTO {
	return ListItemDTO{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
	}
}

func newStageDTO(s models.TemplateStage) StageDTO {
	return StageDTO{
		ID:           s.ID,
		Position:     s.Position,
		Name:         s.Name,
		Description:  s.Description,
		Instructions: s.Instructions,
		Materials:    s.Materials,
		DaysMin:      s.DaysMin,
		DaysMax:      s.DaysMax,
		CreatedAt:    s.CreatedAt,
	}
}

package batches

import (
	"time"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

// CreateCommand is the payload for starting a new batch.
type CreateCommand struct {
	TemplateID uuid.UUID `json:"template_id" validate:"required"`
	Name       *string   `json:"name" validate:"omitempty,min=1,max=100"`
}

// RenameCommand is the payload for renaming a batch.
type RenameCommand struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ListFilters narrows and orders the batch listing.
type ListFilters struct {
	Status *enums.BatchStatus
	Type   *enums.BatchType
	Sort   string
	Order  string
}

// CurrentStageInfo is the compact stage summary used in listings.
type CurrentStageInfo struct {
	Position    int             `json:"position"`
	Name        enums.StageName `json:"name"`
	Description *string         `json:"description"`
	DaysElapsed *int            `json:"days_elapsed,omitempty"`
}

// LatestNote is the newest note summary used in listings.
type LatestNote struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateSummary identifies the template a batch was created from.
type TemplateSummary struct {
	ID   uuid.UUID       `json:"id"`
	Name string          `json:"name"`
	Type enums.BatchType `json:"type"`
}

// ListItemDTO is one row of the batch listing.
type ListItemDTO struct {
	ID           uuid.UUID         `json:"id"`
	TemplateID   *uuid.UUID        `json:"template_id"`
	Name         string            `json:"name"`
	Type         enums.BatchType   `json:"type"`
	Status       enums.BatchStatus `json:"status"`
	StartedAt    types.Date        `json:"started_at"`
	CompletedAt  *types.Date       `json:"completed_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	CurrentStage CurrentStageInfo  `json:"current_stage"`
	LatestNote   *LatestNote       `json:"latest_note"`
	Rating       *int              `json:"rating"`
}

// ListResult wraps the batch listing.
type ListResult struct {
	Batches []ListItemDTO `json:"batches"`
	Total   int           `json:"total"`
}

// DetailDTO is the full batch view returned by create and get.
type DetailDTO struct {
	ID                   uuid.UUID              `json:"id"`
	UserID               uuid.UUID              `json:"user_id"`
	TemplateID           *uuid.UUID             `json:"template_id"`
	Name                 string                 `json:"name"`
	Type                 enums.BatchType        `json:"type"`
	Status               enums.BatchStatus      `json:"status"`
	StartedAt            types.Date             `json:"started_at"`
	CompletedAt          *types.Date            `json:"completed_at"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Template             *TemplateSummary       `json:"template,omitempty"`
	CurrentStage         *CurrentStageInfo      `json:"current_stage,omitempty"`
	Stages               []stages.BatchStageDTO `json:"stages"`
	Notes                []stages.NoteDTO       `json:"notes,omitempty"`
	Rating               *int                   `json:"rating"`
	CurrentStagePosition *int                   `json:"current_stage_position,omitempty"`
}

// RenameResult confirms a rename.
type RenameResult struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompleteResult confirms archiving a batch.
type CompleteResult struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Status      enums.BatchStatus `json:"status"`
	CompletedAt types.Date        `json:"completed_at"`
	Message     string            `json:"message"`
}

// DeleteResult confirms a delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// NewCurrentStageInfo maps a stage into the compact listing shape.
func NewCurrentStageInfo(stage models.BatchStage, now time.Time) CurrentStageInfo {
	info := CurrentStageInfo{}
	if ts := stage.TemplateStage; ts != nil {
		info.Position = ts.Position
		info.Name = ts.Name
		info.Description = ts.Description
	}
	if stage.StartedAt != nil && stage.CompletedAt == nil {
		days := stages.DaysElapsed(*stage.StartedAt, now)
		info.DaysElapsed = &days
	}
	return info
}

package stages

import (
	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

// StageStatus is derived from the stage's date columns, never stored.
type StageStatus string

const (
	StageStatusPending    StageStatus = "pending"
	StageStatusInProgress StageStatus = "in_progress"
	StageStatusCompleted  StageStatus = "completed"
)

// BatchStageDTO is a batch stage joined with its template metadata.
type BatchStageDTO struct {
	ID              uuid.UUID       `json:"id"`
	BatchID         uuid.UUID       `json:"batch_id"`
	TemplateStageID uuid.UUID       `json:"template_stage_id"`
	Position        int             `json:"position"`
	Name            enums.StageName `json:"name"`
	Description     *string         `json:"description"`
	Instructions    *string         `json:"instructions"`
	Materials       []string        `json:"materials"`
	DaysMin         *int            `json:"days_min"`
	DaysMax         *int            `json:"days_max"`
	StartedAt       *types.Date     `json:"started_at"`
	CompletedAt     *types.Date     `json:"completed_at"`
	Status          StageStatus     `json:"status"`
	DaysElapsed     *int            `json:"days_elapsed,omitempty"`
}

// StageSummaryDTO is the compact shape used for the just-completed stage.
type StageSummaryDTO struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Name        enums.StageName `json:"name"`
	Description *string         `json:"description"`
	StartedAt   *types.Date     `json:"started_at"`
	CompletedAt *types.Date     `json:"completed_at"`
}

// NoteDTO is a note enriched with the name of the stage it was logged under.
type NoteDTO struct {
	ID           uuid.UUID        `json:"id"`
	BatchID      uuid.UUID        `json:"batch_id"`
	StageID      *uuid.UUID       `json:"stage_id"`
	UserID       uuid.UUID        `json:"user_id"`
	Action       string           `json:"action"`
	Observations *string          `json:"observations"`
	CreatedAt    string           `json:"created_at"`
	StageName    *enums.StageName `json:"stage_name,omitempty"`
}

// AdvanceResult reports a completed stage transition.
type AdvanceResult struct {
	PreviousStage StageSummaryDTO `json:"previous_stage"`
	CurrentStage  BatchStageDTO   `json:"current_stage"`
	Note          *NoteDTO        `json:"note,omitempty"`
}

// CurrentStageDetails is the current stage with its notes attached.
type CurrentStageDetails struct {
	BatchStageDTO
	Notes []NoteDTO `json:"notes"`
}

// AdvanceNote is the optional note payload accepted by Advance.
type AdvanceNote struct {
	Action       string  `json:"action" validate:"required,max=200"`
	Observations *string `json:"observations" validate:"omitempty,max=200"`
}

// NewNoteDTO maps a persisted note, tagging it with the stage name when known.
func NewNoteDTO(note models.Note, stageName *enums.StageName) NoteDTO {
	return NoteDTO{
		ID:           note.ID,
		BatchID:      note.BatchID,
		StageID:      note.StageID,
		UserID:       note.UserID,
		Action:       note.Action,
		Observations: note.Observations,
		CreatedAt:    note.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		StageName:    stageName,
	}
}

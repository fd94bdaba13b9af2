package notes

import (
	"github.com/google/uuid"

	"github.com/MajQs/WineLog/internal/stages"
)

// CreateCommand is the payload for logging a note against a batch.
type CreateCommand struct {
	Action       string  `json:"action" validate:"required"`
	Observations *string `json:"observations"`
}

// maxFieldLength caps both note text fields.
const maxFieldLength = 200

// ListFilters narrows and orders the note listing.
type ListFilters struct {
	StageID *uuid.UUID
	Order   string
}

// ListResult wraps the note listing.
type ListResult struct {
	Notes []stages.NoteDTO `json:"notes"`
	Total int              `json:"total"`
}

// DeleteResult confirms a delete.
type DeleteResult struct {
	Message string `json:"message"`
}

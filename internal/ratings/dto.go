package ratings

import (
	"time"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/db/models"
)

// UpsertCommand is the payload for rating a completed batch.
type UpsertCommand struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// DTO is the stored rating for a batch.
type DTO struct {
	BatchID   uuid.UUID `json:"batch_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newDTO(r models.Rating) DTO {
	return DTO{
		BatchID:   r.BatchID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

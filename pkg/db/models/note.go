package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form log entry against a batch, optionally pinned to the
// stage that was current when it was written.
type Note struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BatchID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	StageID      *uuid.UUID `gorm:"type:uuid"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null"`
	Action       string     `gorm:"type:varchar(200);not null"`
	Observations *string    `gorm:"type:varchar(200)"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;default:now()"`
}

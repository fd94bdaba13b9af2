package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single 1-5 score per (batch, user). Upserts keep the original
// created_at and bump updated_at.
type Rating struct {
	BatchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Rating    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

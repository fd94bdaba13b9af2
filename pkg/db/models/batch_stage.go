package models

import (
	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/types"
)

// BatchStage is a batch's copy of one template stage. Its status is always
// derived from the two date columns, never stored.
type BatchStage struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BatchID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	TemplateStageID uuid.UUID   `gorm:"type:uuid;not null"`
	StartedAt       *types.Date `gorm:"type:date"`
	CompletedAt     *types.Date `gorm:"type:date"`

	TemplateStage *TemplateStage `gorm:"foreignKey:TemplateStageID"`
}

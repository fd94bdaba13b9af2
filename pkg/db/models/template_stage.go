package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/MajQs/WineLog/pkg/enums"
)

// TemplateStage is one ordered step of a template's production plan.
type TemplateStage struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TemplateID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_template_stage_position,priority:1"`
	Position     int             `gorm:"not null;uniqueIndex:idx_template_stage_position,priority:2"`
	Name         enums.StageName `gorm:"type:stage_name;not null"`
	Description  *string         `gorm:"type:text"`
	Instructions *string         `gorm:"type:text"`
	Materials    pq.StringArray  `gorm:"type:text[]"`
	DaysMin      *int            `gorm:"column:days_min"`
	DaysMax      *int            `gorm:"column:days_max"`
	CreatedAt    time.Time       `gorm:"type:timestamptz;default:now()"`
}

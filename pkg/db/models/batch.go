package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

// Batch is one production run owned by a single user.
type Batch struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	TemplateID  *uuid.UUID        `gorm:"type:uuid"`
	Name        string            `gorm:"type:varchar(100);not null"`
	Type        enums.BatchType   `gorm:"type:batch_type;not null"`
	Status      enums.BatchStatus `gorm:"type:batch_status;not null;default:active"`
	StartedAt   types.Date        `gorm:"type:date;not null"`
	CompletedAt *types.Date       `gorm:"type:date"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Stages []BatchStage `gorm:"foreignKey:BatchID"`
}

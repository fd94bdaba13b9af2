package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/MajQs/WineLog/pkg/enums"
)

// Template is a reusable production plan a batch is instantiated from.
type Template struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"type:text;not null"`
	Type      enums.BatchType `gorm:"type:batch_type;not null"`
	Version   int             `gorm:"not null;default:1"`
	CreatedAt time.Time       `gorm:"type:timestamptz;default:now()"`

	Stages []TemplateStage `gorm:"foreignKey:TemplateID"`
}

// TableName keeps the short plural used by the migrations.
func (Template) TableName() string {
	return "templates"
}

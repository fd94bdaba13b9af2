package dashboard

import (
	"github.com/google/uuid"

	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

// ActiveBatchDTO is the compact batch card shown on the dashboard.
type ActiveBatchDTO struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Type         enums.BatchType          `json:"type"`
	StartedAt    types.Date               `json:"started_at"`
	CurrentStage batches.CurrentStageInfo `json:"current_stage"`
	LatestNote   *batches.LatestNote      `json:"latest_note"`
}

// DTO is the aggregated dashboard view.
type DTO struct {
	ActiveBatches        []ActiveBatchDTO `json:"active_batches"`
	ArchivedBatchesCount int64            `json:"archived_batches_count"`
	TotalNotes           int64            `json:"total_notes"`
}

package stages

import (
	"math"
	"time"

	"github.com/MajQs/WineLog/pkg/db/models"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/types"
)

// FirstIncomplete returns the index of the first stage without a completion
// date. Callers rely on stages being ordered by template position.
func FirstIncomplete(list []models.BatchStage) (int, bool) {
	for i, stage := range list {
		if stage.CompletedAt == nil {
			return i, true
		}
	}
	return -1, false
}

// CurrentOrLast returns the first incomplete stage, falling back to the final
// stage when every stage is complete.
func CurrentOrLast(list []models.BatchStage) (models.BatchStage, bool) {
	if len(list) == 0 {
		return models.BatchStage{}, false
	}
	if idx, ok := FirstIncomplete(list); ok {
		return list[idx], true
	}
	return list[len(list)-1], true
}

// DaysElapsed counts calendar days since start, rounding up and never
// reporting less than one for a stage that has started.
func DaysElapsed(start types.Date, now time.Time) int {
	diff := now.Sub(start.Time)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// StatusOf derives the presentation status from the stage's date columns.
func StatusOf(stage models.BatchStage) StageStatus {
	switch {
	case stage.CompletedAt != nil:
		return StageStatusCompleted
	case stage.StartedAt != nil:
		return StageStatusInProgress
	default:
		return StageStatusPending
	}
}

// BuildStageDTO joins a batch stage with its preloaded template metadata.
func BuildStageDTO(stage models.BatchStage, now time.Time) BatchStageDTO {
	dto := BatchStageDTO{
		ID:              stage.ID,
		BatchID:         stage.BatchID,
		TemplateStageID: stage.TemplateStageID,
		StartedAt:       stage.StartedAt,
		CompletedAt:     stage.CompletedAt,
		Status:          StatusOf(stage),
	}

	if ts := stage.TemplateStage; ts != nil {
		dto.Position = ts.Position
		dto.Name = ts.Name
		dto.Description = ts.Description
		dto.Instructions = ts.Instructions
		dto.Materials = ts.Materials
		dto.DaysMin = ts.DaysMin
		dto.DaysMax = ts.DaysMax
	}

	if stage.StartedAt != nil && stage.CompletedAt == nil {
		days := DaysElapsed(*stage.StartedAt, now)
		dto.DaysElapsed = &days
	}

	return dto
}

// BuildStageSummary maps a stage into the compact previous-stage shape.
func BuildStageSummary(stage models.BatchStage) StageSummaryDTO {
	summary := StageSummaryDTO{
		ID:          stage.ID,
		StartedAt:   stage.StartedAt,
		CompletedAt: stage.CompletedAt,
	}
	if ts := stage.TemplateStage; ts != nil {
		summary.Position = ts.Position
		summary.Name = ts.Name
		summary.Description = ts.Description
	}
	return summary
}

func stageName(stage models.BatchStage) *enums.StageName {
	if stage.TemplateStage == nil {
		return nil
	}
	name := stage.TemplateStage.Name
	return &name
}

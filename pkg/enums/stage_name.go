package enums

import "fmt"

// StageName identifies a production stage within a template.
type StageName string

const (
	StageNamePreparation   StageName = "preparation"
	StageNameFermentation  StageName = "fermentation"
	StageNamePressing      StageName = "pressing"
	StageNameRacking       StageName = "racking"
	StageNameClarification StageName = "clarification"
	StageNameAging         StageName = "aging"
	StageNameBottling      StageName = "bottling"
)

var validStageNames = []StageName{
	StageNamePreparation,
	StageNameFermentation,
	StageNamePressing,
	StageNameRacking,
	StageNameClarification,
	StageNameAging,
	StageNameBottling,
}

// String implements fmt.Stringer.
func (s StageName) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StageName.
func (s StageName) IsValid() bool {
	for _, candidate := range validStageNames {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStageName converts raw input into a StageName.
func ParseStageName(value string) (StageName, error) {
	for _, candidate := range validStageNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stage name %q", value)
}

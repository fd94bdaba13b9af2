package enums

import "fmt"

// BatchType identifies the style of beverage a template produces.
type BatchType string

const (
	BatchTypeRedWine   BatchType = "red_wine"
	BatchTypeWhiteWine BatchType = "white_wine"
	BatchTypeRoseWine  BatchType = "rose_wine"
	BatchTypeFruitWine BatchType = "fruit_wine"
	BatchTypeMead      BatchType = "mead"
)

var validBatchTypes = []BatchType{
	BatchTypeRedWine,
	BatchTypeWhiteWine,
	BatchTypeRoseWine,
	BatchTypeFruitWine,
	BatchTypeMead,
}

// String implements fmt.Stringer.
func (b BatchType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BatchType.
func (b BatchType) IsValid() bool {
	for _, candidate := range validBatchTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// BatchTypeValues lists every valid batch type as strings.
func BatchTypeValues() []string {
	out := make([]string, 0, len(validBatchTypes))
	for _, candidate := range validBatchTypes {
		out = append(out, string(candidate))
	}
	return out
}

// ParseBatchType converts raw input into a BatchType.
func ParseBatchType(value string) (BatchType, error) {
	for _, candidate := range validBatchTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid batch type %q", value)
}

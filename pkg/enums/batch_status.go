package enums

import "fmt"

// BatchStatus tracks whether a batch is still in production or archived.
type BatchStatus string

const (
	BatchStatusActive   BatchStatus = "active"
	BatchStatusArchived BatchStatus = "archived"
)

var validBatchStatuses = []BatchStatus{
	BatchStatusActive,
	BatchStatusArchived,
}

// String implements fmt.Stringer.
func (b BatchStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BatchStatus.
func (b BatchStatus) IsValid() bool {
	for _, candidate := range validBatchStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// BatchStatusValues lists every valid batch status as strings.
func BatchStatusValues() []string {
	out := make([]string, 0, len(validBatchStatuses))
	for _, candidate := range validBatchStatuses {
		out = append(out, string(candidate))
	}
	return out
}

// ParseBatchStatus converts raw input into a BatchStatus.
func ParseBatchStatus(value string) (BatchStatus, error) {
	for _, candidate := range validBatchStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid batch status %q", value)
}

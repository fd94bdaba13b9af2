package validators

import "strings"

// SanitizeString trims whitespace and clamps the result to maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 {
		runes := []rune(trimmed)
		if len(runes) > maxLen {
			return string(runes[:maxLen])
		}
	}
	return trimmed
}

package selection

import (
	"strconv"
	"strings"

	"tvconvert/internal/inventory"
)

// IsValidSelection reports whether candidate is a decimal index naming a
// stream in subset. Signs, spaces inside the number, and other bases are rejected.
func IsValidSelection(candidate string, subset []inventory.StreamDescriptor) bool {
	index, ok := parseIndex(candidate)
	if !ok {
		return false
	}
	for _, s := range subset {
		if s.Index == index {
			return true
		}
	}
	return false
}

// IsValidSubtitleSelection also accepts an empty answer, meaning no primary subtitle.
func IsValidSubtitleSelection(candidate string, subset []inventory.StreamDescriptor) bool {
	if strings.TrimSpace(candidate) == "" {
		return true
	}
	return IsValidSelection(candidate, subset)
}

func parseIndex(candidate string) (int, bool) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return 0, false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return index, true
}

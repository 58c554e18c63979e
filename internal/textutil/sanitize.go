package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// untitledSegment replaces segments that sanitize down to nothing.
const untitledSegment = "untitled"

// illegalSegmentRunes are removed from every path segment.
const illegalSegmentRunes = `<>:"/\|?*`

func isIllegalRune(r rune) bool {
	return unicode.IsControl(r) || strings.ContainsRune(illegalSegmentRunes, r)
}

// SanitizePathSegment makes a single path component safe for common filesystems.
// Text is NFC-normalized, control characters and <>:"/\|?* are removed, runs of
// whitespace collapse to a single space and leading/trailing spaces and dots are
// trimmed. A segment that sanitizes to nothing becomes "untitled".
func SanitizePathSegment(segment string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isIllegalRune)))
	cleaned, _, err := transform.String(t, segment)
	if err != nil {
		cleaned = strings.Map(func(r rune) rune {
			if isIllegalRune(r) {
				return -1
			}
			return r
		}, segment)
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return untitledSegment
	}
	return cleaned
}

// SanitizeToken converts a string to a lowercase filesystem-safe token.
// Letters are lowercased, digits and hyphens/underscores are kept, everything
// else becomes an underscore. Returns an empty string for empty input.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_-")
}

// ContainsIllegal reports whether a segment still holds a character that
// SanitizePathSegment would remove.
func ContainsIllegal(segment string) bool {
	return strings.IndexFunc(segment, isIllegalRune) >= 0
}

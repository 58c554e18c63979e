package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code container tools use for unknown languages.
const Undetermined = "und"

// aliases covers bibliographic ISO 639-2/B codes and English word forms that
// show up in container tags but are not accepted as base subtags.
var aliases = map[string]string{
	"fre":        "fr",
	"ger":        "de",
	"dut":        "nl",
	"chi":        "zh",
	"cze":        "cs",
	"gre":        "el",
	"per":        "fa",
	"rum":        "ro",
	"slo":        "sk",
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"dutch":      "nl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"polish":     "pl",
	"hungarian":  "hu",
}

func lookup(code string) (xlanguage.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return xlanguage.Base{}, false
	}
	if alias, ok := aliases[code]; ok {
		code = alias
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return xlanguage.Base{}, false
	}
	if base.String() == Undetermined {
		return xlanguage.Base{}, false
	}
	return base, true
}

// Known reports whether the code resolves to a registered language.
func Known(code string) bool {
	_, ok := lookup(code)
	return ok
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input or languages without a 2-letter code.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if base, ok := lookup(code); ok {
		if short := base.String(); len(short) == 2 {
			return short
		}
		return ""
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2 (3-letter).
// Returns "und" for unrecognized 2-letter codes, passes through 3-letter codes.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Undetermined
	}
	if base, ok := lookup(code); ok {
		return base.ISO3()
	}
	if len(code) == 3 {
		return code
	}
	return Undetermined
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" || strings.EqualFold(strings.TrimSpace(code), Undetermined) {
		return "Unknown"
	}
	if base, ok := lookup(code); ok {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// FromFileName extracts a language infix from names like "Movie.en.srt" or
// "Movie.forced.eng.srt". The last recognized dotted token before the
// extension wins. Returns an empty string when none is found.
func FromFileName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return ""
	}
	for i := len(parts) - 2; i >= 1; i-- {
		token := strings.TrimSpace(parts[i])
		if len(token) != 2 && len(token) != 3 {
			continue
		}
		if Known(token) {
			return strings.ToLower(token)
		}
	}
	return ""
}

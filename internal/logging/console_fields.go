package logging

import (
	"log/slog"
	"strings"
	"unicode"
)

type infoField struct {
	label string
	value string
}

// infoHighlightKeys are rendered first, in this order, on info-level records.
var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	"target",
	"input_path",
	"output_path",
	FieldProgressPercent,
	"speed",
	"exit_code",
	"error",
	FieldErrorHint,
	FieldImpact,
	"succeeded",
	"failed",
	"follow_up",
	"elapsed",
}

func selectInfoFields(attrs []kv) []infoField {
	if len(attrs) == 0 {
		return nil
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if used[idx] || attr.key != key {
				continue
			}
			used[idx] = true
			result = append(result, infoField{label: displayLabel(attr.key), value: formatInfoValue(attr)})
			break
		}
	}
	for idx, attr := range attrs {
		if used[idx] || skipInfoKey(attr.key) {
			continue
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: formatInfoValue(attr)})
	}
	return result
}

func formatInfoValue(attr kv) string {
	v := attr.value.Resolve()
	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := formatValue(v)
	if attr.key == "error" {
		value = truncateErrorValue(value)
	}
	return value
}

func truncateErrorValue(value string) string {
	value = strings.TrimSpace(value)
	const maxLen = 200
	if len(value) > maxLen {
		value = value[:maxLen] + "…"
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldTargetIndex, FieldStage, FieldComponent, FieldRunID:
		return true
	default:
		return false
	}
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldProgressPercent:
		return "Progress"
	case "input_path":
		return "Input"
	case "output_path":
		return "Output"
	case "exit_code":
		return "Exit Code"
	case "follow_up":
		return "Follow-up"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '.' || r == '-' })
	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

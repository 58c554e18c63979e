package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"tvconvert/internal/plan"
)

// GlobalArgs precede every invocation: quiet banner, warnings only,
// machine-readable progress on stdout, and overwrite without asking.
var GlobalArgs = []string{"-hide_banner", "-loglevel", "warning", "-progress", "pipe:1", "-nostats", "-y"}

// RenderArgs turns a plan into the engine argument list: global flags, one
// -i per input, then each output's directives followed by its path.
func RenderArgs(p plan.Plan) []string {
	args := append([]string(nil), GlobalArgs...)
	for _, input := range p.Inputs {
		args = append(args, "-i", input)
	}
	for _, out := range p.Outputs {
		for _, d := range out.Directives {
			args = append(args, renderDirective(d)...)
		}
		args = append(args, out.Path)
	}
	return args
}

func renderDirective(d plan.Directive) []string {
	switch v := d.(type) {
	case plan.CopyVideo:
		return []string{"-map", streamRef(v.Input, v.Stream), "-c:v:0", "copy"}
	case plan.NormalizedAudio:
		slot := strconv.Itoa(v.Slot)
		args := []string{
			"-map", streamRef(0, v.Stream),
			"-c:a:" + slot, v.Codec,
			"-ar:a:" + slot, strconv.Itoa(v.SampleRate),
			"-b:a:" + slot, v.Bitrate,
			"-ac:a:" + slot, strconv.Itoa(v.Channels),
			"-filter:a:" + slot, "loudnorm=lra=" + formatNumber(v.LoudnessRange),
		}
		args = appendMetadata(args, "a", v.Slot, "title", v.Title)
		args = appendMetadata(args, "a", v.Slot, "language", v.Language)
		return append(args, "-disposition:a:"+slot, "default")
	case plan.PassthroughAudio:
		slot := strconv.Itoa(v.Slot)
		args := []string{
			"-map", streamRef(0, v.Stream),
			"-c:a:" + slot, "copy",
			"-disposition:a:" + slot, "0",
		}
		args = appendMetadata(args, "a", v.Slot, "title", v.Title)
		return appendMetadata(args, "a", v.Slot, "language", v.Language)
	case plan.PrimarySubtitle:
		slot := strconv.Itoa(v.Slot)
		return []string{"-map", streamRef(0, v.Stream), "-c:s:" + slot, "copy", "-disposition:s:" + slot, "default"}
	case plan.PassthroughSubtitle:
		slot := strconv.Itoa(v.Slot)
		args := []string{"-map", streamRef(0, v.Stream), "-c:s:" + slot, "copy"}
		if v.ClearDefault {
			args = append(args, "-disposition:s:"+slot, "0")
		}
		return args
	case plan.ExternalSubtitle:
		slot := strconv.Itoa(v.Slot)
		args := []string{"-map", fmt.Sprintf("%d:s:0", v.Input), "-c:s:" + slot, "copy", "-disposition:s:" + slot, "default"}
		return appendMetadata(args, "s", v.Slot, "language", v.Language)
	case plan.ExtractSubtitle:
		return []string{"-map", streamRef(0, v.Stream)}
	default:
		return nil
	}
}

func streamRef(input, stream int) string {
	return fmt.Sprintf("%d:%d", input, stream)
}

func appendMetadata(args []string, kind string, slot int, key, value string) []string {
	if value == "" {
		return args
	}
	return append(args, fmt.Sprintf("-metadata:s:%s:%d", kind, slot), key+"="+value)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CommandLine renders binary and args as a single shell-pasteable line.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	safe := true
	for _, r := range value {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=,+@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

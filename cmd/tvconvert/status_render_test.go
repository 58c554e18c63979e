package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"tvconvert/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ready", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestReadinessLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "FFmpeg", Passed: true, Detail: "ffmpeg"},
		{Name: "Input 1", Passed: false, Detail: "/in/a.mkv (missing)"},
	}
	lines := readinessLines(results, false)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[2], "[OK] ffmpeg") {
		t.Fatalf("unexpected ok line %q", lines[2])
	}
	if !strings.Contains(lines[3], "[ERROR] /in/a.mkv (missing)") {
		t.Fatalf("unexpected error line %q", lines[3])
	}
	if !strings.Contains(lines[4], "[WARN] 1 of 2 checks failed") {
		t.Fatalf("unexpected summary %q", lines[4])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio", "channels": 6, "tags": {"language": "eng", "title": "Surround"}},
    {"index": 2, "codec_name": "aac", "codec_type": "audio", "channels": 2},
    {"index": 3, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "fre"}, "disposition": {"default": 0, "forced": 1}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 4, "duration": "123.450000", "format_name": "matroska,webm"}
}`

func TestParseDecodesStreamsAndTags(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Streams) != 4 {
		t.Fatalf("expected 4 streams, got %d", len(result.Streams))
	}
	if result.Streams[0].CodecType != CodecTypeVideo || result.Streams[1].CodecType != CodecTypeAudio {
		t.Fatalf("unexpected codec types: %+v", result.Streams[:2])
	}
	audio := result.Streams[1]
	if audio.Tags.Language != "eng" || audio.Tags.Title != "Surround" || audio.Channels != 6 {
		t.Fatalf("unexpected audio stream: %+v", audio)
	}
	if result.Streams[2].Tags.Language != "" {
		t.Fatalf("expected missing language to stay empty, got %q", result.Streams[2].Tags.Language)
	}
	if result.Streams[3].Disposition.Forced != 1 {
		t.Fatalf("expected forced disposition, got %+v", result.Streams[3].Disposition)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.Format.FormatName != "matroska,webm" {
		t.Fatalf("unexpected format name: %q", result.Format.FormatName)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDurationSecondsHandlesUnusableValues(t *testing.T) {
	for _, value := range []string{"", "N/A", "bad", "-1", "0", "NaN", "Inf"} {
		result := Result{Format: Format{Duration: value}}
		if got := result.DurationSeconds(); got != 0 {
			t.Fatalf("duration %q: expected 0, got %v", value, got)
		}
	}
}

func TestInspectRunsBinary(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payloadPath, []byte(samplePayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	script := "#!/bin/sh\ncat '" + payloadPath + "'\n"
	binary := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), binary, "/media/movie.mkv")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(result.Streams) != 4 {
		t.Fatalf("expected 4 streams, got %d", len(result.Streams))
	}
}

func TestInspectReportsFailure(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\necho 'movie.mkv: Invalid data found when processing input' >&2\nexit 1\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	_, err := Inspect(context.Background(), binary, "/media/movie.mkv")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestArgsTerminateOptionsBeforePath(t *testing.T) {
	args := Args("-weird.mkv")
	if args[len(args)-2] != "--" || args[len(args)-1] != "-weird.mkv" {
		t.Fatalf("unexpected args: %v", args)
	}
}

package ffmpeg_test

import (
	"reflect"
	"strings"
	"testing"

	"tvconvert/internal/ffmpeg"
	"tvconvert/internal/inventory"
	"tvconvert/internal/naming"
	"tvconvert/internal/plan"
	"tvconvert/internal/selection"
)

func scenarioInventory() inventory.Inventory {
	return inventory.Inventory{
		Streams: []inventory.StreamDescriptor{
			{Index: 0, Kind: inventory.KindVideo, CodecName: "h264"},
			{Index: 1, Kind: inventory.KindAudio, CodecName: "ac3", Language: "eng", Channels: 6},
			{Index: 2, Kind: inventory.KindAudio, CodecName: "aac", Language: "jpn", Channels: 2},
			{Index: 3, Kind: inventory.KindAudio, CodecName: "dts", Title: "Commentary"},
			{Index: 4, Kind: inventory.KindSubtitle, CodecName: "subrip", Language: "eng"},
			{Index: 5, Kind: inventory.KindSubtitle, CodecName: "subrip", Language: "spa"},
		},
		DurationSeconds: 60,
	}
}

func TestRenderArgsScenario(t *testing.T) {
	primary := 4
	p := plan.Build(plan.Request{
		Target:      naming.Movie("Heat", 1995, "/in/heat.mkv"),
		Inventory:   scenarioInventory(),
		Selection:   selection.Selection{VideoIndex: 0, AudioIndex: 2, SubtitleIndex: &primary},
		OutputPath:  "/out/ready/Heat (1995).mkv",
		SidecarPath: "/out/ready/Heat (1995).en.srt",
		Profile:     plan.DefaultProfile(),
		LadderLimit: 100,
	})

	want := []string{
		"-hide_banner", "-loglevel", "warning", "-progress", "pipe:1", "-nostats", "-y",
		"-i", "/in/heat.mkv",
		"-map", "0:0", "-c:v:0", "copy",
		"-map", "0:2", "-c:a:0", "aac", "-ar:a:0", "48000", "-b:a:0", "256k", "-ac:a:0", "2",
		"-filter:a:0", "loudnorm=lra=10",
		"-metadata:s:a:0", "title=AAC 2.0 (normalized)",
		"-metadata:s:a:0", "language=jpn",
		"-disposition:a:0", "default",
		"-map", "0:1", "-c:a:1", "copy", "-disposition:a:1", "0", "-metadata:s:a:1", "title=AC3 6ch", "-metadata:s:a:1", "language=eng",
		"-map", "0:2", "-c:a:2", "copy", "-disposition:a:2", "0", "-metadata:s:a:2", "title=AAC 2ch", "-metadata:s:a:2", "language=jpn",
		"-map", "0:3", "-c:a:3", "copy", "-disposition:a:3", "0", "-metadata:s:a:3", "title=Commentary",
		"-map", "0:4", "-c:s:0", "copy", "-disposition:s:0", "default",
		"-map", "0:5", "-c:s:1", "copy", "-disposition:s:1", "0",
		"/out/ready/Heat (1995).mkv",
		"-map", "0:4",
		"/out/ready/Heat (1995).en.srt",
	}
	got := ffmpeg.RenderArgs(p)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestRenderArgsPassAllSubtitlesWithoutDisposition(t *testing.T) {
	p := plan.Build(plan.Request{
		Target:     naming.File("/in/a.mkv"),
		Inventory:  scenarioInventory(),
		Selection:  selection.Selection{VideoIndex: 0, AudioIndex: 1},
		OutputPath: "/out/a.mkv",
		Profile:    plan.DefaultProfile(),
	})
	joined := strings.Join(ffmpeg.RenderArgs(p), " ")
	if !strings.Contains(joined, "-map 0:4 -c:s:0 copy -map 0:5 -c:s:1 copy /out/a.mkv") {
		t.Fatalf("expected bare subtitle copies, got %s", joined)
	}
	if strings.Contains(joined, "-disposition:s:") {
		t.Fatalf("no subtitle disposition expected, got %s", joined)
	}
}

func TestRenderArgsExternalSubtitle(t *testing.T) {
	p := plan.Build(plan.Request{
		Target:     naming.File("/in/a.mkv"),
		Inventory:  scenarioInventory(),
		Selection:  selection.Selection{VideoIndex: 0, AudioIndex: 1, ExternalSubtitle: "/subs/a.de.srt"},
		OutputPath: "/out/a.mkv",
		Profile:    plan.DefaultProfile(),
	})
	joined := strings.Join(ffmpeg.RenderArgs(p), " ")
	for _, fragment := range []string{
		"-i /in/a.mkv -i /subs/a.de.srt",
		"-map 1:s:0 -c:s:0 copy -disposition:s:0 default -metadata:s:s:0 language=deu /out/a.mkv",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("missing %q in %s", fragment, joined)
		}
	}
	for _, absent := range []string{"-map 0:4", "-map 0:5", "-c:s:1"} {
		if strings.Contains(joined, absent) {
			t.Fatalf("in-container subtitle %q must not be mapped with an external file: %s", absent, joined)
		}
	}
}

func TestCommandLineQuotes(t *testing.T) {
	got := ffmpeg.CommandLine("/usr/bin/ffmpeg", []string{"-i", "/in/It's here.mkv", "title=AAC 2.0", ""})
	want := `/usr/bin/ffmpeg -i '/in/It'\''s here.mkv' 'title=AAC 2.0' ''`
	if got != want {
		t.Fatalf("CommandLine = %s, want %s", got, want)
	}
}

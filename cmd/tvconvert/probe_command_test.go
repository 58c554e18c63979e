package main

import (
	"testing"

	"tvconvert/internal/testsupport"
)

func TestProbePrintsInventory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.FFmpegStub{}, "alpha.mkv")

	out, _, err := runCLI(t, []string{"probe", env.inputs[0]}, env.configPath, "")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "Duration: 1m0s")
	requireContains(t, out, "== Audio ==")
	requireContains(t, out, "Japanese")
	requireContains(t, out, "subrip")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "unknown"},
		{-1, "unknown"},
		{59.6, "1m0s"},
		{3725, "1h2m5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

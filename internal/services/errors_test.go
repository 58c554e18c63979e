package services_test

import (
	"errors"
	"strings"
	"testing"

	"tvconvert/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrProbe, "gather", "ffprobe", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"gather", "ffprobe", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrConfiguration, "config", "validate", "bad", nil), "configuration"},
		{services.Wrap(services.ErrMissingInput, "preflight", "inputs", "gone", nil), "missing_input"},
		{services.Wrap(services.ErrProbe, "gather", "ffprobe", "exit 1", nil), "probe"},
		{services.Wrap(services.ErrSelection, "gather", "audio", "eof", nil), "selection"},
		{services.Wrap(services.ErrEngine, "execute", "ffmpeg", "exit 1", nil), "engine"},
		{services.Wrap(services.ErrExternalTool, "preflight", "deps", "missing", nil), "external_tool"},
		{errors.New("plain"), "unknown"},
	}
	for _, tt := range tests {
		if got := services.Kind(tt.err); got != tt.want {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsFatal(t *testing.T) {
	if services.IsFatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
	if services.IsFatal(services.Wrap(services.ErrEngine, "execute", "ffmpeg", "exit 1", nil)) {
		t.Fatal("engine failures are per-target")
	}
	if !services.IsFatal(services.Wrap(services.ErrProbe, "gather", "ffprobe", "bad json", nil)) {
		t.Fatal("probe failures abort the run")
	}
}

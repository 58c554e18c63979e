package preflight_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvconvert/internal/config"
	"tvconvert/internal/preflight"
	"tvconvert/internal/services"
	"tvconvert/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := preflight.CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func newRunConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)
	input := filepath.Join(base, "in", "movie.mkv")
	testsupport.WriteFile(t, input, 16)
	cfg.Movies = []config.Movie{{Title: "Movie", Year: 2001, InputFile: input}}
	return cfg
}

func TestValidateRunPassesAndCreatesDirectories(t *testing.T) {
	cfg := newRunConfig(t)
	if err := preflight.ValidateRun(context.Background(), cfg, false); err != nil {
		t.Fatalf("ValidateRun: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); err != nil {
		t.Fatalf("expected output dir to be created: %v", err)
	}
}

func TestValidateRunDryRunDoesNotCreateDirectories(t *testing.T) {
	cfg := newRunConfig(t)
	if err := preflight.ValidateRun(context.Background(), cfg, true); err != nil {
		t.Fatalf("ValidateRun: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create output dir, stat err = %v", err)
	}
}

func TestValidateRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, cfg *config.Config)
		marker error
		want   string
	}{
		{
			name:   "no targets",
			mutate: func(_ *testing.T, cfg *config.Config) { cfg.Movies = nil },
			marker: services.ErrConfiguration,
			want:   "No conversion targets",
		},
		{
			name: "missing binary",
			mutate: func(_ *testing.T, cfg *config.Config) {
				cfg.Paths.FFprobeBinary = "definitely-not-installed-ffprobe"
			},
			marker: services.ErrExternalTool,
			want:   "FFprobe",
		},
		{
			name: "missing input",
			mutate: func(_ *testing.T, cfg *config.Config) {
				cfg.Inputs = []string{filepath.Join(testsupport.BaseDir(cfg), "in", "absent.mkv")}
			},
			marker: services.ErrMissingInput,
			want:   "absent.mkv",
		},
		{
			name: "collision",
			mutate: func(_ *testing.T, cfg *config.Config) {
				cfg.Movies = append(cfg.Movies, config.Movie{Title: "Movie", Year: 2001, InputFile: cfg.Movies[0].InputFile})
			},
			marker: services.ErrConfiguration,
			want:   "same output",
		},
		{
			name: "existing output",
			mutate: func(t *testing.T, cfg *config.Config) {
				testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, "ready", "Movie (2001).mkv"), 1)
			},
			marker: services.ErrConfiguration,
			want:   "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newRunConfig(t)
			tt.mutate(t, cfg)
			err := preflight.ValidateRun(context.Background(), cfg, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected marker %v, got %v", tt.marker, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateRunOverwriteAllowsExistingOutputs(t *testing.T) {
	cfg := newRunConfig(t)
	cfg.Output.Overwrite = true
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, "ready", "Movie (2001).mkv"), 1)
	if err := preflight.ValidateRun(context.Background(), cfg, false); err != nil {
		t.Fatalf("ValidateRun: %v", err)
	}
}

func TestRunAllReportsEachCheck(t *testing.T) {
	cfg := newRunConfig(t)
	results := preflight.RunAll(context.Background(), cfg)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"FFmpeg", "FFprobe", "Output directory", "Movie (2001)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %v", want, names)
		}
	}
}

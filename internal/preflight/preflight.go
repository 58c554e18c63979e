package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tvconvert/internal/config"
	"tvconvert/internal/deps"
	"tvconvert/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config and reports
// each outcome. It never creates directories.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		r := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			r.Detail = status.Detail
		}
		results = append(results, r)
	}
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckInputs(cfg.Targets())...)
	results = append(results, CheckCollisions(cfg.Layout(), cfg.Targets())...)
	if !cfg.Output.Overwrite {
		results = append(results, CheckExistingOutputs(cfg.Layout(), cfg.Targets())...)
	}
	return results
}

// ValidateRun checks everything a run needs before the first prompt. Except
// for dry runs the output and log directories are created first. The first
// failing category is returned, marked with the matching services sentinel.
func ValidateRun(ctx context.Context, cfg *config.Config, dryRun bool) error {
	if cfg == nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "config", "Configuration missing", nil)
	}
	targets := cfg.Targets()
	if len(targets) == 0 {
		return services.Wrap(services.ErrConfiguration, "preflight", "targets", "No conversion targets configured (add inputs, [[movies]], or [[episodes]])", nil)
	}

	if missing := deps.Missing(CheckSystemDeps(cfg)); len(missing) > 0 {
		details := make([]string, 0, len(missing))
		for _, m := range missing {
			details = append(details, fmt.Sprintf("%s: %s", m.Name, m.Detail))
		}
		return services.Wrap(services.ErrExternalTool, "preflight", "binaries", "Required binaries unavailable", errors.New(strings.Join(details, "; ")))
	}

	if failed := failures(CheckInputs(targets)); len(failed) > 0 {
		return services.Wrap(services.ErrMissingInput, "preflight", "inputs", "Input files missing", joinResults(failed))
	}

	if !dryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return services.Wrap(services.ErrConfiguration, "preflight", "directories", "Failed to create output directories", err)
		}
		if r := CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir); !r.Passed {
			return services.Wrap(services.ErrConfiguration, "preflight", "output_dir", "Output directory unusable", errors.New(r.Detail))
		}
	}

	if collisions := CheckCollisions(cfg.Layout(), targets); len(collisions) > 0 {
		return services.Wrap(services.ErrConfiguration, "preflight", "collisions", "Targets resolve to the same output", joinResults(collisions))
	}

	if !cfg.Output.Overwrite {
		if existing := CheckExistingOutputs(cfg.Layout(), targets); len(existing) > 0 {
			return services.Wrap(services.ErrConfiguration, "preflight", "existing_outputs", "Outputs already exist", joinResults(existing))
		}
	}
	return ctx.Err()
}

func failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

func joinResults(results []Result) error {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return errors.New(strings.Join(parts, "; "))
}

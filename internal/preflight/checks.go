package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"tvconvert/internal/config"
	"tvconvert/internal/deps"
	"tvconvert/internal/naming"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries the configuration points at.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Paths.FFmpegBinary,
			Description: "Required for conversion",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Paths.FFprobeBinary,
			Description: "Required for stream inventory",
		},
	}
	return deps.CheckBinaries(requirements)
}

// CheckInputs reports every target whose input is missing or not a regular file.
func CheckInputs(targets []naming.Target) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		name := t.IdentifyingName()
		info, err := os.Stat(t.InputPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			results = append(results, Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", t.InputPath)})
		case err != nil:
			results = append(results, Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", t.InputPath, err)})
		case !info.Mode().IsRegular():
			results = append(results, Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", t.InputPath)})
		default:
			results = append(results, Result{Name: name, Passed: true, Detail: t.InputPath})
		}
	}
	return results
}

// CheckCollisions reports output paths claimed by more than one target.
func CheckCollisions(layout naming.Layout, targets []naming.Target) []Result {
	var results []Result
	for _, c := range naming.FindCollisions(layout, targets) {
		labels := make([]string, 0, len(c.Targets))
		for _, t := range c.Targets {
			labels = append(labels, t.IdentifyingName())
		}
		results = append(results, Result{
			Name:   "Output collision",
			Detail: fmt.Sprintf("%s (claimed by %s)", c.Path, strings.Join(labels, ", ")),
		})
	}
	return results
}

// CheckExistingOutputs reports candidate outputs that already exist on disk.
func CheckExistingOutputs(layout naming.Layout, targets []naming.Target) []Result {
	var results []Result
	for _, t := range targets {
		for _, path := range layout.Candidates(t) {
			if _, err := os.Stat(path); err == nil {
				results = append(results, Result{
					Name:   t.IdentifyingName(),
					Detail: fmt.Sprintf("%s (error: already exists; set output.overwrite to replace)", path),
				})
			}
		}
	}
	return results
}

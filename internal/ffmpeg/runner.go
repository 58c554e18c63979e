package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"tvconvert/internal/progress"
	"tvconvert/internal/services"
)

// Invocation is one engine run.
type Invocation struct {
	Binary string
	Args   []string
	// Duration is the source duration in seconds used for percentages.
	Duration float64
}

// Hooks receive live output while the engine runs.
type Hooks struct {
	// OnProgress is called from the stdout reader for every emitted update.
	OnProgress func(progress.Update)
	// Diagnostics receives the engine's stderr as it is produced.
	Diagnostics io.Writer
}

// Result describes a finished engine run.
type Result struct {
	ExitCode    int
	Diagnostics string
}

// CommandFunc builds the child process. It matches exec.CommandContext.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner executes engine invocations.
type Runner struct {
	command CommandFunc
}

// NewRunner returns a runner that starts real processes.
func NewRunner() *Runner {
	return &Runner{command: exec.CommandContext}
}

// NewRunnerWithCommand returns a runner that builds processes with cmd.
func NewRunnerWithCommand(cmd CommandFunc) *Runner {
	if cmd == nil {
		cmd = exec.CommandContext
	}
	return &Runner{command: cmd}
}

// Run starts the engine and drains its progress and diagnostic streams
// concurrently until it exits. A failed start or a non-zero exit returns an
// error marked services.ErrEngine; the Result still carries the exit code and
// everything written to stderr.
func (r *Runner) Run(ctx context.Context, inv Invocation, hooks Hooks) (Result, error) {
	cmd := r.command(ctx, inv.Binary, inv.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, services.Wrap(services.ErrEngine, "execute", "stdout pipe", "Failed to attach to ffmpeg", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, services.Wrap(services.ErrEngine, "execute", "stderr pipe", "Failed to attach to ffmpeg", err)
	}
	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1, Diagnostics: err.Error()}, services.Wrap(services.ErrEngine, "execute", "start", "Failed to start ffmpeg", err)
	}

	var diagnostics bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		return drainProgress(stdout, inv.Duration, hooks.OnProgress)
	})
	g.Go(func() error {
		var w io.Writer = &diagnostics
		if hooks.Diagnostics != nil {
			w = io.MultiWriter(&diagnostics, hooks.Diagnostics)
		}
		_, err := io.Copy(w, stderr)
		return err
	})
	drainErr := g.Wait()
	waitErr := cmd.Wait()

	result := Result{Diagnostics: diagnostics.String()}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		message := fmt.Sprintf("ffmpeg exited with status %d", result.ExitCode)
		if last := lastLine(result.Diagnostics); last != "" {
			message += " (" + last + ")"
		}
		return result, services.Wrap(services.ErrEngine, "execute", "ffmpeg", message, waitErr)
	}
	if drainErr != nil {
		return result, services.Wrap(services.ErrEngine, "execute", "drain", "Failed to read ffmpeg output", drainErr)
	}
	return result, nil
}

func drainProgress(r io.Reader, duration float64, onProgress func(progress.Update)) error {
	parser := progress.NewParser(r)
	tracker := progress.NewTracker(duration)
	for {
		block, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Keep reading so the child never blocks on a full pipe.
			_, _ = io.Copy(io.Discard, r)
			return err
		}
		if update, ok := tracker.Observe(block); ok && onProgress != nil {
			onProgress(update)
		}
	}
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

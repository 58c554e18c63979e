// Package logging assembles structured slog loggers and formatting helpers used
// across tvconvert.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch code can automatically
// tag log lines with run IDs, target positions, and phases. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Operator-facing output (prompts, progress lines, the summary) is written by
// the CLI directly; these loggers record what happened for later inspection.
package logging

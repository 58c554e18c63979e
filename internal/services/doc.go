// Package services defines shared utilities consumed by the batch runner and
// the packages that wrap external tools.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, target positions, and phase
//     names for logging.
//   - Structured error markers plus the Wrap helper so fatal failures (config,
//     missing input, probe, selection) can be told apart from per-target engine
//     failures with errors.Is.
//
// Use these helpers when wiring new batch logic so error classification stays
// uniform across the pipeline.
package services

// Package preflight provides readiness checks run before a conversion batch.
//
// These checks run in two contexts:
//   - `tvconvert run` calls ValidateRun before the first prompt so a missing
//     binary, input, or colliding output aborts before any operator time is spent.
//   - `tvconvert config validate` uses RunAll to display every check outcome.
package preflight

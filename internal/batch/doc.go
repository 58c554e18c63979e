// Package batch drives a conversion run over every configured target.
//
// A run has two phases. The gather phase probes each input and asks the
// operator for its stream selection, so every prompt happens up front. The
// execute phase then builds each plan, runs the engine, and collects results.
// Probe and selection failures abort the run; engine failures are recorded
// and the remaining targets still run. Summary renders the final report.
package batch

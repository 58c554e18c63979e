// Package main hosts the tvconvert CLI entrypoint and command graph.
//
// The Cobra command tree loads the TOML configuration once per invocation
// and hands it to the internal packages: run drives preflight, the run lock,
// the batch and the history ledger; probe prints a stream inventory; history
// reads the ledger back; config scaffolds and checks configuration files.
//
// Keep this package thin. New behavior belongs in internal packages first and
// is surfaced here through commands or flags.
package main

// Package logs reads the run log written by internal/logging.
//
// Last returns the trailing lines of a log with bounded memory, ReadFrom
// resumes from a byte offset, and Follow polls for appended lines until its
// context ends. The CLI `logs` command is the main consumer.
package logs

// Package history keeps an append-only SQLite ledger of tvconvert runs and
// their per-target outcomes. It is informational only: nothing reads it back
// to resume work.
package history

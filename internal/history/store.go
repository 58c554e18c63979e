package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the append-only run ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, config_path, dry_run, target_count) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		nullableString(run.ConfigPath),
		boolToInt(run.DryRun),
		run.TargetCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordResult appends a target outcome to a run.
func (s *Store) RecordResult(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (
            run_id, position, label, input_path, output_path,
            succeeded, follow_up, error_kind, diagnostics, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Position,
		entry.Label,
		entry.InputPath,
		nullableString(entry.OutputPath),
		boolToInt(entry.Succeeded),
		boolToInt(entry.FollowUp),
		nullableString(entry.ErrorKind),
		nullableString(entry.Diagnostics),
		entry.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// FinishRun stamps the completion time and failure count of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, failed int, finishedAt time.Time) error {
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, failed_count = ? WHERE id = ?`,
		formatTime(finishedAt), failed, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run: unknown run %q", runID)
	}
	return nil
}

// GetRun loads a run by ID. It returns nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, config_path, dry_run, target_count, failed_count FROM runs WHERE id = ?`,
		runID,
	)
	var (
		run        Run
		started    string
		finished   sql.NullString
		configPath sql.NullString
		dryRun     int
	)
	if err := row.Scan(&run.ID, &started, &finished, &configPath, &dryRun, &run.TargetCount, &run.FailedCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	run.ConfigPath = configPath.String
	run.DryRun = dryRun != 0
	return &run, nil
}

// RecentResults returns the newest results across runs, newest run first and
// target order within a run.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryEntries(ctx,
		`SELECT r.run_id, runs.started_at, r.position, r.label, r.input_path, r.output_path,
                r.succeeded, r.follow_up, r.error_kind, r.diagnostics, r.duration_ms
           FROM results r JOIN runs ON runs.id = r.run_id
          ORDER BY runs.started_at DESC, r.position ASC
          LIMIT ?`,
		limit,
	)
}

// RunResults returns every result of one run in target order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]Entry, error) {
	return s.queryEntries(ctx,
		`SELECT r.run_id, runs.started_at, r.position, r.label, r.input_path, r.output_path,
                r.succeeded, r.follow_up, r.error_kind, r.diagnostics, r.duration_ms
           FROM results r JOIN runs ON runs.id = r.run_id
          WHERE r.run_id = ?
          ORDER BY r.position ASC`,
		runID,
	)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			started     string
			outputPath  sql.NullString
			succeeded   int
			followUp    int
			errorKind   sql.NullString
			diagnostics sql.NullString
			durationMS  int64
		)
		if err := rows.Scan(&e.RunID, &started, &e.Position, &e.Label, &e.InputPath, &outputPath,
			&succeeded, &followUp, &errorKind, &diagnostics, &durationMS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		e.RunStarted = parseTime(started)
		e.OutputPath = outputPath.String
		e.Succeeded = succeeded != 0
		e.FollowUp = followUp != 0
		e.ErrorKind = errorKind.String
		e.Diagnostics = diagnostics.String
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return entries, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

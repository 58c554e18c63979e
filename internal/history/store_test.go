package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"tvconvert/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRecordsRunsAndResults(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := store.BeginRun(ctx, history.Run{ID: "run-1", StartedAt: started, ConfigPath: "/cfg.toml", TargetCount: 2}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	entries := []history.Entry{
		{RunID: "run-1", Position: 1, Label: "A (2000)", InputPath: "/in/a.mkv", OutputPath: "/out/ready/A (2000).mkv", Succeeded: true, Duration: 1500 * time.Millisecond},
		{RunID: "run-1", Position: 2, Label: "B", InputPath: "/in/b.mkv", ErrorKind: "engine", Diagnostics: "boom", FollowUp: true},
	}
	for _, e := range entries {
		if err := store.RecordResult(ctx, e); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}
	if err := store.FinishRun(ctx, "run-1", 1, started.Add(time.Minute)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := store.GetRun(ctx, "run-1")
	if err != nil || run == nil {
		t.Fatalf("GetRun: %v %v", run, err)
	}
	if run.FailedCount != 1 || run.TargetCount != 2 || !run.FinishedAt.Equal(started.Add(time.Minute)) || run.ConfigPath != "/cfg.toml" {
		t.Fatalf("unexpected run: %+v", run)
	}

	got, err := store.RunResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Duration != 1500*time.Millisecond || got[0].Status() != "converted" || !got[0].RunStarted.Equal(started) {
		t.Fatalf("unexpected first result: %+v", got[0])
	}
	if got[1].Succeeded || got[1].ErrorKind != "engine" || got[1].Diagnostics != "boom" || got[1].Status() != "failed" {
		t.Fatalf("unexpected second result: %+v", got[1])
	}
}

func TestRecentResultsOrdersNewestRunFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		if err := store.BeginRun(ctx, history.Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		for pos := 1; pos <= 2; pos++ {
			if err := store.RecordResult(ctx, history.Entry{RunID: id, Position: pos, Label: id, InputPath: "/in", Succeeded: true}); err != nil {
				t.Fatalf("RecordResult: %v", err)
			}
		}
	}

	recent, err := store.RecentResults(ctx, 3)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	if recent[0].RunID != "new" || recent[0].Position != 1 || recent[1].Position != 2 || recent[2].RunID != "old" {
		t.Fatalf("unexpected ordering: %+v", recent)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := openStore(t)
	if err := store.FinishRun(context.Background(), "missing", 0, time.Time{}); err == nil {
		t.Fatal("expected error for unknown run")
	}
	run, err := store.GetRun(context.Background(), "missing")
	if err != nil || run != nil {
		t.Fatalf("expected nil run, got %+v %v", run, err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fileorg/internal/history"
	"fileorg/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []history.Run{
		{ID: "first", StartedAt: base, SourceRoot: "/src", DestinationRoot: "/dst", Success: true, Message: "operation completed successfully", FilesCopied: 3, ArchiveEntries: 3, ArchiveSize: 512, Duration: 1500 * time.Millisecond},
		{ID: "second", StartedAt: base.Add(500 * time.Millisecond), SourceRoot: "/src", DestinationRoot: "/dst", Message: "general error: boom"},
		{ID: "third", StartedAt: base.Add(time.Second), SourceRoot: "/other", DestinationRoot: "/dst", Success: true, Message: "operation completed successfully", CopyFailures: 1},
	}
	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s): %v", run.ID, err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "third" || recent[1].ID != "second" {
		t.Fatalf("unexpected recent runs %+v", recent)
	}
	if recent[1].Success || recent[1].Message != "general error: boom" {
		t.Fatalf("unexpected failed run %+v", recent[1])
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}

	got, ok, err := store.Get(ctx, "first")
	if err != nil || !ok {
		t.Fatalf("Get(first) = %v, %v", ok, err)
	}
	if !got.StartedAt.Equal(base) || got.FilesCopied != 3 || got.ArchiveSize != 512 || got.Duration != 1500*time.Millisecond || !got.Success {
		t.Fatalf("unexpected run %+v", got)
	}
}

func TestGetMissingRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	_, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected missing run")
	}
}

func TestRecordRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if err := store.Record(context.Background(), history.Run{}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestRecordReplacesSameID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if err := store.Record(ctx, history.Run{ID: "x", Message: "one"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, history.Run{ID: "x", Message: "two"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 || runs[0].Message != "two" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(context.Background(), history.Run{ID: "kept", Message: "m"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, ok, err := reopened.Get(context.Background(), "kept"); err != nil || !ok {
		t.Fatalf("expected kept run after reopen, ok=%v err=%v", ok, err)
	}
	if reopened.Path() != path {
		t.Fatalf("Path() = %q", reopened.Path())
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := history.SetSchemaVersionForTests(store, 99); err != nil {
		t.Fatalf("set version: %v", err)
	}
	store.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

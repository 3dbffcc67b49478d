package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one recorded organize run.
type Run struct {
	ID              string
	StartedAt       time.Time
	SourceRoot      string
	DestinationRoot string
	Success         bool
	Message         string
	FilesCopied     int
	FilesInPlace    int
	CopyFailures    int
	CollectFailures int
	ArchiveEntries  int
	ArchivePath     string
	ArchiveSize     int64
	Duration        time.Duration
}

// timeLayout has a fixed width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, started_at, source_root, destination_root, success, message,
	files_copied, files_in_place, copy_failures, collect_failures,
	archive_entries, archive_path, archive_size, duration_ms`

// Record inserts a run. Recording the same ID twice replaces the earlier row.
func (s *Store) Record(ctx context.Context, run Run) error {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		return fmt.Errorf("record run: missing id")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.StartedAt.UTC().Format(timeLayout),
			run.SourceRoot,
			run.DestinationRoot,
			boolToInt(run.Success),
			run.Message,
			run.FilesCopied,
			run.FilesInPlace,
			run.CopyFailures,
			run.CollectFailures,
			run.ArchiveEntries,
			run.ArchivePath,
			run.ArchiveSize,
			run.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit runs, newest first. A non-positive limit returns
// every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID. The boolean is false when no run matches.
func (s *Store) Get(ctx context.Context, id string) (Run, bool, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return run, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		startedAt  string
		success    int
		durationMS int64
	)
	err := sc.Scan(
		&run.ID,
		&startedAt,
		&run.SourceRoot,
		&run.DestinationRoot,
		&success,
		&run.Message,
		&run.FilesCopied,
		&run.FilesInPlace,
		&run.CopyFailures,
		&run.CollectFailures,
		&run.ArchiveEntries,
		&run.ArchivePath,
		&run.ArchiveSize,
		&durationMS,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if ts, parseErr := time.Parse(timeLayout, startedAt); parseErr == nil {
		run.StartedAt = ts
	}
	run.Success = success != 0
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

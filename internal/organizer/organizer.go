package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fileorg/internal/archive"
	"fileorg/internal/category"
	"fileorg/internal/failures"
	"fileorg/internal/fileutil"
	"fileorg/internal/logging"
)

const (
	// FinalFolderName is the folder created under the destination root.
	FinalFolderName = "final_folder"
	// ArchiveName is the zip written next to the final folder.
	ArchiveName = FinalFolderName + ".zip"

	// SuccessMessage is the outcome message of a successful run.
	SuccessMessage = "operation completed successfully"
	// FailurePrefix starts the outcome message of a failed run.
	FailurePrefix = "general error: "
)

// Request names the two directories a run works on.
type Request struct {
	SourceRoot      string
	DestinationRoot string
}

// Organizer runs organize requests against an immutable category table.
type Organizer struct {
	table  category.Table
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New constructs an organizer. An empty table falls back to category.Default.
func New(table category.Table, logger *slog.Logger) *Organizer {
	if table.Len() == 0 {
		table = category.Default()
	}
	return &Organizer{
		table:  table,
		logger: logging.NewComponentLogger(logger, "organizer"),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Table returns the category table used by the organizer.
func (o *Organizer) Table() category.Table {
	return o.table
}

// Run executes a full run synchronously. Every event is passed to sink (which
// may be nil) and the final outcome event is always the last one delivered.
func (o *Organizer) Run(ctx context.Context, req Request, sink Sink) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run{
		org:     o,
		sink:    sink,
		runID:   o.newID(),
		started: o.now(),
	}
	r.ctx = logging.WithRunID(ctx, r.runID)

	err := r.execute(req)
	return r.finish(err)
}

// run holds the state of one execution.
type run struct {
	org     *Organizer
	ctx     context.Context
	sink    Sink
	runID   string
	started time.Time
	seq     int
	summary Summary
}

func (r *run) execute(req Request) error {
	req, err := validateRequest(req)
	if err != nil {
		return err
	}
	r.log(StepValidate).Debug("request validated",
		logging.String("source", req.SourceRoot),
		logging.String("destination", req.DestinationRoot),
	)

	if err := r.prepare(req.SourceRoot); err != nil {
		return err
	}
	if err := r.categorize(req.SourceRoot); err != nil {
		return err
	}
	finalDir := filepath.Join(req.DestinationRoot, FinalFolderName)
	if err := r.finalize(finalDir); err != nil {
		return err
	}
	r.collect(req.SourceRoot, finalDir)
	return r.compress(finalDir, filepath.Join(req.DestinationRoot, ArchiveName))
}

func (r *run) prepare(src string) error {
	for _, name := range r.org.table.Names() {
		dir := filepath.Join(src, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failures.Wrap(failures.ErrFilesystem, string(StepPrepare), "create category folder", dir, err)
		}
		r.summary.CategoriesPrepared++
		r.emit(Event{Step: StepPrepare, Category: name, Message: "created category folder " + name})
	}
	return nil
}

func (r *run) categorize(src string) error {
	logger := r.log(StepCategorize)
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !isFile(path, d) {
			return nil
		}
		name, ok := r.org.table.Match(d.Name())
		if !ok {
			return nil
		}
		rel := relative(src, path)
		target := filepath.Join(src, name, d.Name())

		switch err := fileutil.CopyFilePreserve(path, target); {
		case errors.Is(err, fileutil.ErrSameFile):
			r.summary.FilesInPlace++
			r.emit(Event{Step: StepCategorize, Category: name, File: path, Message: "already categorized " + rel})
		case err != nil:
			r.summary.CopyFailures++
			logger.Warn("copy failed",
				logging.String(logging.FieldFile, path),
				logging.String(logging.FieldCategory, name),
				logging.Error(err),
			)
			r.emit(Event{Step: StepCategorize, Category: name, File: path, Err: err, Message: fmt.Sprintf("failed to copy %s: %v", rel, err)})
		default:
			r.summary.FilesCopied++
			r.emit(Event{Step: StepCategorize, Category: name, File: path, Message: "copied " + rel})
		}
		return nil
	})
	if walkErr != nil {
		return failures.Wrap(failures.ErrFilesystem, string(StepCategorize), "walk source", "", walkErr)
	}
	return nil
}

func (r *run) finalize(finalDir string) error {
	if err := os.MkdirAll(finalDir, 0o755); err != nil {
		return failures.Wrap(failures.ErrFilesystem, string(StepFinalize), "create final folder", finalDir, err)
	}
	r.emit(Event{Step: StepFinalize, File: finalDir, Message: "created final folder"})
	return nil
}

func (r *run) collect(src, finalDir string) {
	logger := r.log(StepCollect)
	for _, name := range r.org.table.Names() {
		from := filepath.Join(src, name)
		to := filepath.Join(finalDir, name)
		if err := fileutil.CopyTree(from, to); err != nil {
			r.summary.CollectFailures++
			logger.Warn("collect failed", logging.String(logging.FieldCategory, name), logging.Error(err))
			r.emit(Event{Step: StepCollect, Category: name, File: to, Err: err, Message: fmt.Sprintf("failed to collect category %s: %v", name, err)})
			continue
		}
		r.summary.CategoriesCollected++
		r.emit(Event{Step: StepCollect, Category: name, File: to, Message: "collected category " + name})
	}
}

func (r *run) compress(finalDir, archivePath string) error {
	result, err := archive.ZipDirectory(finalDir, archivePath, func(name string, _ int64) {
		r.summary.ArchiveEntries++
		r.emit(Event{Step: StepCompress, Category: topLevel(name), File: name, Message: "compressed " + name})
	})
	if err != nil {
		return failures.Wrap(failures.ErrArchive, string(StepCompress), "create archive", archivePath, err)
	}
	r.summary.ArchivePath = result.Path
	r.summary.ArchiveSize = result.Size
	r.log(StepCompress).Debug("archive written",
		logging.String(logging.FieldFile, result.Path),
		logging.Int("entries", result.Entries),
		logging.Int64("size_bytes", result.Size),
	)
	return nil
}

func (r *run) finish(err error) Outcome {
	r.summary.Duration = r.org.now().Sub(r.started)
	outcome := Outcome{Success: err == nil, RunID: r.runID, Summary: r.summary, Err: err}
	logger := r.log(StepOutcome)
	if err != nil {
		outcome.Message = FailurePrefix + err.Error()
		logger.Error("run failed", logging.Error(err))
	} else {
		outcome.Message = SuccessMessage
		logger.Info("run completed",
			logging.Int("files_copied", r.summary.FilesCopied),
			logging.Int("copy_failures", r.summary.CopyFailures),
			logging.Int("archive_entries", r.summary.ArchiveEntries),
			logging.Duration("duration", r.summary.Duration),
		)
	}
	r.emit(Event{Kind: KindOutcome, Step: StepOutcome, Message: outcome.Message, Err: err, Success: outcome.Success})
	return outcome
}

func (r *run) emit(e Event) {
	r.seq++
	e.Seq = r.seq
	e.Time = r.org.now()
	if e.Kind == "" {
		e.Kind = KindProgress
	}
	r.log(e.Step).Debug(e.Message)
	if r.sink != nil {
		r.sink.Emit(e)
	}
}

func (r *run) log(step Step) *slog.Logger {
	return logging.WithContext(logging.WithStep(r.ctx, string(step)), r.org.logger)
}

// isFile reports whether the walk entry is a regular file, following symlinks.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// topLevel returns the first segment of a slash separated archive entry name.
func topLevel(name string) string {
	if dir, _, ok := strings.Cut(name, "/"); ok {
		return dir
	}
	return ""
}

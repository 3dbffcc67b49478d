package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fileorg/internal/config"
	"fileorg/internal/failures"
	"fileorg/internal/history"
	"fileorg/internal/logging"
	"fileorg/internal/organizer"
	"fileorg/internal/preflight"
	"fileorg/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputMode string
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "run SOURCE DEST",
		Short: "Categorize SOURCE and archive the result into DEST",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			mode := cfg.Output.Mode
			if cmd.Flags().Changed("output") {
				mode = strings.ToLower(strings.TrimSpace(outputMode))
				if !config.ValidOutputMode(mode) {
					return failures.Wrap(failures.ErrConfiguration, "run", "output", fmt.Sprintf("unsupported output mode %q", outputMode), nil)
				}
			}

			req, err := resolveRequest(args[0], args[1])
			if err != nil {
				return err
			}
			table := ctx.categoryTable()
			if layout := preflight.CheckLayout(table, req.SourceRoot, req.DestinationRoot); !layout.Passed {
				return failures.Wrap(failures.ErrValidation, "validate", "check layout", layout.Detail, nil)
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("failed to release run lock", logging.Error(err))
				}
			}()

			out := cmd.OutOrStdout()
			rep, err := newReporter(mode, out, colorEnabled(cfg.Output.Color, out))
			if err != nil {
				return err
			}

			started := time.Now()
			job := organizer.New(table, logger).Start(cmd.Context(), req)
			for e := range job.Events() {
				rep.Event(e)
			}
			outcome := job.Wait()
			rep.Finish(outcome)

			if showSummary && mode != config.OutputJSON {
				fmt.Fprintln(out, renderSummary(outcome))
			}
			if cfg.History.Enabled {
				if err := recordHistory(cmd.Context(), cfg, req, started, outcome); err != nil {
					logger.Warn("failed to record run history", logging.Error(err))
				}
			}

			if !outcome.Success {
				return runFailure(outcome, logger)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "", "Progress output: text, json or bar (default from config)")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print a summary table after the run")
	return cmd
}

func resolveRequest(src, dst string) (organizer.Request, error) {
	source, err := config.ExpandPath(strings.TrimSpace(src))
	if err != nil {
		return organizer.Request{}, fmt.Errorf("resolve source: %w", err)
	}
	destination, err := config.ExpandPath(strings.TrimSpace(dst))
	if err != nil {
		return organizer.Request{}, fmt.Errorf("resolve destination: %w", err)
	}
	return organizer.Request{SourceRoot: source, DestinationRoot: destination}, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, req organizer.Request, started time.Time, outcome organizer.Outcome) error {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	s := outcome.Summary
	return store.Record(ctx, history.Run{
		ID:              outcome.RunID,
		StartedAt:       started,
		SourceRoot:      req.SourceRoot,
		DestinationRoot: req.DestinationRoot,
		Success:         outcome.Success,
		Message:         outcome.Message,
		FilesCopied:     s.FilesCopied,
		FilesInPlace:    s.FilesInPlace,
		CopyFailures:    s.CopyFailures,
		CollectFailures: s.CollectFailures,
		ArchiveEntries:  s.ArchiveEntries,
		ArchivePath:     s.ArchivePath,
		ArchiveSize:     s.ArchiveSize,
		Duration:        s.Duration,
	})
}

func runFailure(outcome organizer.Outcome, logger *slog.Logger) error {
	err := outcome.Err
	if err == nil {
		err = errors.New(outcome.Message)
	}
	hint := failures.Hint(err)
	logger.Debug("run failed", logging.String(logging.FieldRunID, outcome.RunID), logging.String("hint", hint))
	if hint == "" {
		return fmt.Errorf("run failed: %w", err)
	}
	return fmt.Errorf("run failed: %w (hint: %s)", err, hint)
}

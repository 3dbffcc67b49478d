package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fileorg/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			path := cfg.HistoryPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if !cfg.History.Enabled {
					fmt.Fprintln(out, "Run history is disabled; set [history] enabled = true in the config to record runs")
				} else {
					fmt.Fprintln(out, "No runs recorded yet")
				}
				return nil
			}

			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.Limit
			}
			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Result", "Copied", "Failures", "Entries", "Archive", "Source", "Destination"},
				historyRows(runs),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of runs to show (default from config)")
	return cmd
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		result := "ok"
		if !r.Success {
			result = "failed"
		}
		rows = append(rows, []string{
			humanize.Time(r.StartedAt),
			result,
			strconv.Itoa(r.FilesCopied),
			strconv.Itoa(r.CopyFailures + r.CollectFailures),
			strconv.Itoa(r.ArchiveEntries),
			humanize.Bytes(uint64(r.ArchiveSize)),
			r.SourceRoot,
			r.DestinationRoot,
		})
	}
	return rows
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fileorg/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check SOURCE DEST",
		Short: "Check that SOURCE and DEST are usable for a run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := resolveRequest(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := colorEnabled(cfg.Output.Color, out)
			results := preflight.RunAll(cfg, ctx.categoryTable(), req.SourceRoot, req.DestinationRoot)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}

			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results)+1)
	failed := 0
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
			failed++
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	summary := renderStatusLine("Summary", statusOK, fmt.Sprintf("%d checks passed", len(results)), colorize)
	if failed > 0 {
		summary = renderStatusLine("Summary", statusError, fmt.Sprintf("%d of %d checks failed", failed, len(results)), colorize)
	}
	return append(lines, summary)
}

package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fileorg/internal/archive"
	"fileorg/internal/config"
)

func newInspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "inspect ARCHIVE",
		Short:       "List the entries of an archive produced by run",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve archive path: %w", err)
			}
			entries, err := archive.List(path)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}

			var total, compressed uint64
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				total += e.Size
				compressed += e.CompressedSize
				rows = append(rows, []string{
					e.Name,
					humanize.Bytes(e.Size),
					humanize.Bytes(e.CompressedSize),
					e.MethodName(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTableSpec(tableSpec{
				Title:   path,
				Headers: []string{"Entry", "Size", "Compressed", "Method"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				Footer:  []string{strconv.Itoa(len(entries)) + " entries", humanize.Bytes(total), humanize.Bytes(compressed), ""},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fileorg/internal/category"
)

type categoryView struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Extensions []string `json:"extensions"`
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "categories",
		Short:       "Show the extension to category table",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := ctx.categoryTable().Categories()
			if asJSON {
				views := make([]categoryView, 0, len(cats))
				for _, c := range cats {
					views = append(views, categoryView{Name: c.Name, Label: category.Label(c.Name), Extensions: c.Extensions})
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{category.Label(c.Name), c.Name, strings.Join(c.Extensions, " ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Category", "Folder", "Extensions"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

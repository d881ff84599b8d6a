package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPagesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List configured pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(cmd, root)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runPages(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(cfg.Pages) == 0 {
		fmt.Fprintln(out, "No pages configured.")
		return nil
	}
	fmt.Fprintln(out, "Configured Pages:")
	for i := range cfg.Pages {
		page := &cfg.Pages[i]
		title := page.Title
		if title == "" {
			title = "Untitled"
		}
		id := page.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(out, "  %-30s [%-15s] %d rows\n", title, id, countRows(page.Layout))
	}
	return nil
}

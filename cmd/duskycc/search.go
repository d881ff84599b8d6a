package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duskydesk/duskycc/internal/config"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search settings by title and description",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("a search query is required")
			}
			return runSearch(cmd, args, root)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runSearch(cmd *cobra.Command, args []string, root *rootOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	results, truncated := cfg.Search(query, config.SearchMaxResults)

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found")
		return nil
	}
	fmt.Fprintf(out, "Results for '%s':\n", strings.ToLower(strings.TrimSpace(query)))
	for i := range results {
		p := results[i].Properties
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "  %-35s %s\n", title, p.Description)
	}
	if truncated {
		fmt.Fprintf(out, "Showing first %d results...\n", config.SearchMaxResults)
	}
	return nil
}

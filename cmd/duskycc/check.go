package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rows := 0
	for _, page := range cfg.Pages {
		rows += countRows(page.Layout)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK: %d pages, %d rows\n", len(cfg.Pages), rows)
	return nil
}

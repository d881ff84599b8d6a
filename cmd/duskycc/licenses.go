package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskydesk/duskycc/internal/licenses"
)

func newLicensesCmd() *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "Show third-party license notices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLicenses(cmd, project)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&project, "project", false, "Print this project's license instead")
	return cmd
}

func runLicenses(cmd *cobra.Command, project bool) error {
	text := licenses.NoticesText()
	if project {
		text = licenses.LicenseText()
	}
	if text == "" {
		return fmt.Errorf("embedded license text is empty")
	}
	_, err := cmd.OutOrStdout().Write([]byte(text))
	return err
}

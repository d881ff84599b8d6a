package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type runOptions struct {
	terminal bool
	title    string
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] -- <command...>",
		Short: "Launch a command through the session wrapper",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("a command is required")
			}
			return runRun(cmd, args, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&opts.terminal, "terminal", false, "Run the command in a held terminal window")
	cmd.Flags().StringVar(&opts.title, "title", "Dusky", "Terminal window title")
	return cmd
}

// runRun launches and reports only whether the process started; exit
// status and output are never collected.
func runRun(cmd *cobra.Command, args []string, opts *runOptions) error {
	cmdline := strings.Join(args, " ")
	if err := launchCommand(cmdline, opts.title, opts.terminal); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Launched: %s\n", cmdline)
	return nil
}

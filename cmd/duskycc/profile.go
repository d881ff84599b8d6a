package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskydesk/duskycc/internal/settings"
)

type profileOptions struct {
	dir string
}

func (o *profileOptions) resolveDir() string {
	if o.dir != "" {
		return o.dir
	}
	return settings.DefaultProfileDir()
}

func newProfileCmd() *cobra.Command {
	opts := &profileOptions{}
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Export, import, and manage settings profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(cmd, opts)
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(groupUsageTemplate)
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Profile directory (default: user config dir)")

	cmd.AddCommand(
		newProfileExportCmd(opts),
		newProfileImportCmd(opts),
		newProfileListCmd(opts),
		newProfileDeleteCmd(opts),
	)
	return cmd
}

func newProfileExportCmd(opts *profileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Snapshot the current settings into a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.NewStore("")
			path, err := store.ExportProfile(opts.resolveDir(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported profile %q to %s\n", args[0], path)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newProfileImportCmd(opts *profileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Apply a saved profile to the settings store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.NewStore("")
			profile, err := store.ImportProfile(opts.resolveDir(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied profile %q (%d settings)\n", profile.Name, len(profile.Settings))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newProfileListCmd(opts *profileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(cmd, opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newProfileDeleteCmd(opts *profileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.DeleteProfile(opts.resolveDir(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runProfileList(cmd *cobra.Command, opts *profileOptions) error {
	names, err := settings.ListProfiles(opts.resolveDir())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No profiles found.")
		return nil
	}
	fmt.Fprintln(out, "Saved Profiles:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/prompt"
	"github.com/duskydesk/duskycc/internal/settings"
)

var confirmer = prompt.DefaultConfirmer()

type repairOptions struct {
	prune bool
	yes   bool
}

func newRepairCmd(root *rootOptions) *cobra.Command {
	opts := repairOptions{}
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Find settings no config row references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, root, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&opts.prune, "prune", false, "Remove the orphaned settings")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "Skip the removal confirmation prompt")
	return cmd
}

func runRepair(cmd *cobra.Command, root *rootOptions, opts *repairOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	store := settings.NewStore("")
	keys, err := store.Keys()
	if err != nil {
		return err
	}

	referenced := referencedKeys(cfg)
	var orphans []string
	for _, key := range keys {
		if !referenced[key] {
			orphans = append(orphans, key)
		}
	}

	out := cmd.OutOrStdout()
	if len(orphans) == 0 {
		fmt.Fprintln(out, "No orphaned settings found.")
		return nil
	}

	fmt.Fprintf(out, "Orphaned settings in %s:\n", store.Dir())
	for _, key := range orphans {
		value, _ := store.Raw(key)
		fmt.Fprintf(out, "  %-30s %s\n", key, value)
	}
	if !opts.prune {
		fmt.Fprintf(out, "%d orphaned settings found. Run again with --prune to remove them.\n", len(orphans))
		return nil
	}

	ok, err := confirmer.Confirm(fmt.Sprintf("Remove %d orphaned settings?", len(orphans)), opts.yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	ctx, stop := signalContext()
	defer stop()
	removed := 0
	for _, key := range orphans {
		if ctx.Err() != nil {
			logger.Warn("Prune canceled", "removed", removed, "remaining", len(orphans)-removed)
			break
		}
		if err := store.Delete(key); err != nil {
			return err
		}
		removed++
	}
	fmt.Fprintf(out, "Removed %d orphaned settings.\n", removed)
	return nil
}

// referencedKeys collects every settings key the configuration binds to
// a row, descending into navigation subtrees and expander children.
func referencedKeys(cfg *config.Config) map[string]bool {
	keys := make(map[string]bool)
	var walkSections func(sections []config.Section)
	var walkItems func(items []config.Item)
	walkSections = func(sections []config.Section) {
		for _, section := range sections {
			walkItems(section.Items)
		}
	}
	walkItems = func(items []config.Item) {
		for i := range items {
			item := &items[i]
			if item.Properties.Key != "" {
				keys[item.Properties.Key] = true
			}
			walkSections(item.Layout)
			walkItems(item.Items)
		}
	}
	for _, page := range cfg.Pages {
		walkSections(page.Layout)
	}
	return keys
}

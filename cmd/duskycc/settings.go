package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duskydesk/duskycc/internal/settings"
)

type getOptions struct {
	defValue string
	valType  string
	inverse  bool
}

func newGetCmd() *cobra.Command {
	opts := getOptions{}
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.defValue, "default", "", "Value to print when the key is missing")
	cmd.Flags().StringVar(&opts.valType, "type", "string", "Value type: bool, int, float, or string")
	cmd.Flags().BoolVar(&opts.inverse, "inverse", false, "Negate a boolean value on load")
	return cmd
}

func runGet(cmd *cobra.Command, key string, opts *getOptions) error {
	store := settings.NewStore("")
	out := cmd.OutOrStdout()

	switch strings.ToLower(opts.valType) {
	case "bool":
		def := false
		if opts.defValue != "" {
			parsed, err := strconv.ParseBool(opts.defValue)
			if err != nil {
				return fmt.Errorf("invalid bool default %q", opts.defValue)
			}
			def = parsed
		}
		fmt.Fprintln(out, strconv.FormatBool(store.LoadBool(key, def, opts.inverse)))
	case "int":
		def := 0
		if opts.defValue != "" {
			parsed, err := strconv.Atoi(opts.defValue)
			if err != nil {
				return fmt.Errorf("invalid int default %q", opts.defValue)
			}
			def = parsed
		}
		fmt.Fprintln(out, store.LoadInt(key, def))
	case "float":
		def := 0.0
		if opts.defValue != "" {
			parsed, err := strconv.ParseFloat(opts.defValue, 64)
			if err != nil {
				return fmt.Errorf("invalid float default %q", opts.defValue)
			}
			def = parsed
		}
		fmt.Fprintln(out, strconv.FormatFloat(store.LoadFloat(key, def), 'f', -1, 64))
	case "string":
		if opts.inverse {
			return fmt.Errorf("--inverse only applies to --type bool")
		}
		fmt.Fprintln(out, store.LoadString(key, opts.defValue))
	default:
		return fmt.Errorf("invalid type %q; must be bool, int, float, or string", opts.valType)
	}
	return nil
}

func newSetCmd() *cobra.Command {
	var asInt bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1], asInt)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&asInt, "as-int", false, "Render booleans as 1/0 instead of true/false")
	return cmd
}

// runSet infers the value type from its shape: boolean literals first,
// then integers, then floats; everything else is stored as a string.
func runSet(cmd *cobra.Command, key, value string, asInt bool) error {
	store := settings.NewStore("")

	var err error
	switch {
	case strings.EqualFold(value, "true"), strings.EqualFold(value, "false"):
		err = store.SaveBool(key, strings.EqualFold(value, "true"), asInt)
	case isIntLiteral(value):
		var n int
		n, err = strconv.Atoi(value)
		if err == nil {
			err = store.SaveInt(key, n)
		}
	case isFloatLiteral(value):
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil {
			err = store.SaveFloat(key, f)
		}
	default:
		err = store.SaveString(key, value)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", key)
	return nil
}

func isIntLiteral(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFloatLiteral(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a stored setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.NewStore("")
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the settings store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsList(cmd)
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	list := &cobra.Command{
		Use:   "list",
		Short: "List every stored key and value (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsList(cmd)
		},
		SilenceUsage: true,
	}
	list.SetUsageTemplate(subcommandUsageTemplate)

	cmd.AddCommand(list)
	return cmd
}

func runSettingsList(cmd *cobra.Command) error {
	store := settings.NewStore("")
	keys, err := store.Keys()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintln(out, "No settings stored.")
		return nil
	}
	fmt.Fprintf(out, "Settings in %s:\n", store.Dir())
	for _, key := range keys {
		value, _ := store.Raw(key)
		fmt.Fprintf(out, "  %-30s %s\n", key, value)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secret values in the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	cmd.AddCommand(
		newSecretSetCmd(),
		newSecretStatusCmd(),
		newSecretDeleteCmd(),
	)
	return cmd
}

func newSecretSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Save a secret to the keyring (prompt only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSecretSet(cmd, args[0])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSecretStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <key>",
		Short: "Show whether a secret exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSecretStatus(cmd, args[0])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSecretDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a secret from the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSecretDelete(cmd, args[0])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runSecretSet(cmd *cobra.Command, key string) error {
	if !isTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("secret set requires an interactive terminal")
	}
	value, err := promptForSecret(fmt.Sprintf("Value for %s: ", key))
	if err != nil {
		return fmt.Errorf("error reading secret: %w", err)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("a non-empty value is required")
	}
	if err := saveSecret(key, value); err != nil {
		return fmt.Errorf("error saving secret: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved secret %s to keyring.\n", key)
	return nil
}

func runSecretStatus(cmd *cobra.Command, key string) error {
	if hasSecret(key) {
		fmt.Fprintf(cmd.OutOrStdout(), "Secret %s: Found (keyring)\n", key)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Secret %s: Not Found\n", key)
	return nil
}

func runSecretDelete(cmd *cobra.Command, key string) error {
	if err := deleteSecret(key); err != nil {
		return fmt.Errorf("error deleting secret: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted secret %s from keyring.\n", key)
	return nil
}

// Package commands wires configuration, storage and services into the expense_bot CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "expense_bot",
		Short:   "Chat bot for personal and shared expense tracking",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newBalancesCommand(),
		newTokenCommand(),
		newSecretCommand(),
	)

	return rootCmd
}

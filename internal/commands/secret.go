package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/expense_bot/internal/utils"
)

func newSecretCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random value for WEBHOOK_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := utils.GenerateSecureRandomString(size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "bytes", 24, "number of random bytes before hex encoding")
	return cmd
}

package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/expense_bot/internal/platform/config"
	"github.com/SscSPs/expense_bot/internal/utils"
)

func newTokenCommand() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an admin API token for a chat user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiryDuration
			}

			token, err := utils.GenerateJWT(userID, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	return cmd
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/core/services"
	"github.com/SscSPs/expense_bot/internal/events"
	"github.com/SscSPs/expense_bot/internal/platform/config"
	"github.com/SscSPs/expense_bot/internal/utils"
)

func newBalancesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <user-id>",
		Short: "Print the net shared balances of a chat user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger(cfg)

			repos, closeRepos, err := openRepositories(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepos()

			container, err := services.NewServiceContainer(cfg, repos, events.NoopPublisher{})
			if err != nil {
				return err
			}

			net, err := container.SharedExpense.CalculateBalances(cmd.Context(), userID)
			if errors.Is(err, apperrors.ErrEmptyResult) {
				fmt.Fprintln(cmd.OutOrStdout(), "No balances to show.")
				return nil
			}
			if err != nil {
				return err
			}
			printBalances(cmd.OutOrStdout(), net, cfg.CurrencySymbol)
			return nil
		},
	}
}

func printBalances(w io.Writer, net domain.NetBalance, currency string) {
	for _, b := range net.Balances() {
		switch {
		case b.Amount.IsPositive():
			fmt.Fprintf(w, "%-20s gets %s\n", b.Person, utils.FormatMoney(currency, b.Amount))
		case b.Amount.IsNegative():
			fmt.Fprintf(w, "%-20s owes %s\n", b.Person, utils.FormatMoney(currency, b.Amount.Abs()))
		default:
			fmt.Fprintf(w, "%-20s settled\n", b.Person)
		}
	}
}

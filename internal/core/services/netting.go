package services

import (
	"fmt"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// NetBalances reduces a user's ledger entries to one signed balance per person.
// Each entry moves its effective amount from payee to payer; no transitive debt
// simplification is done. People appear in the order they are first seen in entries.
func NetBalances(entries []domain.SharedLedgerEntry) (domain.NetBalance, error) {
	if len(entries) == 0 {
		return domain.NetBalance{}, fmt.Errorf("%w: no shared entries to settle", apperrors.ErrEmptyResult)
	}

	net := domain.NewNetBalance()
	for _, e := range entries {
		amount := e.EffectiveAmount()
		net.Add(e.Payer, amount)
		net.Add(e.Payee, amount.Neg())
	}
	return net, nil
}

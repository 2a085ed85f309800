package services

import (
	"fmt"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitStrategy expands a proposal into ledger entry drafts for one split mode.
type SplitStrategy interface {
	Mode() domain.SplitMode
	ShareFor(total decimal.Decimal, payees int) decimal.Decimal
}

type equalSplitStrategy struct{}

func (equalSplitStrategy) Mode() domain.SplitMode { return domain.EqualSplit }

// ShareFor divides the total evenly. The remainder of a non-terminating division is not
// redistributed, so shares may sum to a sub-cent less than the total.
func (equalSplitStrategy) ShareFor(total decimal.Decimal, payees int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(payees)))
}

type fullOweStrategy struct{}

func (fullOweStrategy) Mode() domain.SplitMode { return domain.FullOwe }

func (fullOweStrategy) ShareFor(total decimal.Decimal, _ int) decimal.Decimal {
	return total
}

var splitStrategies = map[domain.SplitMode]SplitStrategy{
	domain.EqualSplit: equalSplitStrategy{},
	domain.FullOwe:    fullOweStrategy{},
}

// ToLedgerEntries expands a proposal into one entry draft per payee, in payee order.
// UserID, EntryID and CreatedAt are left for the caller to stamp at write time.
func ToLedgerEntries(p domain.SharedExpenseProposal, mode domain.SplitMode) ([]domain.SharedLedgerEntry, error) {
	strategy, ok := splitStrategies[mode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown split mode %q", apperrors.ErrValidation, mode)
	}
	if len(p.Payees) == 0 {
		return nil, fmt.Errorf("%w: proposal has no payees", apperrors.ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: proposal amount must be positive", apperrors.ErrValidation)
	}

	share := strategy.ShareFor(p.Amount, len(p.Payees))
	entries := make([]domain.SharedLedgerEntry, 0, len(p.Payees))
	for _, payee := range p.Payees {
		entries = append(entries, domain.SharedLedgerEntry{
			Payer:       p.Payer,
			Payee:       payee,
			Description: p.Description,
			Amount:      share,
			Split:       strategy.Mode() == domain.EqualSplit,
		})
	}
	return entries, nil
}

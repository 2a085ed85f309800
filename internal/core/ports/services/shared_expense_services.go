package services

import (
	"context"

	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// SharedExpenseProposerSvc turns command arguments into proposals.
type SharedExpenseProposerSvc interface {
	// ProposeSharedExpense parses /shared arguments into a proposal without persisting anything.
	ProposeSharedExpense(ctx context.Context, args []string) (domain.SharedExpenseProposal, error)
}

// SharedExpenseWriterSvc defines write operations on the shared ledger.
type SharedExpenseWriterSvc interface {
	// RecordSharedExpense converts the proposal with mode and appends one entry per payee.
	RecordSharedExpense(ctx context.Context, userID int64, proposal domain.SharedExpenseProposal, mode domain.SplitMode) ([]domain.SharedLedgerEntry, error)

	// ClearSharedExpenses deletes every entry recorded by userID.
	ClearSharedExpenses(ctx context.Context, userID int64) (int64, error)
}

// SharedExpenseReaderSvc defines read operations on the shared ledger.
type SharedExpenseReaderSvc interface {
	// ListSharedHistory returns the user's entries newest first.
	ListSharedHistory(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error)

	// CalculateBalances nets the user's entries into per-person balances.
	CalculateBalances(ctx context.Context, userID int64) (domain.NetBalance, error)
}

// SharedExpenseSvcFacade combines all shared expense service interfaces.
type SharedExpenseSvcFacade interface {
	SharedExpenseProposerSvc
	SharedExpenseWriterSvc
	SharedExpenseReaderSvc
}

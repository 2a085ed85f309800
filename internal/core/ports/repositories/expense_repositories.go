package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// ExpenseReader defines read operations for personal expenses.
type ExpenseReader interface {
	// ListExpensesSince returns the user's expenses created at or after since, oldest first.
	ListExpensesSince(ctx context.Context, userID int64, since time.Time) ([]domain.PersonalExpense, error)

	// SumExpensesByCategorySince returns per-category totals, largest first.
	SumExpensesByCategorySince(ctx context.Context, userID int64, since time.Time) ([]domain.CategoryTotal, error)
}

// ExpenseWriter defines write operations for personal expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.PersonalExpense) error
}

// ExpenseRepositoryFacade combines all personal expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

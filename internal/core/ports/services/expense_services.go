package services

import (
	"context"

	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// ExpenseWriterSvc defines write operations for personal expenses.
type ExpenseWriterSvc interface {
	// AddExpense parses /add arguments and records the expense.
	AddExpense(ctx context.Context, userID int64, args []string) (*domain.PersonalExpense, error)
}

// ExpenseReaderSvc defines reporting operations for personal expenses.
type ExpenseReaderSvc interface {
	// ListRecentExpenses returns the user's expenses of the last days days, oldest first.
	ListRecentExpenses(ctx context.Context, userID int64, days int) ([]domain.PersonalExpense, error)

	// MonthlyCategoryTotals returns per-category totals since the start of the current month.
	MonthlyCategoryTotals(ctx context.Context, userID int64) ([]domain.CategoryTotal, error)
}

// ExpenseSvcFacade combines all personal expense service interfaces.
type ExpenseSvcFacade interface {
	ExpenseWriterSvc
	ExpenseReaderSvc
}

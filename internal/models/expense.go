package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persisted form of a personal expense.
type Expense struct {
	ExpenseID string          `db:"expense_id"`
	UserID    int64           `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	Category  string          `db:"category"`
	CreatedAt time.Time       `db:"created_at"`
}

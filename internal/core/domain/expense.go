package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is used when /add is given no category.
const DefaultCategory = "misc"

// PersonalExpense is a single expense recorded by one chat user for themselves.
type PersonalExpense struct {
	ExpenseID string          `json:"expenseID"`
	UserID    int64           `json:"userID" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Category  string          `json:"category" validate:"required"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CategoryTotal is the summed amount of a category over a period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// SharedEntryResponse defines the data returned for a shared ledger entry.
type SharedEntryResponse struct {
	EntryID     string          `json:"entryID"`
	Payer       string          `json:"payer"`
	Payee       string          `json:"payee"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Split       bool            `json:"split"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListSharedEntriesQuery binds the page size and cursor of the shared history listing.
type ListSharedEntriesQuery struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListSharedEntriesResponse wraps shared entries, newest first.
type ListSharedEntriesResponse struct {
	Entries   []SharedEntryResponse `json:"entries"`
	NextToken string                `json:"nextToken,omitempty"`
}

// BalanceResponse is one person's net position. Positive means they are owed.
type BalanceResponse struct {
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

type BalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
	Message  string            `json:"message,omitempty"`
}

type ClearSharedEntriesResponse struct {
	Removed int64 `json:"removed"`
}

// ListExpensesQuery binds the look-back window of the expenses report.
type ListExpensesQuery struct {
	Days int `form:"days,default=7" binding:"min=1,max=366"`
}

type ExpenseResponse struct {
	ExpenseID string          `json:"expenseID"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ListExpensesResponse struct {
	Days     int               `json:"days"`
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total" swaggertype:"string"`
}

type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total" swaggertype:"string"`
}

type MonthlyTotalsResponse struct {
	Categories []CategoryTotalResponse `json:"categories"`
	Total      decimal.Decimal         `json:"total" swaggertype:"string"`
}

// ToListSharedEntriesResponse converts domain entries to the response DTO
func ToListSharedEntriesResponse(entries []domain.SharedLedgerEntry, nextToken string) ListSharedEntriesResponse {
	res := ListSharedEntriesResponse{Entries: make([]SharedEntryResponse, len(entries)), NextToken: nextToken}
	for i, e := range entries {
		res.Entries[i] = SharedEntryResponse{
			EntryID:     e.EntryID,
			Payer:       e.Payer,
			Payee:       e.Payee,
			Description: e.Description,
			Amount:      e.Amount,
			Split:       e.Split,
			CreatedAt:   e.CreatedAt,
		}
	}
	return res
}

// ToBalancesResponse converts a NetBalance, keeping first-seen order
func ToBalancesResponse(net domain.NetBalance) BalancesResponse {
	balances := net.Balances()
	res := BalancesResponse{Balances: make([]BalanceResponse, len(balances))}
	for i, b := range balances {
		res.Balances[i] = BalanceResponse{Person: b.Person, Amount: b.Amount}
	}
	return res
}

func ToListExpensesResponse(days int, expenses []domain.PersonalExpense) ListExpensesResponse {
	res := ListExpensesResponse{Days: days, Expenses: make([]ExpenseResponse, len(expenses)), Total: decimal.Zero}
	for i, e := range expenses {
		res.Expenses[i] = ExpenseResponse{ExpenseID: e.ExpenseID, Amount: e.Amount, Category: e.Category, CreatedAt: e.CreatedAt}
		res.Total = res.Total.Add(e.Amount)
	}
	return res
}

func ToMonthlyTotalsResponse(totals []domain.CategoryTotal) MonthlyTotalsResponse {
	res := MonthlyTotalsResponse{Categories: make([]CategoryTotalResponse, len(totals)), Total: decimal.Zero}
	for i, t := range totals {
		res.Categories[i] = CategoryTotalResponse{Category: t.Category, Total: t.Total}
		res.Total = res.Total.Add(t.Total)
	}
	return res
}

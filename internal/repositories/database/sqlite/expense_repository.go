package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/SscSPs/expense_bot/internal/models"
	"github.com/SscSPs/expense_bot/internal/utils/mapping"
)

// ExpenseRepository persists personal expenses.
type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.PersonalExpense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (expense_id, user_id, amount, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ExpenseID, m.UserID, m.Amount.String(), m.Category, formatTime(m.CreatedAt))
	if err != nil {
		return apperrors.StoreError("failed to save expense", err)
	}
	return nil
}

func (r *ExpenseRepository) ListExpensesSince(ctx context.Context, userID int64, since time.Time) ([]domain.PersonalExpense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT expense_id, user_id, amount, category, created_at
		FROM expenses
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at, rowid`, userID, formatTime(since))
	if err != nil {
		return nil, apperrors.StoreError("failed to query expenses", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		var m models.Expense
		var createdAt string
		if err := rows.Scan(&m.ExpenseID, &m.UserID, &m.Amount, &m.Category, &createdAt); err != nil {
			return nil, apperrors.StoreError("failed to scan expense", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, apperrors.StoreError("failed to parse expense timestamp", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError("error iterating expenses", err)
	}
	return mapping.ToDomainExpenseSlice(result), nil
}

// SumExpensesByCategorySince totals in Go since SQLite would sum the text amounts as floats.
func (r *ExpenseRepository) SumExpensesByCategorySince(ctx context.Context, userID int64, since time.Time) ([]domain.CategoryTotal, error) {
	expenses, err := r.ListExpensesSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var totals []domain.CategoryTotal
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, domain.CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

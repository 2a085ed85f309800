package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/SscSPs/expense_bot/internal/models"
	"github.com/SscSPs/expense_bot/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for personal expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.PersonalExpense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (expense_id, user_id, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.ExpenseID, m.UserID, m.Amount, m.Category, m.CreatedAt); err != nil {
		return apperrors.StoreError("failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) ListExpensesSince(ctx context.Context, userID int64, since time.Time) ([]domain.PersonalExpense, error) {
	query := `
		SELECT expense_id, user_id, amount, category, created_at
		FROM expenses
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, apperrors.StoreError("failed to query expenses", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(&m.ExpenseID, &m.UserID, &m.Amount, &m.Category, &m.CreatedAt); err != nil {
			return nil, apperrors.StoreError("failed to scan expense", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError("error iterating expenses", err)
	}
	return mapping.ToDomainExpenseSlice(result), nil
}

func (r *PgxExpenseRepository) SumExpensesByCategorySince(ctx context.Context, userID int64, since time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) AS total
		FROM expenses
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY category
		ORDER BY total DESC, category;
	`
	rows, err := r.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, apperrors.StoreError("failed to sum expenses by category", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, apperrors.StoreError("failed to scan category total", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError("error iterating category totals", err)
	}
	return totals, nil
}

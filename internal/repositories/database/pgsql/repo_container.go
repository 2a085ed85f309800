package pgsql

import (
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SharedLedgerRepo: newPgxSharedLedgerRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
	}
}

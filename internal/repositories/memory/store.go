// Package memory holds process-local repositories used by tests and the memory backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
)

// SharedLedgerRepository keeps shared ledger entries in memory.
type SharedLedgerRepository struct {
	mu      sync.RWMutex
	entries []domain.SharedLedgerEntry
	seq     int64
}

// NewSharedLedgerRepository creates an empty in-memory shared ledger.
func NewSharedLedgerRepository() *SharedLedgerRepository {
	return &SharedLedgerRepository{}
}

var _ portsrepo.SharedLedgerRepositoryFacade = (*SharedLedgerRepository)(nil)

// AppendSharedEntries appends all entries under one lock, numbering them in order.
func (r *SharedLedgerRepository) AppendSharedEntries(_ context.Context, entries []domain.SharedLedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.seq++
		e.Seq = r.seq
		r.entries = append(r.entries, e)
	}
	return nil
}

// ListSharedEntries returns a copy of the user's entries in insertion order.
func (r *SharedLedgerRepository) ListSharedEntries(_ context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.SharedLedgerEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClearSharedEntries removes the user's entries and leaves everyone else's untouched.
func (r *SharedLedgerRepository) ClearSharedEntries(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var removed int64
	for _, e := range r.entries {
		if e.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

// ExpenseRepository keeps personal expenses in memory.
type ExpenseRepository struct {
	mu       sync.RWMutex
	expenses []domain.PersonalExpense
}

// NewExpenseRepository creates an empty in-memory expense store.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func (r *ExpenseRepository) SaveExpense(_ context.Context, expense domain.PersonalExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses = append(r.expenses, expense)
	return nil
}

// ListExpensesSince returns the user's expenses created at or after since, oldest first.
func (r *ExpenseRepository) ListExpensesSince(_ context.Context, userID int64, since time.Time) ([]domain.PersonalExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.PersonalExpense
	for _, e := range r.expenses {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SumExpensesByCategorySince totals the user's expenses per category, largest first.
func (r *ExpenseRepository) SumExpensesByCategorySince(ctx context.Context, userID int64, since time.Time) ([]domain.CategoryTotal, error) {
	expenses, _ := r.ListExpensesSince(ctx, userID, since)

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

// NewRepositoryProvider wires fresh in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SharedLedgerRepo: NewSharedLedgerRepository(),
		ExpenseRepo:      NewExpenseRepository(),
	}
}

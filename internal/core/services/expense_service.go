package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/events"
)

// expenseService records and reports personal (non-shared) expenses.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	parser      *CommandParser
}

// ExpenseOption configures an expenseService.
type ExpenseOption func(*expenseService)

// WithExpenseEventPublisher sets the publisher notified of new expenses.
func WithExpenseEventPublisher(p events.Publisher) ExpenseOption {
	return func(s *expenseService) {
		s.Publisher = p
	}
}

// WithExpenseClock overrides the clock used for timestamps and report periods.
func WithExpenseClock(now func() time.Time) ExpenseOption {
	return func(s *expenseService) {
		s.Now = now
	}
}

// NewExpenseService creates a new personal expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, opts ...ExpenseOption) portssvc.ExpenseSvcFacade {
	s := &expenseService{
		BaseService: BaseService{Publisher: events.NoopPublisher{}},
		expenseRepo: expenseRepo,
		parser:      NewCommandParser(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// AddExpense parses /add arguments and saves the expense. Malformed input writes nothing.
func (s *expenseService) AddExpense(ctx context.Context, userID int64, args []string) (*domain.PersonalExpense, error) {
	amount, category, err := s.parser.ParseAddCommand(args)
	if err != nil {
		return nil, err
	}

	expense := domain.PersonalExpense{
		ExpenseID: uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		CreatedAt: s.CurrentTime(),
	}
	if err := validateRecord(expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.Int64("user_id", userID))
		return nil, wrapStoreError("failed to save expense", err)
	}

	s.LogInfo(ctx, "Expense added", slog.Int64("user_id", userID), slog.String("category", category))
	s.PublishEvent(ctx, events.NewEvent(events.PersonalExpenseAdded, userID, 1, amount))
	return &expense, nil
}

// ListRecentExpenses returns expenses of the last days days, oldest first.
func (s *expenseService) ListRecentExpenses(ctx context.Context, userID int64, days int) ([]domain.PersonalExpense, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrValidation)
	}
	since := s.CurrentTime().Add(-time.Duration(days) * 24 * time.Hour)

	expenses, err := s.expenseRepo.ListExpensesSince(ctx, userID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.Int64("user_id", userID), slog.Int("days", days))
		return nil, wrapStoreError("failed to list expenses", err)
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("%w: no expenses in last %d day(s)", apperrors.ErrEmptyResult, days)
	}
	return expenses, nil
}

// MonthlyCategoryTotals returns category totals since the first day of the current UTC month.
func (s *expenseService) MonthlyCategoryTotals(ctx context.Context, userID int64) ([]domain.CategoryTotal, error) {
	now := s.CurrentTime()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals, err := s.expenseRepo.SumExpensesByCategorySince(ctx, userID, start)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum monthly expenses", slog.Int64("user_id", userID))
		return nil, wrapStoreError("failed to summarize expenses", err)
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no expenses for the current month", apperrors.ErrEmptyResult)
	}
	return totals, nil
}

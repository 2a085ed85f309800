package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/events"
)

// sharedExpenseService drives the shared ledger: proposing, recording, netting and clearing.
type sharedExpenseService struct {
	BaseService
	ledgerRepo portsrepo.SharedLedgerRepositoryFacade
	parser     *CommandParser
}

// SharedExpenseOption configures a sharedExpenseService.
type SharedExpenseOption func(*sharedExpenseService)

// WithPayeePolicy sets the policy used to split descriptions from payees.
func WithPayeePolicy(policy PayeePolicy) SharedExpenseOption {
	return func(s *sharedExpenseService) {
		s.parser = NewCommandParser(policy)
	}
}

// WithSharedEventPublisher sets the publisher notified of ledger changes.
func WithSharedEventPublisher(p events.Publisher) SharedExpenseOption {
	return func(s *sharedExpenseService) {
		s.Publisher = p
	}
}

// WithSharedClock overrides the clock used to stamp entries.
func WithSharedClock(now func() time.Time) SharedExpenseOption {
	return func(s *sharedExpenseService) {
		s.Now = now
	}
}

// NewSharedExpenseService creates a new shared expense service.
func NewSharedExpenseService(ledgerRepo portsrepo.SharedLedgerRepositoryFacade, opts ...SharedExpenseOption) portssvc.SharedExpenseSvcFacade {
	s := &sharedExpenseService{
		BaseService: BaseService{Publisher: events.NoopPublisher{}},
		ledgerRepo:  ledgerRepo,
		parser:      NewCommandParser(DelimitedPayees{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SharedExpenseSvcFacade = (*sharedExpenseService)(nil)

// ProposeSharedExpense parses /shared arguments. Nothing is written.
func (s *sharedExpenseService) ProposeSharedExpense(ctx context.Context, args []string) (domain.SharedExpenseProposal, error) {
	proposal, err := s.parser.ParseSharedCommand(args)
	if err != nil {
		s.LogDebug(ctx, "Rejected shared expense command", slog.String("error", err.Error()), slog.String("policy", s.parser.Policy().Name()))
		return domain.SharedExpenseProposal{}, err
	}
	return proposal, nil
}

// RecordSharedExpense converts the proposal and appends one entry per payee.
func (s *sharedExpenseService) RecordSharedExpense(ctx context.Context, userID int64, proposal domain.SharedExpenseProposal, mode domain.SplitMode) ([]domain.SharedLedgerEntry, error) {
	entries, err := ToLedgerEntries(proposal, mode)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	for i := range entries {
		entries[i].EntryID = uuid.NewString()
		entries[i].UserID = userID
		entries[i].CreatedAt = now
		if err := validateRecord(entries[i]); err != nil {
			return nil, err
		}
	}

	if err := s.ledgerRepo.AppendSharedEntries(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to append shared entries", slog.Int64("user_id", userID), slog.Int("entries", len(entries)))
		return nil, wrapStoreError("failed to record shared expense", err)
	}

	s.LogInfo(ctx, "Shared expense recorded",
		slog.Int64("user_id", userID),
		slog.String("mode", string(mode)),
		slog.Int("entries", len(entries)))
	s.PublishEvent(ctx, events.NewEvent(events.SharedExpenseRecorded, userID, int64(len(entries)), sumAmounts(entries)))

	return entries, nil
}

// ClearSharedExpenses deletes every entry recorded by userID.
func (s *sharedExpenseService) ClearSharedExpenses(ctx context.Context, userID int64) (int64, error) {
	removed, err := s.ledgerRepo.ClearSharedEntries(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear shared entries", slog.Int64("user_id", userID))
		return 0, wrapStoreError("failed to clear shared expenses", err)
	}

	s.LogInfo(ctx, "Shared expenses cleared", slog.Int64("user_id", userID), slog.Int64("removed", removed))
	s.PublishEvent(ctx, events.NewEvent(events.SharedExpensesCleared, userID, removed, decimal.Zero))
	return removed, nil
}

// ListSharedHistory returns the user's entries newest first, ties broken by descending entry ID.
func (s *sharedExpenseService) ListSharedHistory(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	entries, err := s.listEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no shared expenses for user %d", apperrors.ErrEmptyResult, userID)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].OlderThan(entries[i])
	})
	return entries, nil
}

// CalculateBalances nets the user's entries, scanning them oldest first.
// The read is not transactional; a concurrent append may or may not be included.
func (s *sharedExpenseService) CalculateBalances(ctx context.Context, userID int64) (domain.NetBalance, error) {
	entries, err := s.listEntries(ctx, userID)
	if err != nil {
		return domain.NetBalance{}, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OlderThan(entries[j])
	})
	return NetBalances(entries)
}

func (s *sharedExpenseService) listEntries(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	entries, err := s.ledgerRepo.ListSharedEntries(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shared entries", slog.Int64("user_id", userID))
		return nil, wrapStoreError("failed to list shared expenses", err)
	}
	return entries, nil
}

func sumAmounts(entries []domain.SharedLedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

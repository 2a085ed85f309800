package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/core/services"
	"github.com/SscSPs/expense_bot/internal/events"
)

// --- Mock SharedLedgerRepository ---
type MockSharedLedgerRepository struct {
	mock.Mock
}

func (m *MockSharedLedgerRepository) AppendSharedEntries(ctx context.Context, entries []domain.SharedLedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockSharedLedgerRepository) ClearSharedEntries(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSharedLedgerRepository) ListSharedEntries(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharedLedgerEntry), args.Error(1)
}

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// --- Test Suite ---
type SharedExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockSharedLedgerRepository
	mockPublisher *MockPublisher
	now           time.Time
	service       portssvc.SharedExpenseSvcFacade
}

func (suite *SharedExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSharedLedgerRepository)
	suite.mockPublisher = new(MockPublisher)
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewSharedExpenseService(
		suite.mockRepo,
		services.WithSharedEventPublisher(suite.mockPublisher),
		services.WithSharedClock(func() time.Time { return suite.now }),
	)
}

func (suite *SharedExpenseServiceTestSuite) TestProposeSharedExpense_UsesDelimitedPolicyByDefault() {
	p, err := suite.service.ProposeSharedExpense(context.Background(), []string{"90", "jai", "lunch", "raj,", "swaraj"})

	suite.Require().NoError(err)
	suite.Equal([]string{"raj", "swaraj"}, p.Payees)
	suite.Equal("lunch", p.Description)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendSharedEntries", mock.Anything, mock.Anything)
}

func (suite *SharedExpenseServiceTestSuite) TestProposeSharedExpense_LegacyPolicy() {
	svc := services.NewSharedExpenseService(suite.mockRepo, services.WithPayeePolicy(services.LegacyTrailingPayee{}))

	p, err := svc.ProposeSharedExpense(context.Background(), []string{"90", "jai", "lunch", "raj,", "swaraj"})

	suite.Require().NoError(err)
	suite.Equal([]string{"swaraj"}, p.Payees)
	suite.Equal("lunch raj,", p.Description)
}

func (suite *SharedExpenseServiceTestSuite) TestRecordSharedExpense_StampsAndAppends() {
	ctx := context.Background()
	p := domain.SharedExpenseProposal{Amount: decimal.NewFromInt(90), Payer: "jai", Description: "lunch", Payees: []string{"raj", "swaraj"}}

	suite.mockRepo.On("AppendSharedEntries", ctx, mock.MatchedBy(func(entries []domain.SharedLedgerEntry) bool {
		if len(entries) != 2 {
			return false
		}
		for _, e := range entries {
			if e.UserID != 42 || e.EntryID == "" || !e.CreatedAt.Equal(suite.now) || !e.Amount.Equal(decimal.NewFromInt(45)) {
				return false
			}
		}
		return entries[0].EntryID != entries[1].EntryID
	})).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.SharedExpenseRecorded && e.UserID == 42 && e.Entries == 2 && e.Total.Equal(decimal.NewFromInt(90))
	})).Return(nil).Once()

	entries, err := suite.service.RecordSharedExpense(ctx, 42, p, domain.EqualSplit)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *SharedExpenseServiceTestSuite) TestRecordSharedExpense_StoreFailure() {
	ctx := context.Background()
	p := domain.SharedExpenseProposal{Amount: decimal.NewFromInt(10), Payer: "jai", Payees: []string{"raj"}}

	suite.mockRepo.On("AppendSharedEntries", ctx, mock.Anything).Return(assert.AnError).Once()

	entries, err := suite.service.RecordSharedExpense(ctx, 42, p, domain.FullOwe)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
	suite.ErrorIs(err, assert.AnError)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *SharedExpenseServiceTestSuite) TestRecordSharedExpense_PublishFailureIsIgnored() {
	ctx := context.Background()
	p := domain.SharedExpenseProposal{Amount: decimal.NewFromInt(10), Payer: "jai", Payees: []string{"raj"}}

	suite.mockRepo.On("AppendSharedEntries", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.Anything).Return(assert.AnError).Once()

	entries, err := suite.service.RecordSharedExpense(ctx, 42, p, domain.FullOwe)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *SharedExpenseServiceTestSuite) TestRecordSharedExpense_RejectsBadSplitMode() {
	p := domain.SharedExpenseProposal{Amount: decimal.NewFromInt(10), Payer: "jai", Payees: []string{"raj"}}

	_, err := suite.service.RecordSharedExpense(context.Background(), 42, p, domain.SplitMode("bogus"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendSharedEntries", mock.Anything, mock.Anything)
}

func (suite *SharedExpenseServiceTestSuite) TestListSharedHistory_NewestFirst() {
	ctx := context.Background()
	older := domain.SharedLedgerEntry{Payer: "jai", Payee: "raj", Amount: decimal.NewFromInt(1), CreatedAt: suite.now.Add(-time.Hour)}
	newer := domain.SharedLedgerEntry{Payer: "jai", Payee: "amy", Amount: decimal.NewFromInt(2), CreatedAt: suite.now}
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return([]domain.SharedLedgerEntry{older, newer}, nil).Once()

	entries, err := suite.service.ListSharedHistory(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal("amy", entries[0].Payee)
	suite.Equal("raj", entries[1].Payee)
}

func (suite *SharedExpenseServiceTestSuite) TestListSharedHistory_SameTimestampUsesSeq() {
	ctx := context.Background()
	first := domain.SharedLedgerEntry{EntryID: "ffff", Payer: "jai", Payee: "raj", Amount: decimal.NewFromInt(1), CreatedAt: suite.now, Seq: 1}
	second := domain.SharedLedgerEntry{EntryID: "0000", Payer: "jai", Payee: "amy", Amount: decimal.NewFromInt(1), CreatedAt: suite.now, Seq: 2}
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return([]domain.SharedLedgerEntry{second, first}, nil).Once()

	entries, err := suite.service.ListSharedHistory(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal("amy", entries[0].Payee)
	suite.Equal("raj", entries[1].Payee)
}

func (suite *SharedExpenseServiceTestSuite) TestCalculateBalances_SameTimestampFollowsSeq() {
	ctx := context.Background()
	first := domain.SharedLedgerEntry{EntryID: "ffff", Payer: "jai", Payee: "raj", Amount: decimal.NewFromInt(3), CreatedAt: suite.now, Seq: 1}
	second := domain.SharedLedgerEntry{EntryID: "0000", Payer: "jai", Payee: "amy", Amount: decimal.NewFromInt(3), CreatedAt: suite.now, Seq: 2}
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return([]domain.SharedLedgerEntry{second, first}, nil).Once()

	net, err := suite.service.CalculateBalances(ctx, 42)

	suite.Require().NoError(err)
	balances := net.Balances()
	suite.Require().Len(balances, 3)
	suite.Equal("jai", balances[0].Person)
	suite.Equal("raj", balances[1].Person)
	suite.Equal("amy", balances[2].Person)
}

func (suite *SharedExpenseServiceTestSuite) TestListSharedHistory_Empty() {
	ctx := context.Background()
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return(nil, nil).Once()

	_, err := suite.service.ListSharedHistory(ctx, 42)

	suite.ErrorIs(err, apperrors.ErrEmptyResult)
}

func (suite *SharedExpenseServiceTestSuite) TestCalculateBalances_OrdersByCreation() {
	ctx := context.Background()
	later := domain.SharedLedgerEntry{Payer: "amy", Payee: "bob", Amount: decimal.NewFromInt(5), CreatedAt: suite.now}
	earlier := domain.SharedLedgerEntry{Payer: "jai", Payee: "raj", Amount: decimal.NewFromInt(8), CreatedAt: suite.now.Add(-time.Minute)}
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return([]domain.SharedLedgerEntry{later, earlier}, nil).Once()

	net, err := suite.service.CalculateBalances(ctx, 42)

	suite.Require().NoError(err)
	balances := net.Balances()
	suite.Require().Len(balances, 4)
	suite.Equal("jai", balances[0].Person)
	suite.Equal("raj", balances[1].Person)
	suite.Equal("amy", balances[2].Person)
}

func (suite *SharedExpenseServiceTestSuite) TestCalculateBalances_StoreFailure() {
	ctx := context.Background()
	suite.mockRepo.On("ListSharedEntries", ctx, int64(42)).Return(nil, assert.AnError).Once()

	_, err := suite.service.CalculateBalances(ctx, 42)

	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
}

func (suite *SharedExpenseServiceTestSuite) TestClearSharedExpenses() {
	ctx := context.Background()
	suite.mockRepo.On("ClearSharedEntries", ctx, int64(42)).Return(int64(3), nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.SharedExpensesCleared && e.Entries == 3
	})).Return(nil).Once()

	removed, err := suite.service.ClearSharedExpenses(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(int64(3), removed)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func TestSharedExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SharedExpenseServiceTestSuite))
}

package services

import (
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/events"
	"github.com/SscSPs/expense_bot/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) (*portssvc.ServiceContainer, error) {
	policy, err := PayeePolicyByName(cfg.PayeePolicy)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	container := &portssvc.ServiceContainer{}
	container.SharedExpense = NewSharedExpenseService(
		repos.SharedLedgerRepo,
		WithPayeePolicy(policy),
		WithSharedEventPublisher(publisher),
	)
	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		WithExpenseEventPublisher(publisher),
	)
	return container, nil
}

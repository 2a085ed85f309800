package services

// ServiceContainer holds all service interfaces used by the handlers.
type ServiceContainer struct {
	SharedExpense SharedExpenseSvcFacade
	Expense       ExpenseSvcFacade
}

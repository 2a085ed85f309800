package mapping

import (
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/models"
)

// ToModelExpense converts a domain PersonalExpense to a model Expense
func ToModelExpense(d domain.PersonalExpense) models.Expense {
	return models.Expense{
		ExpenseID: d.ExpenseID,
		UserID:    d.UserID,
		Amount:    d.Amount,
		Category:  d.Category,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainExpense converts a model Expense to a domain PersonalExpense
func ToDomainExpense(m models.Expense) domain.PersonalExpense {
	return domain.PersonalExpense{
		ExpenseID: m.ExpenseID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		Category:  m.Category,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// ToDomainExpenseSlice converts a slice of model expenses to domain expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.PersonalExpense {
	ds := make([]domain.PersonalExpense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

package domain

import "github.com/shopspring/decimal"

// PersonBalance is one person's signed running total.
// Positive means the person is owed money, negative means they owe.
type PersonBalance struct {
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount"`
}

// IsOwed reports whether the person is a net creditor.
func (b PersonBalance) IsOwed() bool {
	return b.Amount.IsPositive()
}

// NetBalance maps person names to balances, iterating in first-seen order.
type NetBalance struct {
	balances []PersonBalance
	index    map[string]int
}

// NewNetBalance creates an empty NetBalance.
func NewNetBalance() NetBalance {
	return NetBalance{index: make(map[string]int)}
}

// Add moves person's balance by delta, registering the person on first sight.
func (n *NetBalance) Add(person string, delta decimal.Decimal) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	i, ok := n.index[person]
	if !ok {
		n.index[person] = len(n.balances)
		n.balances = append(n.balances, PersonBalance{Person: person, Amount: delta})
		return
	}
	n.balances[i].Amount = n.balances[i].Amount.Add(delta)
}

// Get returns the balance of person.
func (n NetBalance) Get(person string) (decimal.Decimal, bool) {
	i, ok := n.index[person]
	if !ok {
		return decimal.Zero, false
	}
	return n.balances[i].Amount, true
}

// Len returns the number of people in the balance.
func (n NetBalance) Len() int {
	return len(n.balances)
}

// Balances returns a copy of the balances in first-seen order.
func (n NetBalance) Balances() []PersonBalance {
	out := make([]PersonBalance, len(n.balances))
	copy(out, n.balances)
	return out
}

package models

import "time"

// TransactionType is the kind of a transaction. It is serialized by name,
// never as a numeric code.
type TransactionType string

const (
	TypeExpense TransactionType = "Expense"
	TypeIncome  TransactionType = "Income"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Transaction is a single income or expense record belonging to one user.
// Amount is an integer count of minor currency units (cents, kopecks).
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}

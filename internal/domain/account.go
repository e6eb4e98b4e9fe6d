package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account holding a single mutable balance.
// Overdraft is allowed: no minimum-balance rule is enforced.
type Account struct {
	ID             string
	Name           string
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	Active         bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyDelta returns the balance after adding a signed delta
// (positive=credit, negative=debit).
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}

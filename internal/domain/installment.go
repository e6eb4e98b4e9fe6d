package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one dated, fixed-amount portion of a movement's total.
// AppliedDelta records the magnitude that was actually applied to account
// balances, so a reversal replays a known value instead of recomputing it.
type Installment struct {
	ID           string
	MovementID   string
	Sequence     int
	DueDate      time.Time
	Amount       decimal.Decimal
	Applied      bool
	AppliedDelta *decimal.Decimal
	AppliedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Due reports whether the installment is due on or before the given date.
func (i *Installment) Due(at time.Time) bool {
	return !i.DueDate.After(at)
}

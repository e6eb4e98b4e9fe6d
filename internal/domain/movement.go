package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind discriminates the supported money movements.
type MovementKind string

const (
	MovementKindTransfer   MovementKind = "transfer"
	MovementKindWithdrawal MovementKind = "withdrawal"
	MovementKindExpense    MovementKind = "expense"
	MovementKindReceivable MovementKind = "receivable"
)

// MovementStatus is the lifecycle state of a movement.
type MovementStatus string

const (
	MovementStatusDraft     MovementStatus = "draft"
	MovementStatusConfirmed MovementStatus = "confirmed"
	MovementStatusReversed  MovementStatus = "reversed"
)

// Movement is a single financial event that owns zero or more installments.
// The accounts it touches depend on the kind: a transfer debits the origin
// and credits the destination, a withdrawal or expense debits the origin,
// a receivable credits the destination.
type Movement struct {
	ID                   string
	Kind                 MovementKind
	Status               MovementStatus
	OriginAccountID      *string
	DestinationAccountID *string
	StakeholderID        *string
	Category             string
	Description          string
	SaleRef              *string
	Amount               decimal.Decimal
	EventDate            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AccountDelta is one signed balance effect on one account.
type AccountDelta struct {
	AccountID string
	Delta     decimal.Decimal
}

// Validate checks the movement's structural invariants for its kind.
func (m *Movement) Validate() error {
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch m.Kind {
	case MovementKindTransfer:
		if m.OriginAccountID == nil || m.DestinationAccountID == nil {
			return ErrMissingDestinationAccount
		}

		if *m.OriginAccountID == *m.DestinationAccountID {
			return ErrSameAccount
		}
	case MovementKindWithdrawal:
		if m.OriginAccountID == nil {
			return ErrMissingDestinationAccount
		}
	case MovementKindExpense, MovementKindReceivable:
		// Settlement account is optional until an installment falls due.
	}

	return nil
}

// SettlementAccounts returns the account IDs a settled installment touches.
// Empty for an expense or receivable that has no account assigned yet.
func (m *Movement) SettlementAccounts() []string {
	var ids []string

	switch m.Kind {
	case MovementKindTransfer:
		ids = append(ids, *m.OriginAccountID, *m.DestinationAccountID)
	case MovementKindWithdrawal, MovementKindExpense:
		if m.OriginAccountID != nil {
			ids = append(ids, *m.OriginAccountID)
		}
	case MovementKindReceivable:
		if m.DestinationAccountID != nil {
			ids = append(ids, *m.DestinationAccountID)
		}
	}

	return ids
}

// Effects returns the signed balance deltas produced by settling the given
// magnitude. The magnitude is the installment amount at apply time, or the
// stored applied delta at reverse time.
func (m *Movement) Effects(magnitude decimal.Decimal) []AccountDelta {
	var effects []AccountDelta

	switch m.Kind {
	case MovementKindTransfer:
		effects = append(effects,
			AccountDelta{AccountID: *m.OriginAccountID, Delta: magnitude.Neg()},
			AccountDelta{AccountID: *m.DestinationAccountID, Delta: magnitude},
		)
	case MovementKindWithdrawal, MovementKindExpense:
		if m.OriginAccountID != nil {
			effects = append(effects, AccountDelta{AccountID: *m.OriginAccountID, Delta: magnitude.Neg()})
		}
	case MovementKindReceivable:
		if m.DestinationAccountID != nil {
			effects = append(effects, AccountDelta{AccountID: *m.DestinationAccountID, Delta: magnitude})
		}
	}

	return effects
}

// CanSettle reports whether the movement has the accounts needed to settle
// an installment right now.
func (m *Movement) CanSettle() bool {
	return len(m.SettlementAccounts()) > 0
}

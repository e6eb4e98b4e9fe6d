package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		OpeningBalance: r.OpeningBalance,
	}
}

// ScheduleRequest describes how a movement total should be split into
// installments. Either a uniform schedule (count plus interval) or an
// explicit list of day offsets, in which case day_offsets wins.
type ScheduleRequest struct {
	Count              int   `json:"count,omitempty"`
	FirstDueOffsetDays int   `json:"first_due_offset_days,omitempty"`
	IntervalDays       int   `json:"interval_days,omitempty"`
	DayOffsets         []int `json:"day_offsets,omitempty"`
}

// ConfirmMovementRequest represents a request to confirm a movement.
type ConfirmMovementRequest struct {
	Kind                 string          `json:"kind"`
	OriginAccountID      *string         `json:"origin_account_id,omitempty"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	StakeholderID        *string         `json:"stakeholder_id,omitempty"`
	SaleRef              *string         `json:"sale_ref,omitempty"`
	Category             string          `json:"category,omitempty"`
	Description          string          `json:"description,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	EventDate            *time.Time      `json:"event_date,omitempty"`
	Schedule             ScheduleRequest `json:"schedule"`
}

// ToUseCaseInput converts to use case input.
func (r *ConfirmMovementRequest) ToUseCaseInput() usecase.ConfirmMovementInput {
	eventDate := time.Now().UTC()
	if r.EventDate != nil {
		eventDate = r.EventDate.UTC()
	}

	return usecase.ConfirmMovementInput{
		Kind:                 domain.MovementKind(r.Kind),
		OriginAccountID:      r.OriginAccountID,
		DestinationAccountID: r.DestinationAccountID,
		StakeholderID:        r.StakeholderID,
		SaleRef:              r.SaleRef,
		Category:             r.Category,
		Description:          r.Description,
		Amount:               r.Amount,
		EventDate:            eventDate,
		Schedule: usecase.SchedulePolicy{
			Count:              r.Schedule.Count,
			FirstDueOffsetDays: r.Schedule.FirstDueOffsetDays,
			IntervalDays:       r.Schedule.IntervalDays,
			DayOffsets:         r.Schedule.DayOffsets,
		},
	}
}

// SettleInstallmentRequest represents a request to settle one installment.
type SettleInstallmentRequest struct {
	AccountID *string `json:"account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleInstallmentRequest) ToUseCaseInput(movementID string, sequence int) usecase.SettleInstallmentInput {
	return usecase.SettleInstallmentInput{
		MovementID: movementID,
		Sequence:   sequence,
		AccountID:  r.AccountID,
	}
}

// SchedulePreviewRequest represents a request to preview an installment
// schedule without persisting anything.
type SchedulePreviewRequest struct {
	Total      decimal.Decimal `json:"total"`
	AnchorDate *time.Time      `json:"anchor_date,omitempty"`
	Schedule   ScheduleRequest `json:"schedule"`
}

// AllocationShareRequest is one stakeholder share in an allocation preview.
type AllocationShareRequest struct {
	StakeholderID string          `json:"stakeholder_id"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// AllocationPreviewRequest represents a request to preview a profit
// allocation across stakeholders.
type AllocationPreviewRequest struct {
	TotalRevenue decimal.Decimal          `json:"total_revenue"`
	TotalCost    decimal.Decimal          `json:"total_cost"`
	Shares       []AllocationShareRequest `json:"shares"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocationPreviewRequest) ToUseCaseInput() usecase.AllocateInput {
	shares := make([]domain.StakeholderShare, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = domain.StakeholderShare{
			StakeholderID: s.StakeholderID,
			Percentage:    s.Percentage,
		}
	}
	return usecase.AllocateInput{
		TotalRevenue: r.TotalRevenue,
		TotalCost:    r.TotalCost,
		Shares:       shares,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

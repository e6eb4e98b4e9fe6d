package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Active         bool            `json:"active"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		Active:         a.Active,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID                   string          `json:"id"`
	Kind                 string          `json:"kind"`
	Status               string          `json:"status"`
	OriginAccountID      *string         `json:"origin_account_id,omitempty"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	StakeholderID        *string         `json:"stakeholder_id,omitempty"`
	Category             string          `json:"category,omitempty"`
	Description          string          `json:"description,omitempty"`
	SaleRef              *string         `json:"sale_ref,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	EventDate            time.Time       `json:"event_date"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// MovementFromDomain converts domain movement to response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:                   m.ID,
		Kind:                 string(m.Kind),
		Status:               string(m.Status),
		OriginAccountID:      m.OriginAccountID,
		DestinationAccountID: m.DestinationAccountID,
		StakeholderID:        m.StakeholderID,
		Category:             m.Category,
		Description:          m.Description,
		SaleRef:              m.SaleRef,
		Amount:               m.Amount,
		EventDate:            m.EventDate,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID           string           `json:"id"`
	MovementID   string           `json:"movement_id"`
	Sequence     int              `json:"sequence"`
	DueDate      time.Time        `json:"due_date"`
	Amount       decimal.Decimal  `json:"amount"`
	Applied      bool             `json:"applied"`
	AppliedDelta *decimal.Decimal `json:"applied_delta,omitempty"`
	AppliedAt    *time.Time       `json:"applied_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// InstallmentFromDomain converts domain installment to response.
func InstallmentFromDomain(i *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:           i.ID,
		MovementID:   i.MovementID,
		Sequence:     i.Sequence,
		DueDate:      i.DueDate,
		Amount:       i.Amount,
		Applied:      i.Applied,
		AppliedDelta: i.AppliedDelta,
		AppliedAt:    i.AppliedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, inst := range installments {
		result[i] = InstallmentFromDomain(inst)
	}
	return result
}

// SchedulePreviewResponse represents a previewed installment schedule.
// Previewed installments carry no IDs because nothing is persisted.
type SchedulePreviewResponse struct {
	Installments []*SchedulePreviewItem `json:"installments"`
	Total        decimal.Decimal        `json:"total"`
}

// SchedulePreviewItem is one line of a schedule preview.
type SchedulePreviewItem struct {
	Sequence int             `json:"sequence"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
}

// SchedulePreviewFromDomain converts a generated schedule to a preview.
func SchedulePreviewFromDomain(installments []*domain.Installment, total decimal.Decimal) *SchedulePreviewResponse {
	items := make([]*SchedulePreviewItem, len(installments))
	for i, inst := range installments {
		items[i] = &SchedulePreviewItem{
			Sequence: inst.Sequence,
			DueDate:  inst.DueDate,
			Amount:   inst.Amount,
		}
	}
	return &SchedulePreviewResponse{Installments: items, Total: total}
}

// AllocationResultResponse is one stakeholder's share of an allocation.
type AllocationResultResponse struct {
	StakeholderID string          `json:"stakeholder_id"`
	Cost          decimal.Decimal `json:"cost"`
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`
}

// AllocationsFromDomain converts allocation results to responses.
func AllocationsFromDomain(results []domain.AllocationResult) []*AllocationResultResponse {
	out := make([]*AllocationResultResponse, len(results))
	for i, r := range results {
		out[i] = &AllocationResultResponse{
			StakeholderID: r.StakeholderID,
			Cost:          r.Cost,
			Revenue:       r.Revenue,
			Profit:        r.Profit,
			Margin:        r.Margin,
		}
	}
	return out
}

// ReconciliationResponse represents a single-account reconciliation result.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse represents a full reconciliation run.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromResult converts a report to a response.
func ReconciliationReportFromResult(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromResult(d)
	}
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

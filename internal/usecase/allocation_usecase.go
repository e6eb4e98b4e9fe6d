package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// AllocationUseCase distributes realized gains and losses across stakeholder
// shares. Allocation is pure: it is safe to call repeatedly for display
// purposes without mutating persisted state.
type AllocationUseCase struct{}

// NewAllocationUseCase creates a new AllocationUseCase.
func NewAllocationUseCase() *AllocationUseCase {
	return &AllocationUseCase{}
}

// AllocateInput represents input for a profit allocation.
type AllocateInput struct {
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	Shares       []domain.StakeholderShare
}

// Allocate computes per-stakeholder cost, revenue, profit and margin shares.
func (uc *AllocationUseCase) Allocate(input AllocateInput) ([]domain.AllocationResult, error) {
	if input.TotalRevenue.IsNegative() || input.TotalCost.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	return domain.AllocateProfit(input.TotalRevenue, input.TotalCost, input.Shares)
}

package domain

import (
	"github.com/shopspring/decimal"
)

// StakeholderShare is an ownership percentage used as an allocation weight.
// Percentages across stakeholders need not sum to 100: partial or unassigned
// ownership is permitted and is deliberately not normalized.
type StakeholderShare struct {
	StakeholderID string
	Percentage    decimal.Decimal
}

// AllocationResult is the per-stakeholder outcome of a profit allocation.
// It is a derived value, recomputed on demand and never persisted.
type AllocationResult struct {
	StakeholderID string
	Cost          decimal.Decimal
	Revenue       decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal
}

// AllocateProfit distributes revenue and cost across stakeholder shares.
// The canonical profit formulation is revenue share minus cost share, which
// keeps per-stakeholder revenue, cost and profit mutually consistent even
// when rounding makes it differ from profit*percentage by a minor unit.
func AllocateProfit(totalRevenue, totalCost decimal.Decimal, shares []StakeholderShare) ([]AllocationResult, error) {
	results := make([]AllocationResult, 0, len(shares))

	for _, share := range shares {
		if err := ValidatePercentage(share.Percentage); err != nil {
			return nil, err
		}

		revenue := Percent(totalRevenue, share.Percentage)
		cost := Percent(totalCost, share.Percentage)
		profit := revenue.Sub(cost)

		margin := decimal.Zero
		if cost.IsPositive() {
			margin = profit.Div(cost).Mul(decimal.NewFromInt(100)).Round(MinorUnitPlaces)
		}

		results = append(results, AllocationResult{
			StakeholderID: share.StakeholderID,
			Cost:          cost,
			Revenue:       revenue,
			Profit:        profit,
			Margin:        margin,
		})
	}

	return results, nil
}

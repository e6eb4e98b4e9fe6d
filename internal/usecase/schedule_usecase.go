package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// ScheduleUseCase produces dated installment schedules. Generation is pure:
// no persistence happens here, and a regenerated schedule always replaces
// the old one wholesale so the sum invariant cannot drift.
type ScheduleUseCase struct{}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase() *ScheduleUseCase {
	return &ScheduleUseCase{}
}

// GenerateScheduleInput represents input for a uniform-interval schedule.
type GenerateScheduleInput struct {
	Total              decimal.Decimal
	Count              int
	FirstDueOffsetDays int
	IntervalDays       int
	AnchorDate         time.Time
}

// Generate splits a total into Count dated installments. Installment i
// (0-based) is due at AnchorDate + FirstDueOffsetDays + i*IntervalDays.
// Every installment gets the same amount except the last, which absorbs the
// rounding remainder.
func (uc *ScheduleUseCase) Generate(input GenerateScheduleInput) ([]*domain.Installment, error) {
	if input.Count < 1 || input.Count > MaxInstallmentCount {
		return nil, domain.ErrInvalidScheduleParameters
	}

	if input.FirstDueOffsetDays < 0 || input.IntervalDays < 0 {
		return nil, domain.ErrInvalidScheduleParameters
	}

	offsets := make([]int, input.Count)
	for i := range offsets {
		offsets[i] = input.FirstDueOffsetDays + i*input.IntervalDays
	}

	return uc.generate(input.Total, offsets, input.AnchorDate)
}

// GenerateFromOffsetsInput represents input for an explicit-offsets schedule,
// used by configurable payment-condition templates (e.g. 0/30/60 days).
type GenerateFromOffsetsInput struct {
	Total      decimal.Decimal
	DayOffsets []int
	AnchorDate time.Time
}

// GenerateFromOffsets splits a total across caller-supplied day offsets.
// The amount-splitting rule is the same as Generate.
func (uc *ScheduleUseCase) GenerateFromOffsets(input GenerateFromOffsetsInput) ([]*domain.Installment, error) {
	if len(input.DayOffsets) < 1 || len(input.DayOffsets) > MaxInstallmentCount {
		return nil, domain.ErrInvalidScheduleParameters
	}

	for _, offset := range input.DayOffsets {
		if offset < 0 {
			return nil, domain.ErrInvalidScheduleParameters
		}
	}

	return uc.generate(input.Total, input.DayOffsets, input.AnchorDate)
}

func (uc *ScheduleUseCase) generate(total decimal.Decimal, offsets []int, anchor time.Time) ([]*domain.Installment, error) {
	amounts, err := domain.SplitEven(total, len(offsets))
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, len(offsets))
	for i, offset := range offsets {
		installments[i] = &domain.Installment{
			Sequence: i + 1,
			DueDate:  anchor.AddDate(0, 0, offset),
			Amount:   amounts[i],
		}
	}

	return installments, nil
}

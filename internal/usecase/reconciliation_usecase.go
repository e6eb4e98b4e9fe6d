package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// ReconciliationUseCase verifies that recorded account balances match the
// sum of applied installment deltas. A discrepancy means a balance was
// mutated outside the movement apply/reverse path, which the atomic
// transaction boundary should make impossible.
type ReconciliationUseCase struct {
	accountRepo     AccountRepository
	installmentRepo InstallmentRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(accountRepo AccountRepository, installmentRepo InstallmentRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:     accountRepo,
		installmentRepo: installmentRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileAccount recomputes an account balance from its opening balance
// plus all applied deltas and compares it with the recorded balance.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	appliedSum, err := uc.installmentRepo.SumAppliedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated := account.OpeningBalance.Add(appliedSum)
	difference := account.Balance.Sub(calculated)

	return &ReconciliationResult{
		AccountID:         accountID,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}

// CheckAccountConsistency reconciles one account and surfaces a discrepancy
// as ErrPartialApplicationDetected instead of silently reporting it.
func (uc *ReconciliationUseCase) CheckAccountConsistency(ctx context.Context, accountID string) error {
	result, err := uc.ReconcileAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if !result.IsReconciled {
		return fmt.Errorf(
			"%w: account %s recorded=%s calculated=%s",
			domain.ErrPartialApplicationDetected,
			accountID,
			result.RecordedBalance.String(),
			result.CalculatedBalance.String(),
		)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// GenerateReconciliationReport reconciles every account.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	limit, offset, _ := domain.ValidatePagination(10000, 0)
	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(accounts),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
		}

		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}

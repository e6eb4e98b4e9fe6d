package usecase

import (
	"context"

	"github.com/iho/dealerledger/internal/domain"
)

// InstallmentUseCase handles installment read operations.
type InstallmentUseCase struct {
	installmentRepo InstallmentRepository
}

// NewInstallmentUseCase creates a new InstallmentUseCase.
func NewInstallmentUseCase(installmentRepo InstallmentRepository) *InstallmentUseCase {
	return &InstallmentUseCase{
		installmentRepo: installmentRepo,
	}
}

// ListByMovement lists the installments of a movement in sequence order.
func (uc *InstallmentUseCase) ListByMovement(ctx context.Context, movementID string) ([]*domain.Installment, error) {
	return uc.installmentRepo.ListByMovement(ctx, movementID)
}

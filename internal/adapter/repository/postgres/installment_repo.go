package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/postgres/generated"
	"github.com/iho/dealerledger/internal/usecase"
)

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new installment within a transaction.
func (r *InstallmentRepository) Create(ctx context.Context, tx usecase.Transaction, installment *domain.Installment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	params := generated.CreateInstallmentParams{
		ID:         installment.ID,
		MovementID: installment.MovementID,
		Sequence:   int32(installment.Sequence),
		DueDate:    timeToPgTimestamptz(installment.DueDate),
		Amount:     decimalToNumeric(installment.Amount),
		Applied:    installment.Applied,
		CreatedAt:  timeToPgTimestamptz(installment.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(installment.UpdatedAt),
	}

	if installment.AppliedDelta != nil {
		params.AppliedDelta = decimalToNumeric(*installment.AppliedDelta)
	}

	if installment.AppliedAt != nil {
		params.AppliedAt = timeToPgTimestamptz(*installment.AppliedAt)
	}

	_, err := queries.CreateInstallment(ctx, params)

	return err
}

// ListByMovement lists installments for a movement ordered by sequence.
func (r *InstallmentRepository) ListByMovement(ctx context.Context, movementID string) ([]*domain.Installment, error) {
	rows, err := r.queries.ListInstallmentsByMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, 0, len(rows))
	for _, row := range rows {
		installments = append(installments, rowToInstallment(row))
	}

	return installments, nil
}

// ListByMovementForUpdate lists installments for a movement with FOR UPDATE locks.
func (r *InstallmentRepository) ListByMovementForUpdate(ctx context.Context, tx usecase.Transaction, movementID string) ([]*domain.Installment, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListInstallmentsByMovementForUpdate(ctx, movementID)
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, 0, len(rows))
	for _, row := range rows {
		installments = append(installments, rowToInstallment(row))
	}

	return installments, nil
}

// GetBySequenceForUpdate retrieves one installment by movement and sequence
// with a FOR UPDATE lock.
func (r *InstallmentRepository) GetBySequenceForUpdate(ctx context.Context, tx usecase.Transaction, movementID string, sequence int) (*domain.Installment, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetInstallmentBySequenceForUpdate(ctx, generated.GetInstallmentBySequenceForUpdateParams{
		MovementID: movementID,
		Sequence:   int32(sequence),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// MarkApplied records an installment application with the applied magnitude.
func (r *InstallmentRepository) MarkApplied(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, appliedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.MarkInstallmentApplied(ctx, generated.MarkInstallmentAppliedParams{
		ID:           id,
		AppliedDelta: decimalToNumeric(delta),
		AppliedAt:    timeToPgTimestamptz(appliedAt),
	})
}

// MarkUnapplied clears an installment application after reversal.
func (r *InstallmentRepository) MarkUnapplied(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.MarkInstallmentUnapplied(ctx, generated.MarkInstallmentUnappliedParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// SumAppliedByAccount sums the signed applied deltas touching an account.
func (r *InstallmentRepository) SumAppliedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumAppliedDeltasByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToInstallment(row generated.Installment) *domain.Installment {
	inst := &domain.Installment{
		ID:         row.ID,
		MovementID: row.MovementID,
		Sequence:   int(row.Sequence),
		DueDate:    row.DueDate.Time,
		Amount:     numericToDecimal(row.Amount),
		Applied:    row.Applied,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}

	if row.AppliedDelta.Valid {
		delta := numericToDecimal(row.AppliedDelta)
		inst.AppliedDelta = &delta
	}

	if row.AppliedAt.Valid {
		appliedAt := row.AppliedAt.Time
		inst.AppliedAt = &appliedAt
	}

	return inst
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/postgres/generated"
	"github.com/iho/dealerledger/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new movement within a transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateMovement(ctx, generated.CreateMovementParams{
		ID:                   movement.ID,
		Kind:                 string(movement.Kind),
		Status:               string(movement.Status),
		OriginAccountID:      stringPtrToPgText(movement.OriginAccountID),
		DestinationAccountID: stringPtrToPgText(movement.DestinationAccountID),
		StakeholderID:        stringPtrToPgText(movement.StakeholderID),
		SaleRef:              stringPtrToPgText(movement.SaleRef),
		Category:             movement.Category,
		Description:          movement.Description,
		Amount:               decimalToNumeric(movement.Amount),
		EventDate:            timeToPgTimestamptz(movement.EventDate),
		CreatedAt:            timeToPgTimestamptz(movement.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(movement.UpdatedAt),
	})

	return err
}

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	row, err := r.queries.GetMovementByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return rowToMovement(row), nil
}

// GetByIDForUpdate retrieves a movement by ID with a FOR UPDATE lock.
// Locking the movement row first serializes concurrent settle, reverse and
// edit operations on the same movement.
func (r *MovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Movement, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetMovementByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return rowToMovement(row), nil
}

// UpdateStatus updates the status of a movement.
func (r *MovementRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.MovementStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateMovementStatus(ctx, generated.UpdateMovementStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// SetSettlementAccount assigns the account a pending movement settles
// against. Receivables settle into a destination account, everything else
// settles out of an origin account.
func (r *MovementRepository) SetSettlementAccount(ctx context.Context, tx usecase.Transaction, id string, accountID string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetMovementByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMovementNotFound
		}

		return err
	}

	account := stringPtrToPgText(&accountID)

	if domain.MovementKind(row.Kind) == domain.MovementKindReceivable {
		return queries.SetMovementDestinationAccount(ctx, generated.SetMovementDestinationAccountParams{
			ID:                   id,
			DestinationAccountID: account,
			UpdatedAt:            timeToPgTimestamptz(updatedAt),
		})
	}

	return queries.SetMovementOriginAccount(ctx, generated.SetMovementOriginAccountParams{
		ID:              id,
		OriginAccountID: account,
		UpdatedAt:       timeToPgTimestamptz(updatedAt),
	})
}

// DeleteCascade removes a movement; its installments go with it via the
// foreign key.
func (r *MovementRepository) DeleteCascade(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.DeleteMovement(ctx, id)
}

// ListByAccount lists movements touching a specific account.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.queries.ListMovementsByAccount(ctx, generated.ListMovementsByAccountParams{
		OriginAccountID: stringPtrToPgText(&accountID),
		Limit:           int32(limit),
		Offset:          int32(offset),
	})
	if err != nil {
		return nil, err
	}

	movements := make([]*domain.Movement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, rowToMovement(row))
	}

	return movements, nil
}

// List lists movements with pagination.
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.queries.ListMovements(ctx, generated.ListMovementsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	movements := make([]*domain.Movement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, rowToMovement(row))
	}

	return movements, nil
}

func rowToMovement(row generated.Movement) *domain.Movement {
	return &domain.Movement{
		ID:                   row.ID,
		Kind:                 domain.MovementKind(row.Kind),
		Status:               domain.MovementStatus(row.Status),
		OriginAccountID:      pgTextToStringPtr(row.OriginAccountID),
		DestinationAccountID: pgTextToStringPtr(row.DestinationAccountID),
		StakeholderID:        pgTextToStringPtr(row.StakeholderID),
		SaleRef:              pgTextToStringPtr(row.SaleRef),
		Category:             row.Category,
		Description:          row.Description,
		Amount:               numericToDecimal(row.Amount),
		EventDate:            row.EventDate.Time,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

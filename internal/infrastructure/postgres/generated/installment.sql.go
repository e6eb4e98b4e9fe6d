package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createInstallment = `-- name: CreateInstallment :one
INSERT INTO installments (id, movement_id, sequence, due_date, amount, applied, applied_delta, applied_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, movement_id, sequence, due_date, amount, applied, applied_delta, applied_at, created_at, updated_at
`

type CreateInstallmentParams struct {
	ID           string             `json:"id"`
	MovementID   string             `json:"movement_id"`
	Sequence     int32              `json:"sequence"`
	DueDate      pgtype.Timestamptz `json:"due_date"`
	Amount       pgtype.Numeric     `json:"amount"`
	Applied      bool               `json:"applied"`
	AppliedDelta pgtype.Numeric     `json:"applied_delta"`
	AppliedAt    pgtype.Timestamptz `json:"applied_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateInstallment(ctx context.Context, arg CreateInstallmentParams) (Installment, error) {
	row := q.db.QueryRow(ctx, createInstallment,
		arg.ID,
		arg.MovementID,
		arg.Sequence,
		arg.DueDate,
		arg.Amount,
		arg.Applied,
		arg.AppliedDelta,
		arg.AppliedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.MovementID,
		&i.Sequence,
		&i.DueDate,
		&i.Amount,
		&i.Applied,
		&i.AppliedDelta,
		&i.AppliedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getInstallmentBySequenceForUpdate = `-- name: GetInstallmentBySequenceForUpdate :one
SELECT id, movement_id, sequence, due_date, amount, applied, applied_delta, applied_at, created_at, updated_at FROM installments
WHERE movement_id = $1 AND sequence = $2 FOR UPDATE
`

type GetInstallmentBySequenceForUpdateParams struct {
	MovementID string `json:"movement_id"`
	Sequence   int32  `json:"sequence"`
}

func (q *Queries) GetInstallmentBySequenceForUpdate(ctx context.Context, arg GetInstallmentBySequenceForUpdateParams) (Installment, error) {
	row := q.db.QueryRow(ctx, getInstallmentBySequenceForUpdate, arg.MovementID, arg.Sequence)
	var i Installment
	err := row.Scan(
		&i.ID,
		&i.MovementID,
		&i.Sequence,
		&i.DueDate,
		&i.Amount,
		&i.Applied,
		&i.AppliedDelta,
		&i.AppliedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listInstallmentsByMovement = `-- name: ListInstallmentsByMovement :many
SELECT id, movement_id, sequence, due_date, amount, applied, applied_delta, applied_at, created_at, updated_at FROM installments
WHERE movement_id = $1 ORDER BY sequence
`

func (q *Queries) ListInstallmentsByMovement(ctx context.Context, movementID string) ([]Installment, error) {
	rows, err := q.db.Query(ctx, listInstallmentsByMovement, movementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Installment{}
	for rows.Next() {
		var i Installment
		if err := rows.Scan(
			&i.ID,
			&i.MovementID,
			&i.Sequence,
			&i.DueDate,
			&i.Amount,
			&i.Applied,
			&i.AppliedDelta,
			&i.AppliedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listInstallmentsByMovementForUpdate = `-- name: ListInstallmentsByMovementForUpdate :many
SELECT id, movement_id, sequence, due_date, amount, applied, applied_delta, applied_at, created_at, updated_at FROM installments
WHERE movement_id = $1 ORDER BY sequence FOR UPDATE
`

func (q *Queries) ListInstallmentsByMovementForUpdate(ctx context.Context, movementID string) ([]Installment, error) {
	rows, err := q.db.Query(ctx, listInstallmentsByMovementForUpdate, movementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Installment{}
	for rows.Next() {
		var i Installment
		if err := rows.Scan(
			&i.ID,
			&i.MovementID,
			&i.Sequence,
			&i.DueDate,
			&i.Amount,
			&i.Applied,
			&i.AppliedDelta,
			&i.AppliedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markInstallmentApplied = `-- name: MarkInstallmentApplied :exec
UPDATE installments
SET applied = TRUE, applied_delta = $2, applied_at = $3, updated_at = $3
WHERE id = $1
`

type MarkInstallmentAppliedParams struct {
	ID           string             `json:"id"`
	AppliedDelta pgtype.Numeric     `json:"applied_delta"`
	AppliedAt    pgtype.Timestamptz `json:"applied_at"`
}

func (q *Queries) MarkInstallmentApplied(ctx context.Context, arg MarkInstallmentAppliedParams) error {
	_, err := q.db.Exec(ctx, markInstallmentApplied, arg.ID, arg.AppliedDelta, arg.AppliedAt)
	return err
}

const markInstallmentUnapplied = `-- name: MarkInstallmentUnapplied :exec
UPDATE installments
SET applied = FALSE, applied_delta = NULL, applied_at = NULL, updated_at = $2
WHERE id = $1
`

type MarkInstallmentUnappliedParams struct {
	ID        string             `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkInstallmentUnapplied(ctx context.Context, arg MarkInstallmentUnappliedParams) error {
	_, err := q.db.Exec(ctx, markInstallmentUnapplied, arg.ID, arg.UpdatedAt)
	return err
}

const sumAppliedDeltasByAccount = `-- name: SumAppliedDeltasByAccount :one
SELECT COALESCE(SUM(
    CASE WHEN m.origin_account_id = $1::text THEN -i.applied_delta ELSE 0 END +
    CASE WHEN m.destination_account_id = $1::text THEN i.applied_delta ELSE 0 END
), 0)::numeric AS sum
FROM installments i
JOIN movements m ON m.id = i.movement_id
WHERE i.applied
  AND (m.origin_account_id = $1::text OR m.destination_account_id = $1::text)
`

func (q *Queries) SumAppliedDeltasByAccount(ctx context.Context, dollar_1 string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumAppliedDeltasByAccount, dollar_1)
	var sum pgtype.Numeric
	err := row.Scan(&sum)
	return sum, err
}

package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMovement = `-- name: CreateMovement :one
INSERT INTO movements (id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at
`

type CreateMovementParams struct {
	ID                   string             `json:"id"`
	Kind                 string             `json:"kind"`
	Status               string             `json:"status"`
	OriginAccountID      pgtype.Text        `json:"origin_account_id"`
	DestinationAccountID pgtype.Text        `json:"destination_account_id"`
	StakeholderID        pgtype.Text        `json:"stakeholder_id"`
	SaleRef              pgtype.Text        `json:"sale_ref"`
	Category             string             `json:"category"`
	Description          string             `json:"description"`
	Amount               pgtype.Numeric     `json:"amount"`
	EventDate            pgtype.Timestamptz `json:"event_date"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
	UpdatedAt            pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateMovement(ctx context.Context, arg CreateMovementParams) (Movement, error) {
	row := q.db.QueryRow(ctx, createMovement,
		arg.ID,
		arg.Kind,
		arg.Status,
		arg.OriginAccountID,
		arg.DestinationAccountID,
		arg.StakeholderID,
		arg.SaleRef,
		arg.Category,
		arg.Description,
		arg.Amount,
		arg.EventDate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Movement
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Status,
		&i.OriginAccountID,
		&i.DestinationAccountID,
		&i.StakeholderID,
		&i.SaleRef,
		&i.Category,
		&i.Description,
		&i.Amount,
		&i.EventDate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteMovement = `-- name: DeleteMovement :exec
DELETE FROM movements WHERE id = $1
`

func (q *Queries) DeleteMovement(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteMovement, id)
	return err
}

const getMovementByID = `-- name: GetMovementByID :one
SELECT id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at FROM movements WHERE id = $1
`

func (q *Queries) GetMovementByID(ctx context.Context, id string) (Movement, error) {
	row := q.db.QueryRow(ctx, getMovementByID, id)
	var i Movement
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Status,
		&i.OriginAccountID,
		&i.DestinationAccountID,
		&i.StakeholderID,
		&i.SaleRef,
		&i.Category,
		&i.Description,
		&i.Amount,
		&i.EventDate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMovementByIDForUpdate = `-- name: GetMovementByIDForUpdate :one
SELECT id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at FROM movements WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetMovementByIDForUpdate(ctx context.Context, id string) (Movement, error) {
	row := q.db.QueryRow(ctx, getMovementByIDForUpdate, id)
	var i Movement
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Status,
		&i.OriginAccountID,
		&i.DestinationAccountID,
		&i.StakeholderID,
		&i.SaleRef,
		&i.Category,
		&i.Description,
		&i.Amount,
		&i.EventDate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMovements = `-- name: ListMovements :many
SELECT id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at FROM movements ORDER BY event_date DESC, created_at DESC LIMIT $1 OFFSET $2
`

type ListMovementsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListMovements(ctx context.Context, arg ListMovementsParams) ([]Movement, error) {
	rows, err := q.db.Query(ctx, listMovements, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Movement{}
	for rows.Next() {
		var i Movement
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Status,
			&i.OriginAccountID,
			&i.DestinationAccountID,
			&i.StakeholderID,
			&i.SaleRef,
			&i.Category,
			&i.Description,
			&i.Amount,
			&i.EventDate,
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

const listMovementsByAccount = `-- name: ListMovementsByAccount :many
SELECT id, kind, status, origin_account_id, destination_account_id, stakeholder_id, sale_ref, category, description, amount, event_date, created_at, updated_at FROM movements
WHERE origin_account_id = $1 OR destination_account_id = $1
ORDER BY event_date DESC, created_at DESC LIMIT $2 OFFSET $3
`

type ListMovementsByAccountParams struct {
	OriginAccountID pgtype.Text `json:"origin_account_id"`
	Limit           int32       `json:"limit"`
	Offset          int32       `json:"offset"`
}

func (q *Queries) ListMovementsByAccount(ctx context.Context, arg ListMovementsByAccountParams) ([]Movement, error) {
	rows, err := q.db.Query(ctx, listMovementsByAccount, arg.OriginAccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Movement{}
	for rows.Next() {
		var i Movement
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Status,
			&i.OriginAccountID,
			&i.DestinationAccountID,
			&i.StakeholderID,
			&i.SaleRef,
			&i.Category,
			&i.Description,
			&i.Amount,
			&i.EventDate,
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

const setMovementOriginAccount = `-- name: SetMovementOriginAccount :exec
UPDATE movements SET origin_account_id = $2, updated_at = $3 WHERE id = $1
`

type SetMovementOriginAccountParams struct {
	ID              string             `json:"id"`
	OriginAccountID pgtype.Text        `json:"origin_account_id"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) SetMovementOriginAccount(ctx context.Context, arg SetMovementOriginAccountParams) error {
	_, err := q.db.Exec(ctx, setMovementOriginAccount, arg.ID, arg.OriginAccountID, arg.UpdatedAt)
	return err
}

const setMovementDestinationAccount = `-- name: SetMovementDestinationAccount :exec
UPDATE movements SET destination_account_id = $2, updated_at = $3 WHERE id = $1
`

type SetMovementDestinationAccountParams struct {
	ID                   string             `json:"id"`
	DestinationAccountID pgtype.Text        `json:"destination_account_id"`
	UpdatedAt            pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) SetMovementDestinationAccount(ctx context.Context, arg SetMovementDestinationAccountParams) error {
	_, err := q.db.Exec(ctx, setMovementDestinationAccount, arg.ID, arg.DestinationAccountID, arg.UpdatedAt)
	return err
}

const updateMovementStatus = `-- name: UpdateMovementStatus :exec
UPDATE movements SET status = $2, updated_at = $3 WHERE id = $1
`

type UpdateMovementStatusParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateMovementStatus(ctx context.Context, arg UpdateMovementStatusParams) error {
	_, err := q.db.Exec(ctx, updateMovementStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}

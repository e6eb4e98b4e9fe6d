package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Balance        pgtype.Numeric     `json:"balance"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	Active         bool               `json:"active"`
	Version        int64              `json:"version"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type AuditLog struct {
	ID           string             `json:"id"`
	Actor        string             `json:"actor"`
	Action       string             `json:"action"`
	ResourceType string             `json:"resource_type"`
	ResourceID   string             `json:"resource_id"`
	RequestID    pgtype.Text        `json:"request_id"`
	BeforeState  []byte             `json:"before_state"`
	AfterState   []byte             `json:"after_state"`
	Status       string             `json:"status"`
	ErrorMessage pgtype.Text        `json:"error_message"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Installment struct {
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

type Movement struct {
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

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

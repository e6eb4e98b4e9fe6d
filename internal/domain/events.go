package domain

import "time"

// Event types
const (
	EventTypeMovementConfirmed  = "movement.confirmed"
	EventTypeMovementReversed   = "movement.reversed"
	EventTypeInstallmentSettled = "installment.settled"
)

// Aggregate types
const (
	AggregateTypeMovement = "movement"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

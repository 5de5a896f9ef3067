package queue

import (
	"context"
	"time"
)

// Event types published by the booking flow.
const (
	EventTypeBookingCreated = "booking.created"
)

// Task is a booking audit event pushed onto the redis stream for
// downstream consumers (reconciliation tooling, analytics). Delivery is
// fire-and-forget from the booking flow's point of view.
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
	Attempts   int                    `json:"attempts"`
}

type Queue interface {
	Publish(ctx context.Context, task *Task) error
}

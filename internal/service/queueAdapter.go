package service

import (
	"context"

	"github.com/wanderbook/wanderbook/pkg/queue"
)

// queueAdapter bridges the service-level EventPublisher to the queue
// transport without leaking queue types into the services.
type queueAdapter struct {
	queue queue.Queue
}

func NewQueueAdapter(q queue.Queue) EventPublisher {
	return &queueAdapter{queue: q}
}

func (a *queueAdapter) Publish(ctx context.Context, event *Event) error {
	task := &queue.Task{
		ID:         event.ID,
		Type:       event.Type,
		Data:       event.Data,
		OccurredAt: event.OccurredAt,
	}
	return a.queue.Publish(ctx, task)
}

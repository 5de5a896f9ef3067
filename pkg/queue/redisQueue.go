package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 5 * time.Second
)

// RedisQueue implements Queue on top of a redis list. The booking flow
// only ever publishes; consuming the stream belongs to out-of-band
// tooling.
type RedisQueue struct {
	client       *redis.Client
	stream       string
	retryManager *RetryManager
}

// NewRedisQueue creates a new RedisQueue instance. The caller owns the
// client's lifecycle.
func NewRedisQueue(client *redis.Client, stream string, retryManager *RetryManager) (*RedisQueue, error) {
	if retryManager == nil {
		retryManager = NewRetryManager(defaultMaxRetries, defaultBaseDelay)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQueue{
		client:       client,
		stream:       stream,
		retryManager: retryManager,
	}, nil
}

// Publish pushes the event onto the stream, retrying transient failures
// with backoff until the retry budget runs out.
func (q *RedisQueue) Publish(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	for {
		err = q.client.LPush(ctx, q.stream, data).Err()
		if err == nil {
			return nil
		}

		task.Attempts++
		retry, delay := q.retryManager.ShouldRetry(task.Attempts)
		if !retry {
			return fmt.Errorf("failed to publish task %s after %d attempts: %w", task.ID, task.Attempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

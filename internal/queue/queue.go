package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

// TaskQueue is a durable FIFO of outreach tasks with an atomic pop: a
// popped task is delivered to at most one caller and never redelivered.
type TaskQueue interface {
	Push(ctx context.Context, task *model.OutreachTask) error
	// Pop returns (nil, nil) when the queue is empty.
	Pop(ctx context.Context) (*model.OutreachTask, error)
}

const tasksKey = "outreach:tasks"

// RedisTaskQueue backs the task queue with a Redis list. LPUSH/RPOP gives
// FIFO ordering, and RPOP is atomic so concurrent consumers cannot pop
// the same task twice.
type RedisTaskQueue struct {
	client *redis.Client
}

func NewRedisTaskQueue(client *redis.Client) *RedisTaskQueue {
	return &RedisTaskQueue{client: client}
}

// Push assigns the task an ID and enqueue timestamp if missing and
// appends it to the list.
func (q *RedisTaskQueue) Push(ctx context.Context, task *model.OutreachTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, tasksKey, body).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Pop removes and returns the oldest task. A payload that no longer
// parses is already gone from the list when the error surfaces; the
// queue is strictly at-most-once.
func (q *RedisTaskQueue) Pop(ctx context.Context) (*model.OutreachTask, error) {
	body, err := q.client.RPop(ctx, tasksKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}

	var task model.OutreachTask
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task payload: %w", err)
	}
	return &task, nil
}

var _ TaskQueue = (*RedisTaskQueue)(nil)

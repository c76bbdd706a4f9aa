// Package queue moves report tasks between the API and the worker through
// a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"domainvetter/internal/models"
)

// Connect builds a Redis client and pings it to ensure it's alive.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Publisher pushes report tasks onto the worker queue.
type Publisher struct {
	rdb   *redis.Client
	queue string
}

func NewPublisher(rdb *redis.Client, queue string) *Publisher {
	return &Publisher{rdb: rdb, queue: queue}
}

// PublishReport enqueues one report task. The worker pops tasks in FIFO
// order with BLPop, so RPush keeps delivery ordered.
func (p *Publisher) PublishReport(ctx context.Context, task models.ReportTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode report task: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue report task: %w", err)
	}
	slog.Info("report task enqueued",
		"task_id", task.ID, "check_id", task.CheckID, "domain", task.Domain)
	return nil
}

// Package worker consumes report tasks from the Redis queue and emails the
// rendered reports.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"domainvetter/internal/models"
	"domainvetter/internal/report"
)

// CheckLoader loads persisted checks by id.
type CheckLoader interface {
	GetCheck(ctx context.Context, id string) (*models.CheckRecord, error)
}

// Runner is the report delivery loop.
type Runner struct {
	rdb    *redis.Client
	queue  string
	checks CheckLoader
	sender report.Sender
}

func NewRunner(rdb *redis.Client, queue string, checks CheckLoader, sender report.Sender) *Runner {
	return &Runner{rdb: rdb, queue: queue, checks: checks, sender: sender}
}

// Run blocks, popping tasks until ctx is cancelled. Failed tasks are logged
// and dropped; the queue holds best-effort report delivery, not critical
// state.
func (r *Runner) Run(ctx context.Context) {
	slog.Info("report worker started", "queue", r.queue)

	for {
		if ctx.Err() != nil {
			slog.Info("report worker stopping")
			return
		}

		// A bounded block keeps shutdown responsive.
		result, err := r.rdb.BLPop(ctx, 5*time.Second, r.queue).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("report worker stopping")
				return
			}
			slog.Error("queue pop failed", "error", err)
			time.Sleep(time.Second) // backoff on error
			continue
		}

		// BLPOP returns [queue_name, value].
		var task models.ReportTask
		if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
			slog.Error("malformed report task", "payload", result[1])
			continue
		}

		r.process(ctx, task)
	}
}

func (r *Runner) process(ctx context.Context, task models.ReportTask) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	rec, err := r.checks.GetCheck(ctx, task.CheckID)
	if err != nil {
		slog.Error("load check for report failed",
			"task_id", task.ID, "check_id", task.CheckID, "error", err)
		return
	}

	if task.Welcome {
		msg, err := report.RenderWelcome(task.Email, task.Domain)
		if err != nil {
			slog.Error("render welcome failed", "task_id", task.ID, "error", err)
		} else if err := r.sender.Send(ctx, msg); err != nil {
			slog.Error("send welcome failed",
				"task_id", task.ID, "to", task.Email, "error", err)
		} else {
			slog.Info("welcome email sent", "task_id", task.ID, "to", task.Email)
		}
	}

	msg, err := report.Render(task.Email, &rec.Analysis, rec.CreatedAt)
	if err != nil {
		slog.Error("render report failed", "task_id", task.ID, "error", err)
		return
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		slog.Error("send report failed",
			"task_id", task.ID, "to", task.Email, "error", err)
		return
	}

	slog.Info("report sent",
		"task_id", task.ID, "domain", task.Domain, "to", task.Email,
		"grade", rec.Analysis.Grade)
}

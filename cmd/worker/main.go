package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"domainvetter/internal/config"
	"domainvetter/internal/queue"
	"domainvetter/internal/report"
	"domainvetter/internal/store"
	"domainvetter/internal/worker"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.Info("starting report worker")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.BrevoAPIKey == "" {
		slog.Error("BREVO_API_KEY is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 1. Redis (report queue)
	rdb, err := queue.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	slog.Info("connected to redis", "addr", cfg.RedisAddr)

	// 2. PostgreSQL (check records to render)
	db, err := store.Open(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to postgres")

	// 3. Processing loop, runs until SIGTERM/SIGINT.
	sender := report.NewBrevoSender(cfg.BrevoAPIKey, cfg.SenderName, cfg.SenderEmail)
	worker.NewRunner(rdb, cfg.ReportQueue, db, sender).Run(ctx)
}

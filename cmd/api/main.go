package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"domainvetter/internal/analyzer"
	"domainvetter/internal/cache"
	"domainvetter/internal/config"
	"domainvetter/internal/dnsx"
	"domainvetter/internal/queue"
	"domainvetter/internal/ratelimit"
	"domainvetter/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Root context for background goroutines. Cancelling it on shutdown
	// stops the cache cleanup goroutine cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Redis (rate limiting + report queue)
	slog.Info("connecting to redis", "addr", cfg.RedisAddr)
	rdb, err := queue.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// 2. PostgreSQL
	slog.Info("connecting to database")
	db, err := store.Open(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to postgres, migrations applied")

	// 3. Analysis pipeline
	resolver := dnsx.NewClient(dnsx.ClientConfig{
		Nameservers: cfg.Nameservers,
		Timeout:     cfg.DNSTimeout,
		MaxInFlight: cfg.MaxInFlight,
	})

	analysisCache := cache.New(cfg.CacheTTL)
	analysisCache.StartCleanup(ctx, 5*time.Minute)

	srv := &apiServer{
		cfg:      cfg,
		analyzer: analyzer.New(resolver, cfg.DKIMSelectors),
		cache:    analysisCache,
		store:    db,
		limiter:  ratelimit.New(rdb, cfg.CheckLimit),
		reports:  queue.NewPublisher(rdb, cfg.ReportQueue),
	}

	// 4. Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/check", enableCORS(srv.requireAPIKey(srv.checkHandler)))
	mux.HandleFunc("/usage", enableCORS(srv.requireAPIKey(srv.usageHandler)))
	mux.HandleFunc("/history", enableCORS(srv.requireAPIKey(srv.historyHandler)))
	mux.HandleFunc("/stats", enableCORS(srv.requireAPIKey(srv.statsHandler)))
	mux.HandleFunc("/healthz", healthzHandler)
	mux.HandleFunc("/", enableCORS(infoHandler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. Graceful shutdown on SIGTERM / SIGINT.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		slog.Info("api server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutdown signal received, draining in-flight requests")

	// Stops the cache cleanup goroutine and any other background work
	// before the process exits.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server shut down cleanly")
}

// enableCORS middleware sets CORS headers for frontend access.
// Note: Access-Control-Allow-Origin is set to "*" which is permissive.
// Restrict this to your specific frontend origin in production.
func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "DomainVetter API",
		"version": "1.0.0",
		"capabilities": []string{
			"MX record analysis",
			"SPF policy scoring",
			"DKIM selector probing",
			"DMARC enforcement checks",
			"Email security grading and reports",
		},
	})
}

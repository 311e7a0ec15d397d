package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tripgest/internal/api"
	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	var client backend.Client
	var stats *backend.LatencyStats
	var closers []func()
	if cfg.BackendMock {
		client = &backend.MockClient{}
		log.Warn("using mock travel backend")
	} else {
		stats = backend.NewLatencyStats(time.Hour)
		hc := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout, stats)
		client = hc
		closers = append(closers, hc.Close)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case config.StorePathstore:
		ps := store.NewPathstoreStore(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		st = ps
		closers = append(closers, ps.Close)
	default:
		st = store.NewMemoryStore()
	}

	// Initialize pipeline.
	memo := itinerary.NewMemo(cfg.ParseCacheSize)
	orch := pipeline.NewOrchestrator(cfg, client, st, memo, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		for _, c := range closers {
			c()
		}
	}()

	log.Info("starting tripgest",
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"backend_mock", cfg.BackendMock,
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"log/slog"

	"github.com/kirdwahi/ledger/internal/config"
	"github.com/kirdwahi/ledger/internal/events"
	"github.com/kirdwahi/ledger/internal/events/kafka"
	"github.com/kirdwahi/ledger/internal/httpapi"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
	"github.com/kirdwahi/ledger/internal/storage/memory"
	pgstore "github.com/kirdwahi/ledger/internal/storage/postgres"
	"github.com/kirdwahi/ledger/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	var (
		store   httpapi.Store
		closeFn func()
	)
	switch {
	case cfg.DatabaseURL != "":
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		store = pg
		closeFn = pg.Close
		logger.Info("storage backend: postgres")
	case cfg.SQLitePath != "":
		sq, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite store", "err", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		store = sq
		closeFn = func() { _ = sq.Close() }
		logger.Info("storage backend: sqlite", "path", cfg.SQLitePath)
	default:
		mem := memory.New()
		if cfg.DevSeed {
			seedDev(mem, logger)
		}
		store = mem
		logger.Info("storage backend: memory")
	}

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = kp.Close() }()
		pub = events.Logged(kp, logger)
		logger.Info("event publishing: kafka", "topic", cfg.KafkaTopic)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(store, cfg.AuthToken, pub, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("kirdwahi service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// seedDev loads a couple of sample accounts so the API is usable immediately
// on a fresh in-memory store.
func seedDev(store *memory.Store, l *slog.Logger) {
	now := time.Now().UTC()
	accs := []ledgerbook.Account{
		{ID: uuid.New(), KhateNumber: "101", Name: "रामचंद्र पाटील", CreatedAt: now},
		{ID: uuid.New(), KhateNumber: "102", Name: "सविता देशमुख", CreatedAt: now},
	}
	for _, a := range accs {
		store.SeedAccount(a)
		l.Info("DEV seed account", "id", a.ID.String(), "khate_number", a.KhateNumber)
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if strings.ToLower(cfg.LogFormat) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devis_backend/internal/adapters"
	"devis_backend/internal/audit"
	"devis_backend/internal/auth"
	"devis_backend/internal/business"
	"devis_backend/internal/catalog"
	"devis_backend/internal/clients"
	"devis_backend/internal/email"
	"devis_backend/internal/events"
	"devis_backend/internal/exports"
	apphttp "devis_backend/internal/http"
	"devis_backend/internal/http/router"
	"devis_backend/internal/notification"
	"devis_backend/internal/quotes"
	quotesvc "devis_backend/internal/quotes/service"
	"devis_backend/internal/scheduler"
	"devis_backend/platform/config"
	"devis_backend/platform/db"
	"devis_backend/platform/logger"
	"devis_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg, log)

	followUpScheduler, closeScheduler := initFollowUpScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	archiver := initExportArchiver(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, log)
	businessModule := business.NewModule(pool)
	clientsModule := clients.NewModule(pool)
	catalogModule := catalog.NewModule(pool)

	// Cross-module ports for the quotes module
	catalogReader := adapters.NewCatalogReaderAdapter(catalogModule.Repository())
	contactReader := adapters.NewContactReaderAdapter(clientsModule.Repository(), businessModule.Repository())
	notifier := notification.NewQuoteNotifier(sender, log)

	quotesModule := quotes.NewModule(pool, catalogReader, contactReader, notifier, followUpScheduler, eventBus, log)
	exportsModule := exports.NewModule(pool, archiver, eventBus, log)
	auditModule := audit.NewModule(pool, validator.New())

	// Audit recorder listens to sensitive mutations on the bus
	auditRecorder := audit.NewRecorder(auditModule.Repository(), log)
	auditRecorder.Subscribe(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			businessModule,
			clientsModule,
			catalogModule,
			quotesModule,
			exportsModule,
			auditModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initFollowUpScheduler(cfg config.SchedulerConfig, log *logger.Logger) (quotesvc.FollowUpScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; quote follow-up reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize follow-up scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initExportArchiver(cfg config.StorageConfig, log *logger.Logger) exports.Archiver {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; export archiving disabled")
		return nil
	}

	archiver, err := exports.NewMinioArchiver(cfg)
	if err != nil {
		log.Error("failed to initialize export archiver", "error", err)
		return nil
	}
	return archiver
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"devis_backend/internal/audit"
	"devis_backend/internal/email"
	"devis_backend/internal/events"
	"devis_backend/internal/scheduler"
	"devis_backend/platform/config"
	"devis_backend/platform/db"
	"devis_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting follow-up worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	sender := email.NewSender(cfg, log)

	// The worker publishes follow-up events on its own bus, so it needs its
	// own audit recorder for them to reach the audit log.
	auditRecorder := audit.NewRecorder(audit.NewRepository(pool), log)
	auditRecorder.Subscribe(eventBus)

	worker, err := scheduler.NewWorker(cfg, pool, sender, eventBus, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}

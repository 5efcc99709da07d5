// Package quotes provides the quote lifecycle bounded context module.
package quotes

import (
	"devis_backend/internal/events"
	apphttp "devis_backend/internal/http"
	"devis_backend/internal/quotes/handler"
	"devis_backend/internal/quotes/repository"
	"devis_backend/internal/quotes/service"
	"devis_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates and initializes the quotes module. The catalog, contact,
// notifier, and scheduler ports are wired by the composition root.
func NewModule(pool *pgxpool.Pool, catalog service.CatalogReader, contacts service.ContactReader, notifier service.Notifier, scheduler service.FollowUpScheduler, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, catalog, contacts, notifier, scheduler, bus, log)
	h := handler.New(svc)

	return &Module{handler: h, service: svc, repository: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the quotes service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the quotes repository for cross-module readers.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

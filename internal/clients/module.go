// Package clients provides the client management bounded context module.
package clients

import (
	"devis_backend/internal/clients/handler"
	"devis_backend/internal/clients/repository"
	"devis_backend/internal/clients/service"
	apphttp "devis_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates and initializes the clients module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{handler: h, service: svc, repository: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// Service returns the clients service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the clients repository for cross-module readers.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes mounts client routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/clients"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

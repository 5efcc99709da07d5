// Package catalog provides the service/package catalogue bounded context module.
package catalog

import (
	"devis_backend/internal/catalog/handler"
	"devis_backend/internal/catalog/repository"
	"devis_backend/internal/catalog/service"
	apphttp "devis_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{handler: h, service: svc, repository: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the catalog service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the catalog repository for cross-module readers.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes mounts catalogue routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/services"), ctx.Protected.Group("/packages"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

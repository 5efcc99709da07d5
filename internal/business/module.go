// Package business provides the tenant profile bounded context module.
package business

import (
	"devis_backend/internal/business/handler"
	"devis_backend/internal/business/repository"
	"devis_backend/internal/business/service"
	apphttp "devis_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the business bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates and initializes the business module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{handler: h, service: svc, repository: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "business"
}

// Service returns the business service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the business repository for cross-module readers.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes mounts business routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/business")
	group.GET("", m.handler.Get)
	group.PUT("", m.handler.Update)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

package audit

import (
	apphttp "devis_backend/internal/http"
	"devis_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit bounded context module implementing http.Module.
type Module struct {
	handler    *Handler
	repository *Repository
}

// NewModule creates and initializes the audit module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := NewRepository(pool)

	return &Module{handler: NewHandler(repo, val), repository: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// Repository returns the audit repository.
func (m *Module) Repository() *Repository {
	return m.repository
}

// RegisterRoutes mounts audit routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/audit-logs"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

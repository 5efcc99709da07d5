package exports

import (
	"devis_backend/internal/events"
	apphttp "devis_backend/internal/http"
	"devis_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the exports module. The archiver may be
// nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, archiver Archiver, bus events.Bus, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, archiver, bus, log)

	return &Module{handler: NewHandler(svc), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// Service returns the export service.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/exports"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

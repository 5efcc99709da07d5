package exports

import (
	"net/http"

	"devis_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the export endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new export handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts export routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/quotes.csv", h.ExportQuotesCSV)
}

// ExportQuotesCSV handles GET /exports/quotes.csv. A tenant without quotes
// receives an empty file rather than an error.
func (h *Handler) ExportQuotesCSV(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.ExportQuotesCSV(c.Request.Context(), id.TenantID(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quotes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", result.Content)
}

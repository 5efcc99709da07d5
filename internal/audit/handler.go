package audit

import (
	"net/http"
	"time"

	"devis_backend/platform/httpkit"
	"devis_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the audit log read endpoint.
type Handler struct {
	repo *Repository
	val  *validator.Validator
}

// NewHandler creates a new audit handler.
func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

// RegisterRoutes mounts audit routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
}

type listQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

// EntryResponse is the JSON shape of one audit entry.
type EntryResponse struct {
	ID           uuid.UUID      `json:"id"`
	ActorID      *uuid.UUID     `json:"actorId,omitempty"`
	Action       string         `json:"action"`
	Level        string         `json:"level"`
	ResourceType string         `json:"resourceType"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// List handles GET /audit-logs.
func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	entries, err := h.repo.ListByBusiness(c.Request.Context(), id.TenantID(), q.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, EntryResponse{
			ID:           entry.ID,
			ActorID:      entry.ActorID,
			Action:       entry.Action,
			Level:        entry.Level,
			ResourceType: entry.ResourceType,
			Metadata:     entry.Metadata,
			CreatedAt:    entry.CreatedAt,
		})
	}
	httpkit.OK(c, result)
}

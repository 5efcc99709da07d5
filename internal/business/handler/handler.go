// Package handler exposes HTTP endpoints for the business profile.
package handler

import (
	"net/http"

	"devis_backend/internal/business/service"
	"devis_backend/internal/business/transport"
	"devis_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles business HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates a new business handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Get handles GET /business.
func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id.TenantID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Update handles PUT /business.
func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id.TenantID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

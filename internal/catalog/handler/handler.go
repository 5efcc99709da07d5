// Package handler exposes HTTP endpoints for catalogue management.
package handler

import (
	"net/http"
	"strings"

	"devis_backend/internal/catalog/service"
	"devis_backend/internal/catalog/transport"
	"devis_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles catalogue HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts catalogue routes on the provided groups.
func (h *Handler) RegisterRoutes(services, packages *gin.RouterGroup) {
	services.POST("", h.CreateService)
	services.GET("", h.ListServices)
	services.GET("/:id", h.GetService)
	services.PUT("/:id", h.UpdateService)
	services.DELETE("/:id", h.DeleteService)

	packages.POST("", h.CreatePackage)
	packages.GET("", h.ListPackages)
	packages.GET("/:id", h.GetPackage)
	packages.PUT("/:id", h.UpdatePackage)
	packages.DELETE("/:id", h.DeletePackage)
}

// CreateService handles POST /services.
func (h *Handler) CreateService(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.svc.CreateService(c.Request.Context(), id.TenantID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

// ListServices handles GET /services.
func (h *Handler) ListServices(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	includeInactive := strings.EqualFold(c.Query("includeInactive"), "true")
	resp, err := h.svc.ListServices(c.Request.Context(), id.TenantID(), includeInactive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GetService handles GET /services/:id.
func (h *Handler) GetService(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid service id", nil)
		return
	}

	resp, err := h.svc.GetService(c.Request.Context(), id.TenantID(), serviceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// UpdateService handles PUT /services/:id.
func (h *Handler) UpdateService(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid service id", nil)
		return
	}

	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.svc.UpdateService(c.Request.Context(), id.TenantID(), serviceID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// DeleteService handles DELETE /services/:id.
func (h *Handler) DeleteService(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid service id", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteService(c.Request.Context(), id.TenantID(), serviceID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// CreatePackage handles POST /packages.
func (h *Handler) CreatePackage(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.svc.CreatePackage(c.Request.Context(), id.TenantID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

// ListPackages handles GET /packages.
func (h *Handler) ListPackages(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	includeInactive := strings.EqualFold(c.Query("includeInactive"), "true")
	resp, err := h.svc.ListPackages(c.Request.Context(), id.TenantID(), includeInactive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GetPackage handles GET /packages/:id.
func (h *Handler) GetPackage(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid package id", nil)
		return
	}

	resp, err := h.svc.GetPackage(c.Request.Context(), id.TenantID(), packageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// UpdatePackage handles PUT /packages/:id.
func (h *Handler) UpdatePackage(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid package id", nil)
		return
	}

	var req transport.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.svc.UpdatePackage(c.Request.Context(), id.TenantID(), packageID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// DeletePackage handles DELETE /packages/:id.
func (h *Handler) DeletePackage(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid package id", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeletePackage(c.Request.Context(), id.TenantID(), packageID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

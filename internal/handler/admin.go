package handler

import (
	"net/http"

	"leadsdesk/internal/middleware"
	"leadsdesk/internal/model"
	"leadsdesk/internal/service"
	"leadsdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles CSR account management. Every route is behind
// the admin gate.
type AdminHandler struct {
	service *service.CSRService
}

func NewAdminHandler(svc *service.CSRService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListCSRs returns all CSR accounts (GET /api/admin/csrs).
func (h *AdminHandler) ListCSRs(c *gin.Context) {
	csrs, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(csrs))
	for _, csr := range csrs {
		out = append(out, csr.ToResponse())
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(out), out))
}

// CreateCSR provisions a CSR account (POST /api/admin/csrs).
func (h *AdminHandler) CreateCSR(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Not authorized, token failed"))
		return
	}

	var req model.CreateCSRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	csr, err := h.service.Create(c.Request.Context(), p.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("CSR created successfully", csr.ToResponse()))
}

// UpdatePermissions replaces a CSR's permission set
// (PUT /api/admin/csrs/:id/permissions).
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req model.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	csr, err := h.service.UpdatePermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Permissions updated successfully", csr.ToResponse()))
}

// DeleteCSR removes a CSR account (DELETE /api/admin/csrs/:id).
func (h *AdminHandler) DeleteCSR(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("CSR deleted successfully", nil))
}

// ListPermissions returns the grantable permission catalog
// (GET /api/admin/permissions).
func (h *AdminHandler) ListPermissions(c *gin.Context) {
	catalog := h.service.Catalog()
	c.JSON(http.StatusOK, model.NewListResponse(len(catalog), catalog))
}

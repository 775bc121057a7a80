package handler

import (
	"net/http"

	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// LeadHandler handles lead CRUD endpoints.
type LeadHandler struct {
	service *service.LeadService
}

func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{service: svc}
}

// List returns the caller's visible leads (GET /api/leads).
func (h *LeadHandler) List(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	leads, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(leads), leads))
}

// Get returns one lead (GET /api/leads/:id).
func (h *LeadHandler) Get(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	lead, err := h.service.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", lead))
}

// Create stores a new lead (POST /api/leads).
func (h *LeadHandler) Create(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.LeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Lead created successfully", lead))
}

// Update mutates a lead (PUT /api/leads/:id).
func (h *LeadHandler) Update(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.LeadUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := h.service.Update(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Lead updated successfully", lead))
}

// Delete removes a lead (DELETE /api/leads/:id).
func (h *LeadHandler) Delete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Lead deleted successfully", nil))
}

// Stats summarizes the caller's pipeline (GET /api/leads/stats).
func (h *LeadHandler) Stats(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", stats))
}

package handler

import (
	"net/http"

	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice CRUD endpoints.
type InvoiceHandler struct {
	service *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: svc}
}

// List returns the caller's visible invoices (GET /api/invoices).
func (h *InvoiceHandler) List(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	invoices, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(invoices), invoices))
}

// Stats summarizes the caller's invoices (GET /api/invoices/stats).
func (h *InvoiceHandler) Stats(c *gin.Context) {
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

// Get returns one invoice (GET /api/invoices/:id).
func (h *InvoiceHandler) Get(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	invoice, err := h.service.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", invoice))
}

// Create issues an invoice (POST /api/invoices).
func (h *InvoiceHandler) Create(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Invoice created successfully", invoice))
}

// Update mutates an invoice (PUT /api/invoices/:id).
func (h *InvoiceHandler) Update(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.InvoiceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.service.Update(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Invoice updated successfully", invoice))
}

// Delete removes an invoice (DELETE /api/invoices/:id).
func (h *InvoiceHandler) Delete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Invoice deleted successfully", nil))
}

package handler

import (
	"net/http"

	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment CRUD endpoints.
type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// List returns the caller's visible payments (GET /api/payments).
func (h *PaymentHandler) List(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	payments, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(payments), payments))
}

// Stats summarizes the caller's payments (GET /api/payments/stats).
func (h *PaymentHandler) Stats(c *gin.Context) {
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

// Get returns one payment (GET /api/payments/:id).
func (h *PaymentHandler) Get(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	payment, err := h.service.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", payment))
}

// Create records a payment (POST /api/payments).
func (h *PaymentHandler) Create(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Payment created successfully", payment))
}

// Update mutates a payment (PUT /api/payments/:id).
func (h *PaymentHandler) Update(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.PaymentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := h.service.Update(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Payment updated successfully", payment))
}

// Delete removes a payment (DELETE /api/payments/:id).
func (h *PaymentHandler) Delete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Payment deleted successfully", nil))
}

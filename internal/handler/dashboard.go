package handler

import (
	"net/http"

	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the rollup endpoints.
type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Admin returns the global rollup (GET /api/dashboard/admin).
func (h *DashboardHandler) Admin(c *gin.Context) {
	data, err := h.service.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", data))
}

// CSR returns the caller-scoped rollup (GET /api/dashboard/csr).
func (h *DashboardHandler) CSR(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	data, err := h.service.CSRDashboard(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", data))
}

// AgentAnalytics returns per-agent lead rollups
// (GET /api/dashboard/agent-analytics).
func (h *DashboardHandler) AgentAnalytics(c *gin.Context) {
	data, err := h.service.AgentAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", data))
}

package handler

import (
	"net/http"

	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	service *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// List returns the caller's visible projects (GET /api/projects).
func (h *ProjectHandler) List(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	projects, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(projects), projects))
}

// Stats summarizes the caller's projects (GET /api/projects/stats).
func (h *ProjectHandler) Stats(c *gin.Context) {
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

// Get returns one project (GET /api/projects/:id).
func (h *ProjectHandler) Get(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	project, err := h.service.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", project))
}

// Create stores a new project (POST /api/projects).
func (h *ProjectHandler) Create(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Project created successfully", project))
}

// Update mutates a project (PUT /api/projects/:id).
func (h *ProjectHandler) Update(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.service.Update(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Project updated successfully", project))
}

// Delete removes a project (DELETE /api/projects/:id).
func (h *ProjectHandler) Delete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Project deleted successfully", nil))
}

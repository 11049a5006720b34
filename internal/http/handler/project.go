package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/dto"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.Create(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	projects, err := h.projectService.List(ctx, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToProjectResponses(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.Get(ctx, caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.Update(ctx, caller, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.projectService.Delete(ctx, caller, id); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "project deleted"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/dto"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgService.Create(ctx, caller, req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	orgs, err := h.orgService.List(ctx, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToOrganizationResponses(orgs))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	org, err := h.orgService.Get(ctx, caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgService.Update(ctx, caller, id, service.UpdateOrganizationParams{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.orgService.Delete(ctx, caller, id); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "organization deleted"})
}

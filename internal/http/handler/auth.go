package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/dto"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Register(ctx, service.RegisterParams{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToAuthResponse(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToAuthResponse(result))
}

// Me returns the authenticated caller with their organization.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	profile, err := h.authService.Profile(ctx, caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToProfileResponse(profile))
}

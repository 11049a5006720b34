package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/dto"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Create(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	users, err := h.userService.List(ctx, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponses(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.Get(ctx, caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Update(ctx, caller, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.userService.Delete(ctx, caller, id); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "user deleted"})
}

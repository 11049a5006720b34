package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/dto"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Create(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToTaskResponse(task))
}

func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	tasks, err := h.taskService.List(ctx, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTaskResponses(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.Get(ctx, caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Update(ctx, caller, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.taskService.Delete(ctx, caller, id); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "task deleted"})
}

func (h *TaskHandler) Assign(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Assign(ctx, caller, id, int64(req.UserID))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Unassign(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(ctx)

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Unassign(ctx, caller, id, int64(req.UserID))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTaskResponse(task))
}

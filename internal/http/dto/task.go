package dto

import (
	"time"

	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed blocked"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ProjectID   ID         `json:"projectId" binding:"required"`
	AssigneeIDs []ID       `json:"assigneeIds,omitempty"`
}

func (r *CreateTaskRequest) ToParams() service.CreateTaskParams {
	params := service.CreateTaskParams{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		ProjectID:   int64(r.ProjectID),
		AssigneeIDs: toIDs(r.AssigneeIDs),
	}
	if r.Status != nil {
		status := model.TaskStatus(*r.Status)
		params.Status = &status
	}
	if r.Priority != nil {
		priority := model.TaskPriority(*r.Priority)
		params.Priority = &priority
	}
	return params
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed blocked"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeIDs *[]ID   `json:"assigneeIds,omitempty"`
	// Absent keeps the current due date, null clears it, a value sets it.
	DueDate Optional[time.Time] `json:"dueDate"`
}

func (r *UpdateTaskRequest) ToParams() service.UpdateTaskParams {
	params := service.UpdateTaskParams{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.Ptr(),
		DueDateSet:  r.DueDate.Set,
	}
	if r.Status != nil {
		status := model.TaskStatus(*r.Status)
		params.Status = &status
	}
	if r.Priority != nil {
		priority := model.TaskPriority(*r.Priority)
		params.Priority = &priority
	}
	if r.AssigneeIDs != nil {
		ids := toIDs(*r.AssigneeIDs)
		if ids == nil {
			ids = []int64{}
		}
		params.AssigneeIDs = &ids
	}
	return params
}

type AssignTaskRequest struct {
	UserID ID `json:"userId" binding:"required"`
}

type AssigneeResponse struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TaskResponse struct {
	ID             ID                 `json:"id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description,omitempty"`
	Status         string             `json:"status"`
	Priority       string             `json:"priority"`
	DueDate        *time.Time         `json:"dueDate"`
	ProjectID      ID                 `json:"projectId"`
	OrganizationID ID                 `json:"organizationId"`
	CreatedBy      ID                 `json:"createdBy"`
	Assignees      []AssigneeResponse `json:"assignees"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func ToTaskResponse(t *model.Task) *TaskResponse {
	assignees := make([]AssigneeResponse, len(t.Assignees))
	for i, a := range t.Assignees {
		assignees[i] = AssigneeResponse{ID: ID(a.ID), Email: a.Email, Name: a.Name}
	}
	return &TaskResponse{
		ID:             ID(t.ID),
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		ProjectID:      ID(t.ProjectID),
		OrganizationID: ID(t.OrganizationID),
		CreatedBy:      ID(t.CreatedBy),
		Assignees:      assignees,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func ToTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = *ToTaskResponse(&tasks[i])
	}
	return out
}

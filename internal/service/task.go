package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/authz"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/store"
)

type TaskService interface {
	Create(ctx context.Context, caller *model.User, params CreateTaskParams) (*model.Task, error)
	List(ctx context.Context, caller *model.User) ([]model.Task, error)
	Get(ctx context.Context, caller *model.User, taskID int64) (*model.Task, error)
	Update(ctx context.Context, caller *model.User, taskID int64, params UpdateTaskParams) (*model.Task, error)
	Delete(ctx context.Context, caller *model.User, taskID int64) error
	Assign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error)
	Unassign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error)
}

type CreateTaskParams struct {
	Title       string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	DueDate     *time.Time
	ProjectID   int64
	AssigneeIDs []int64
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	// AssigneeIDs, when set, replaces the assignee list wholesale.
	AssigneeIDs *[]int64
	// DueDate is tri-state: DueDateSet false leaves it untouched,
	// DueDateSet true with nil DueDate clears it.
	DueDate    *time.Time
	DueDateSet bool
}

type taskService struct {
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	userStore    store.UserStore
	txRunner     TxRunner
}

func NewTaskService(taskStore store.TaskStore, projectStore store.ProjectStore, userStore store.UserStore, txRunner TxRunner) TaskService {
	return &taskService{
		taskStore:    taskStore,
		projectStore: projectStore,
		userStore:    userStore,
		txRunner:     txRunner,
	}
}

func (s *taskService) Create(ctx context.Context, caller *model.User, params CreateTaskParams) (*model.Task, error) {
	if d := authz.CanCreateTask(caller); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	project, perr := s.projectStore.GetByID(ctx, params.ProjectID)
	if perr != nil && !errors.Is(perr, store.ErrNotFound) {
		return nil, fmt.Errorf("getting project: %w", perr)
	}
	// A project outside the caller's organization is reported as missing,
	// not forbidden, so its existence is not leaked.
	if perr != nil || project.OrganizationID != caller.OrganizationID {
		return nil, apperr.NotFound("project not found or access denied")
	}

	assigneeIDs, err := s.validateAssignees(ctx, caller, params.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:             id.New(),
		Title:          params.Title,
		Description:    params.Description,
		Status:         model.TaskStatusPending,
		Priority:       model.TaskPriorityMedium,
		DueDate:        params.DueDate,
		ProjectID:      project.ID,
		OrganizationID: caller.OrganizationID,
		CreatedBy:      caller.ID,
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		return stores.Tasks().Create(ctx, task, assigneeIDs)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create task", "error", err, "project_id", project.ID)
		return nil, fmt.Errorf("creating task: %w", err)
	}

	slog.InfoContext(ctx, "task created", "task_id", task.ID, "project_id", project.ID, "created_by", caller.ID)
	return task, nil
}

// List scopes to the caller's organization. Members see only tasks assigned
// to them; tasks they created but are not assigned to do not appear.
func (s *taskService) List(ctx context.Context, caller *model.User) ([]model.Task, error) {
	if caller.Role == model.RoleOrganizationMember {
		tasks, err := s.taskStore.ListByAssignee(ctx, caller.OrganizationID, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("listing tasks: %w", err)
		}
		return tasks, nil
	}

	tasks, err := s.taskStore.ListByOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, caller *model.User, taskID int64) (*model.Task, error) {
	task, err := s.getInTenant(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanViewTask(caller, task); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return task, nil
}

func (s *taskService) Update(ctx context.Context, caller *model.User, taskID int64, params UpdateTaskParams) (*model.Task, error) {
	task, err := s.getInTenant(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanUpdateTask(caller, task); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.DueDateSet {
		task.DueDate = params.DueDate
	}

	if params.AssigneeIDs != nil {
		assigneeIDs, err := s.validateAssignees(ctx, caller, *params.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
			if err := stores.Tasks().Update(ctx, task); err != nil {
				return err
			}
			return stores.Tasks().ReplaceAssignees(ctx, task.ID, assigneeIDs)
		})
		if err != nil {
			return nil, fmt.Errorf("updating task: %w", err)
		}
		return s.reload(ctx, task.ID)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	slog.InfoContext(ctx, "task updated", "task_id", task.ID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, caller *model.User, taskID int64) error {
	task, err := s.getInTenant(ctx, caller, taskID)
	if err != nil {
		return err
	}

	if d := authz.CanDeleteTask(caller, task); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	slog.InfoContext(ctx, "task deleted", "task_id", task.ID, "deleted_by", caller.ID)
	return nil
}

func (s *taskService) Assign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error) {
	task, err := s.getInTenant(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanUpdateTask(caller, task); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if err != nil || user.OrganizationID != task.OrganizationID {
		return nil, apperr.NotFound("user not found in your organization")
	}

	if task.IsAssignee(userID) {
		return nil, apperr.BadRequest("user is already assigned to this task")
	}

	if err := s.taskStore.AddAssignee(ctx, task.ID, userID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.BadRequest("user is already assigned to this task")
		}
		return nil, fmt.Errorf("assigning user: %w", err)
	}

	slog.InfoContext(ctx, "task assigned", "task_id", task.ID, "user_id", userID)
	return s.reload(ctx, task.ID)
}

func (s *taskService) Unassign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error) {
	task, err := s.getInTenant(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanUpdateTask(caller, task); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if !task.IsAssignee(userID) {
		return nil, apperr.BadRequest("user is not assigned to this task")
	}

	if err := s.taskStore.RemoveAssignee(ctx, task.ID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.BadRequest("user is not assigned to this task")
		}
		return nil, fmt.Errorf("unassigning user: %w", err)
	}

	slog.InfoContext(ctx, "task unassigned", "task_id", task.ID, "user_id", userID)
	return s.reload(ctx, task.ID)
}

func (s *taskService) getInTenant(ctx context.Context, caller *model.User, taskID int64) (*model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}

	if d := authz.SameTenant(caller, task.OrganizationID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return task, nil
}

// validateAssignees ensures every id resolves to a user inside the caller's
// organization, returning the list with duplicates removed.
func (s *taskService) validateAssignees(ctx context.Context, caller *model.User, assigneeIDs []int64) ([]int64, error) {
	if len(assigneeIDs) == 0 {
		return nil, nil
	}

	unique := make(map[int64]struct{}, len(assigneeIDs))
	ids := make([]int64, 0, len(assigneeIDs))
	for _, id := range assigneeIDs {
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		ids = append(ids, id)
	}

	count, err := s.userStore.CountInOrganization(ctx, ids, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("validating assignees: %w", err)
	}
	if count != len(ids) {
		return nil, apperr.BadRequest("one or more assignees are not part of your organization")
	}
	return ids, nil
}

func (s *taskService) reload(ctx context.Context, taskID int64) (*model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reloading task: %w", err)
	}
	return task, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/authz"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/store"
)

type ProjectService interface {
	Create(ctx context.Context, caller *model.User, params CreateProjectParams) (*model.Project, error)
	List(ctx context.Context, caller *model.User) ([]model.Project, error)
	Get(ctx context.Context, caller *model.User, projectID int64) (*model.Project, error)
	Update(ctx context.Context, caller *model.User, projectID int64, params UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, caller *model.User, projectID int64) error
}

type CreateProjectParams struct {
	Name        string
	Description *string
	// OrganizationID defaults to the caller's organization when nil.
	OrganizationID *int64
}

type UpdateProjectParams struct {
	Name        *string
	Description *string
}

type projectService struct {
	projectStore store.ProjectStore
	taskStore    store.TaskStore
}

func NewProjectService(projectStore store.ProjectStore, taskStore store.TaskStore) ProjectService {
	return &projectService{
		projectStore: projectStore,
		taskStore:    taskStore,
	}
}

func (s *projectService) Create(ctx context.Context, caller *model.User, params CreateProjectParams) (*model.Project, error) {
	targetOrgID := caller.OrganizationID
	if params.OrganizationID != nil {
		targetOrgID = *params.OrganizationID
	}

	if d := authz.CanCreateProject(caller, targetOrgID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	project := &model.Project{
		ID:             id.New(),
		Name:           params.Name,
		Description:    params.Description,
		OrganizationID: targetOrgID,
		CreatedBy:      caller.ID,
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		slog.ErrorContext(ctx, "failed to create project", "error", err, "organization_id", targetOrgID)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	slog.InfoContext(ctx, "project created", "project_id", project.ID, "created_by", caller.ID)
	return project, nil
}

// List scopes to the caller's organization. Members see only projects they
// created or are associated with through an assigned task.
func (s *projectService) List(ctx context.Context, caller *model.User) ([]model.Project, error) {
	if caller.Role == model.RoleOrganizationMember {
		projects, err := s.projectStore.ListForMember(ctx, caller.OrganizationID, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		return projects, nil
	}

	projects, err := s.projectStore.ListByOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, caller *model.User, projectID int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	if d := authz.SameTenant(caller, project.OrganizationID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	associated := false
	if caller.Role == model.RoleOrganizationMember && project.CreatedBy != caller.ID {
		associated, err = s.taskStore.HasProjectAssignee(ctx, project.ID, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("checking project association: %w", err)
		}
	}

	if d := authz.CanViewProject(caller, project.CreatedBy, associated); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return project, nil
}

func (s *projectService) Update(ctx context.Context, caller *model.User, projectID int64, params UpdateProjectParams) (*model.Project, error) {
	project, err := s.getForModify(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		project.Name = *params.Name
	}
	if params.Description != nil {
		project.Description = params.Description
	}

	if err := s.projectStore.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	slog.InfoContext(ctx, "project updated", "project_id", project.ID)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, caller *model.User, projectID int64) error {
	project, err := s.getForModify(ctx, caller, projectID)
	if err != nil {
		return err
	}

	if err := s.projectStore.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	slog.InfoContext(ctx, "project deleted", "project_id", project.ID, "deleted_by", caller.ID)
	return nil
}

func (s *projectService) getForModify(ctx context.Context, caller *model.User, projectID int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	if d := authz.SameTenant(caller, project.OrganizationID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	if d := authz.CanModifyProject(caller, project.CreatedBy); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return project, nil
}

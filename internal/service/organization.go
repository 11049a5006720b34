package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskplane.app/api-server/common"
	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/authz"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/store"
)

type OrganizationService interface {
	Create(ctx context.Context, caller *model.User, name string, slug *string) (*model.Organization, error)
	List(ctx context.Context, caller *model.User) ([]model.Organization, error)
	Get(ctx context.Context, caller *model.User, orgID int64) (*model.Organization, error)
	Update(ctx context.Context, caller *model.User, orgID int64, params UpdateOrganizationParams) (*model.Organization, error)
	Delete(ctx context.Context, caller *model.User, orgID int64) error
}

type UpdateOrganizationParams struct {
	Name *string
	Slug *string
}

type organizationService struct {
	orgStore store.OrganizationStore
}

func NewOrganizationService(orgStore store.OrganizationStore) OrganizationService {
	return &organizationService{orgStore: orgStore}
}

func (s *organizationService) Create(ctx context.Context, caller *model.User, name string, slug *string) (*model.Organization, error) {
	if d := authz.CanCreateOrganization(caller); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}
	finalSlug, err := common.Slugify(input, "org")
	if err != nil {
		return nil, apperr.BadRequest("organization name cannot be empty")
	}

	if _, err := s.orgStore.GetByNameOrSlug(ctx, name, finalSlug); err == nil {
		return nil, apperr.Conflict("organization with this name or slug already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking organization availability: %w", err)
	}

	org := &model.Organization{
		ID:   id.New(),
		Name: name,
		Slug: finalSlug,
	}

	if err := s.orgStore.Create(ctx, org); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("organization with this name or slug already exists")
		}
		slog.ErrorContext(ctx, "failed to create organization", "error", err, "name", name)
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "slug", org.Slug)
	return org, nil
}

// List returns all organizations for platform admins and only the caller's
// own organization otherwise.
func (s *organizationService) List(ctx context.Context, caller *model.User) ([]model.Organization, error) {
	if caller.Role == model.RolePlatformAdmin {
		orgs, err := s.orgStore.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing organizations: %w", err)
		}
		return orgs, nil
	}

	org, err := s.orgStore.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return []model.Organization{*org}, nil
}

func (s *organizationService) Get(ctx context.Context, caller *model.User, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("organization not found")
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	if d := authz.TenantOrPlatform(caller, org.ID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return org, nil
}

func (s *organizationService) Update(ctx context.Context, caller *model.User, orgID int64, params UpdateOrganizationParams) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("organization not found")
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	if d := authz.CanUpdateOrganization(caller, org.ID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if params.Name != nil {
		org.Name = *params.Name
	}
	if params.Slug != nil {
		slug, err := common.Slugify(*params.Slug, "")
		if err != nil {
			return nil, apperr.BadRequest("slug cannot be empty")
		}
		org.Slug = slug
	}

	if err := s.orgStore.Update(ctx, org); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("organization with this name or slug already exists")
		}
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization updated", "organization_id", org.ID)
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, caller *model.User, orgID int64) error {
	if d := authz.CanDeleteOrganization(caller); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}

	if err := s.orgStore.Delete(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("organization not found")
		}
		return fmt.Errorf("deleting organization: %w", err)
	}

	slog.InfoContext(ctx, "organization deleted", "organization_id", orgID, "deleted_by", caller.ID)
	return nil
}

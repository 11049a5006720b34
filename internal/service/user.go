package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/authz"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/store"
)

type UserService interface {
	Create(ctx context.Context, caller *model.User, params CreateUserParams) (*model.User, error)
	List(ctx context.Context, caller *model.User) ([]model.User, error)
	Get(ctx context.Context, caller *model.User, userID int64) (*model.User, error)
	Update(ctx context.Context, caller *model.User, userID int64, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, caller *model.User, userID int64) error
}

type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
	// OrganizationID targets a specific organization. Required for platform
	// admins; org admins are pinned to their own organization.
	OrganizationID *int64
}

type UpdateUserParams struct {
	Email    *string
	Name     *string
	Password *string
	Role     *model.Role
}

type userService struct {
	userStore store.UserStore
}

func NewUserService(userStore store.UserStore) UserService {
	return &userService{userStore: userStore}
}

func (s *userService) Create(ctx context.Context, caller *model.User, params CreateUserParams) (*model.User, error) {
	targetOrgID := caller.OrganizationID
	if caller.Role == model.RolePlatformAdmin {
		if params.OrganizationID == nil {
			return nil, apperr.BadRequest("organization id is required")
		}
		targetOrgID = *params.OrganizationID
	} else if params.OrganizationID != nil {
		targetOrgID = *params.OrganizationID
	}

	if d := authz.CanCreateUserIn(caller, targetOrgID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:             id.New(),
		Email:          params.Email,
		Name:           params.Name,
		PasswordHash:   string(hash),
		Role:           params.Role,
		OrganizationID: targetOrgID,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("user with this email already exists")
		}
		slog.ErrorContext(ctx, "failed to create user", "error", err, "email", params.Email)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created",
		"user_id", user.ID,
		"organization_id", user.OrganizationID,
		"role", user.Role,
	)
	return user, nil
}

// List returns visible users; platform admins see every organization, others
// their own. Platform admin accounts themselves are never listed.
func (s *userService) List(ctx context.Context, caller *model.User) ([]model.User, error) {
	if caller.Role == model.RolePlatformAdmin {
		users, err := s.userStore.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}
		return users, nil
	}

	users, err := s.userStore.ListByOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, caller *model.User, userID int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if d := authz.TenantOrPlatform(caller, user.OrganizationID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, caller *model.User, userID int64, params UpdateUserParams) (*model.User, error) {
	if d := authz.CanManageUsers(caller); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	user, err := s.Get(ctx, caller, userID)
	if err != nil {
		return nil, err
	}

	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "user updated", "user_id", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, caller *model.User, userID int64) error {
	if d := authz.CanManageUsers(caller); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}

	// Tenant check happens through Get. Note: nothing prevents an admin
	// from deleting their own account.
	if _, err := s.Get(ctx, caller, userID); err != nil {
		return err
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("deleting user: %w", err)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", userID, "deleted_by", caller.ID)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"taskplane.app/api-server/common"
	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/store"
)

const bcryptCost = 10

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

type RegisterParams struct {
	Email            string
	Password         string
	Name             string
	OrganizationName string
}

type AuthResult struct {
	User         *model.User
	Organization *model.Organization
	Token        string
}

type Profile struct {
	User         *model.User
	Organization *model.Organization
}

type authService struct {
	userStore store.UserStore
	orgStore  store.OrganizationStore
	txRunner  TxRunner
	tokens    *TokenManager
}

func NewAuthService(userStore store.UserStore, orgStore store.OrganizationStore, txRunner TxRunner, tokens *TokenManager) AuthService {
	return &authService{
		userStore: userStore,
		orgStore:  orgStore,
		txRunner:  txRunner,
		tokens:    tokens,
	}
}

// Register creates an organization and its first admin user atomically.
// The registering user becomes ORGANIZATION_ADMIN of the new organization.
func (s *authService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if _, err := s.userStore.GetByEmail(ctx, params.Email); err == nil {
		return nil, apperr.Conflict("user with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email availability: %w", err)
	}

	slug, err := common.Slugify(params.OrganizationName, "org")
	if err != nil {
		return nil, apperr.BadRequest("organization name cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	org := &model.Organization{
		ID:   id.New(),
		Name: params.OrganizationName,
		Slug: slug,
	}
	user := &model.User{
		ID:             id.New(),
		Email:          params.Email,
		Name:           params.Name,
		PasswordHash:   string(hash),
		Role:           model.RoleOrganizationAdmin,
		OrganizationID: org.ID,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Organizations().Create(ctx, org); err != nil {
			return err
		}
		return stores.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost a race on the email or organization name constraint.
			return nil, apperr.Conflict("user or organization already exists")
		}
		slog.ErrorContext(ctx, "registration failed", "error", err, "email", params.Email)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"organization_id", org.ID,
	)

	return &AuthResult{User: user, Organization: org, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a bad password so the response does not
			// reveal whether the account exists.
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	org, err := s.orgStore.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return &AuthResult{User: user, Organization: org, Token: token}, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	org, err := s.orgStore.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return &Profile{User: user, Organization: org}, nil
}

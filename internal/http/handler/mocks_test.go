package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
)

// asUser injects a caller the way RequireAuth would, without a real token.
func asUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

type mockAuthService struct {
	registerFn func(ctx context.Context, params service.RegisterParams) (*service.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*service.AuthResult, error)
	profileFn  func(ctx context.Context, userID int64) (*service.Profile, error)
}

func (m *mockAuthService) Register(ctx context.Context, params service.RegisterParams) (*service.AuthResult, error) {
	return m.registerFn(ctx, params)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (*service.Profile, error) {
	return m.profileFn(ctx, userID)
}

type mockOrganizationService struct {
	createFn func(ctx context.Context, caller *model.User, name string, slug *string) (*model.Organization, error)
	listFn   func(ctx context.Context, caller *model.User) ([]model.Organization, error)
	getFn    func(ctx context.Context, caller *model.User, orgID int64) (*model.Organization, error)
	updateFn func(ctx context.Context, caller *model.User, orgID int64, params service.UpdateOrganizationParams) (*model.Organization, error)
	deleteFn func(ctx context.Context, caller *model.User, orgID int64) error
}

func (m *mockOrganizationService) Create(ctx context.Context, caller *model.User, name string, slug *string) (*model.Organization, error) {
	return m.createFn(ctx, caller, name, slug)
}

func (m *mockOrganizationService) List(ctx context.Context, caller *model.User) ([]model.Organization, error) {
	return m.listFn(ctx, caller)
}

func (m *mockOrganizationService) Get(ctx context.Context, caller *model.User, orgID int64) (*model.Organization, error) {
	return m.getFn(ctx, caller, orgID)
}

func (m *mockOrganizationService) Update(ctx context.Context, caller *model.User, orgID int64, params service.UpdateOrganizationParams) (*model.Organization, error) {
	return m.updateFn(ctx, caller, orgID, params)
}

func (m *mockOrganizationService) Delete(ctx context.Context, caller *model.User, orgID int64) error {
	return m.deleteFn(ctx, caller, orgID)
}

type mockTaskService struct {
	createFn   func(ctx context.Context, caller *model.User, params service.CreateTaskParams) (*model.Task, error)
	listFn     func(ctx context.Context, caller *model.User) ([]model.Task, error)
	getFn      func(ctx context.Context, caller *model.User, taskID int64) (*model.Task, error)
	updateFn   func(ctx context.Context, caller *model.User, taskID int64, params service.UpdateTaskParams) (*model.Task, error)
	deleteFn   func(ctx context.Context, caller *model.User, taskID int64) error
	assignFn   func(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error)
	unassignFn func(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error)
}

func (m *mockTaskService) Create(ctx context.Context, caller *model.User, params service.CreateTaskParams) (*model.Task, error) {
	return m.createFn(ctx, caller, params)
}

func (m *mockTaskService) List(ctx context.Context, caller *model.User) ([]model.Task, error) {
	return m.listFn(ctx, caller)
}

func (m *mockTaskService) Get(ctx context.Context, caller *model.User, taskID int64) (*model.Task, error) {
	return m.getFn(ctx, caller, taskID)
}

func (m *mockTaskService) Update(ctx context.Context, caller *model.User, taskID int64, params service.UpdateTaskParams) (*model.Task, error) {
	return m.updateFn(ctx, caller, taskID, params)
}

func (m *mockTaskService) Delete(ctx context.Context, caller *model.User, taskID int64) error {
	return m.deleteFn(ctx, caller, taskID)
}

func (m *mockTaskService) Assign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error) {
	return m.assignFn(ctx, caller, taskID, userID)
}

func (m *mockTaskService) Unassign(ctx context.Context, caller *model.User, taskID, userID int64) (*model.Task, error) {
	return m.unassignFn(ctx, caller, taskID, userID)
}

package service_test

import (
	"context"

	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
	"taskplane.app/api-server/internal/store"
)

type mockUserStore struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
	updateFn      func(ctx context.Context, user *model.User) error
	deleteFn      func(ctx context.Context, id int64) error
	listFn        func(ctx context.Context) ([]model.User, error)
	listByOrgFn   func(ctx context.Context, orgID int64) ([]model.User, error)
	countInOrgFn  func(ctx context.Context, ids []int64, orgID int64) (int, error)
	createCalls   int
	deleteCalls   int
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.User{}, nil
}

func (m *mockUserStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return []model.User{}, nil
}

func (m *mockUserStore) CountInOrganization(ctx context.Context, ids []int64, orgID int64) (int, error) {
	if m.countInOrgFn != nil {
		return m.countInOrgFn(ctx, ids, orgID)
	}
	return len(ids), nil
}

type mockOrganizationStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*model.Organization, error)
	getByNameOrSlugFn func(ctx context.Context, name, slug string) (*model.Organization, error)
	createFn          func(ctx context.Context, org *model.Organization) error
	updateFn          func(ctx context.Context, org *model.Organization) error
	deleteFn          func(ctx context.Context, id int64) error
	listFn            func(ctx context.Context) ([]model.Organization, error)
	createCalls       int
	deleteCalls       int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetByNameOrSlug(ctx context.Context, name, slug string) (*model.Organization, error) {
	if m.getByNameOrSlugFn != nil {
		return m.getByNameOrSlugFn(ctx, name, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, org *model.Organization) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationStore) List(ctx context.Context) ([]model.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Organization{}, nil
}

type mockProjectStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.Project, error)
	createFn        func(ctx context.Context, project *model.Project) error
	updateFn        func(ctx context.Context, project *model.Project) error
	deleteFn        func(ctx context.Context, id int64) error
	listByOrgFn     func(ctx context.Context, orgID int64) ([]model.Project, error)
	listForMemberFn func(ctx context.Context, orgID, userID int64) ([]model.Project, error)
	createCalls     int
	deleteCalls     int
}

func (m *mockProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProjectStore) Create(ctx context.Context, project *model.Project) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectStore) Update(ctx context.Context, project *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, project)
	}
	return nil
}

func (m *mockProjectStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProjectStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return []model.Project{}, nil
}

func (m *mockProjectStore) ListForMember(ctx context.Context, orgID, userID int64) ([]model.Project, error) {
	if m.listForMemberFn != nil {
		return m.listForMemberFn(ctx, orgID, userID)
	}
	return []model.Project{}, nil
}

type mockTaskStore struct {
	getByIDFn            func(ctx context.Context, id int64) (*model.Task, error)
	createFn             func(ctx context.Context, task *model.Task, assigneeIDs []int64) error
	updateFn             func(ctx context.Context, task *model.Task) error
	deleteFn             func(ctx context.Context, id int64) error
	listByOrgFn          func(ctx context.Context, orgID int64) ([]model.Task, error)
	listByAssigneeFn     func(ctx context.Context, orgID, userID int64) ([]model.Task, error)
	replaceAssigneesFn   func(ctx context.Context, taskID int64, assigneeIDs []int64) error
	addAssigneeFn        func(ctx context.Context, taskID, userID int64) error
	removeAssigneeFn     func(ctx context.Context, taskID, userID int64) error
	hasProjectAssigneeFn func(ctx context.Context, projectID, userID int64) (bool, error)
	createCalls          int
	addAssigneeCalls     int
	removeAssigneeCalls  int
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTaskStore) Create(ctx context.Context, task *model.Task, assigneeIDs []int64) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, task, assigneeIDs)
	}
	return nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *model.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Task, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return []model.Task{}, nil
}

func (m *mockTaskStore) ListByAssignee(ctx context.Context, orgID, userID int64) ([]model.Task, error) {
	if m.listByAssigneeFn != nil {
		return m.listByAssigneeFn(ctx, orgID, userID)
	}
	return []model.Task{}, nil
}

func (m *mockTaskStore) ReplaceAssignees(ctx context.Context, taskID int64, assigneeIDs []int64) error {
	if m.replaceAssigneesFn != nil {
		return m.replaceAssigneesFn(ctx, taskID, assigneeIDs)
	}
	return nil
}

func (m *mockTaskStore) AddAssignee(ctx context.Context, taskID, userID int64) error {
	m.addAssigneeCalls++
	if m.addAssigneeFn != nil {
		return m.addAssigneeFn(ctx, taskID, userID)
	}
	return nil
}

func (m *mockTaskStore) RemoveAssignee(ctx context.Context, taskID, userID int64) error {
	m.removeAssigneeCalls++
	if m.removeAssigneeFn != nil {
		return m.removeAssigneeFn(ctx, taskID, userID)
	}
	return nil
}

func (m *mockTaskStore) HasProjectAssignee(ctx context.Context, projectID, userID int64) (bool, error) {
	if m.hasProjectAssigneeFn != nil {
		return m.hasProjectAssigneeFn(ctx, projectID, userID)
	}
	return false, nil
}

type mockStoreProvider struct {
	users    store.UserStore
	orgs     store.OrganizationStore
	projects store.ProjectStore
	tasks    store.TaskStore
}

func (m *mockStoreProvider) Users() store.UserStore {
	return m.users
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore {
	return m.orgs
}

func (m *mockStoreProvider) Projects() store.ProjectStore {
	return m.projects
}

func (m *mockStoreProvider) Tasks() store.TaskStore {
	return m.tasks
}

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(&mockStoreProvider{})
}

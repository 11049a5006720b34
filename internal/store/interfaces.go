package store

import (
	"context"
	"errors"

	"taskplane.app/api-server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
// The database is the final arbiter of uniqueness races.
var ErrDuplicate = errors.New("already exists")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	// List returns all users except platform admins.
	List(ctx context.Context) ([]model.User, error)
	// ListByOrganization returns the organization's users except platform admins.
	ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error)
	// CountInOrganization counts how many of the given ids exist in the organization.
	CountInOrganization(ctx context.Context, ids []int64, orgID int64) (int, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetByNameOrSlug(ctx context.Context, name, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Organization, error)
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error)
	// ListForMember returns projects the user created or is associated with
	// through an assigned task.
	ListForMember(ctx context.Context, orgID, userID int64) ([]model.Project, error)
}

// TaskStore defines the contract for task data access.
// Tasks are always loaded with their assignee list.
type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	Create(ctx context.Context, task *model.Task, assigneeIDs []int64) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Task, error)
	ListByAssignee(ctx context.Context, orgID, userID int64) ([]model.Task, error)
	ReplaceAssignees(ctx context.Context, taskID int64, assigneeIDs []int64) error
	AddAssignee(ctx context.Context, taskID, userID int64) error
	RemoveAssignee(ctx context.Context, taskID, userID int64) error
	// HasProjectAssignee reports whether the user is assigned to any task in the project.
	HasProjectAssignee(ctx context.Context, projectID, userID int64) (bool, error)
}

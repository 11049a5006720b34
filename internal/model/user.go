package model

import "time"

type Role string

const (
	RolePlatformAdmin      Role = "PLATFORM_ADMIN"
	RoleOrganizationAdmin  Role = "ORGANIZATION_ADMIN"
	RoleOrganizationMember Role = "ORGANIZATION_MEMBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleOrganizationAdmin, RoleOrganizationMember:
		return true
	}
	return false
}

// IsAdmin reports whether the role may manage users.
func (r Role) IsAdmin() bool {
	return r == RolePlatformAdmin || r == RoleOrganizationAdmin
}

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"` // never serialized
	Role           Role      `json:"role"`
	OrganizationID int64     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

package dto

import (
	"time"

	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=255"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Role     string `json:"role" binding:"required,oneof=PLATFORM_ADMIN ORGANIZATION_ADMIN ORGANIZATION_MEMBER"`
	// Required for platform admins; ignored-if-matching for org admins.
	OrganizationID *ID `json:"organizationId,omitempty"`
}

func (r *CreateUserRequest) ToParams() service.CreateUserParams {
	params := service.CreateUserParams{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     model.Role(r.Role),
	}
	if r.OrganizationID != nil {
		orgID := int64(*r.OrganizationID)
		params.OrganizationID = &orgID
	}
	return params
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=255"`
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=PLATFORM_ADMIN ORGANIZATION_ADMIN ORGANIZATION_MEMBER"`
}

func (r *UpdateUserRequest) ToParams() service.UpdateUserParams {
	params := service.UpdateUserParams{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
	if r.Role != nil {
		role := model.Role(*r.Role)
		params.Role = &role
	}
	return params
}

type UserResponse struct {
	ID             ID        `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	OrganizationID ID        `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:             ID(u.ID),
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		OrganizationID: ID(u.OrganizationID),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = *ToUserResponse(&users[i])
	}
	return out
}

package dto

import (
	"taskplane.app/api-server/internal/service"
)

type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email,max=255"`
	Password         string `json:"password" binding:"required,min=8,max=255"`
	Name             string `json:"name" binding:"required,min=1,max=255"`
	OrganizationName string `json:"organizationName" binding:"required,min=1,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User         *UserResponse         `json:"user"`
	Organization *OrganizationResponse `json:"organization"`
	Token        string                `json:"token"`
}

func ToAuthResponse(result *service.AuthResult) *AuthResponse {
	return &AuthResponse{
		User:         ToUserResponse(result.User),
		Organization: ToOrganizationResponse(result.Organization),
		Token:        result.Token,
	}
}

type ProfileResponse struct {
	User         *UserResponse         `json:"user"`
	Organization *OrganizationResponse `json:"organization"`
}

func ToProfileResponse(profile *service.Profile) *ProfileResponse {
	return &ProfileResponse{
		User:         ToUserResponse(profile.User),
		Organization: ToOrganizationResponse(profile.Organization),
	}
}

package dto

import (
	"time"

	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
)

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	// Defaults to the caller's organization when omitted.
	OrganizationID *ID `json:"organizationId,omitempty"`
}

func (r *CreateProjectRequest) ToParams() service.CreateProjectParams {
	params := service.CreateProjectParams{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.OrganizationID != nil {
		orgID := int64(*r.OrganizationID)
		params.OrganizationID = &orgID
	}
	return params
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

func (r *UpdateProjectRequest) ToParams() service.UpdateProjectParams {
	return service.UpdateProjectParams{
		Name:        r.Name,
		Description: r.Description,
	}
}

type ProjectResponse struct {
	ID             ID        `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	OrganizationID ID        `json:"organizationId"`
	CreatedBy      ID        `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToProjectResponse(p *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:             ID(p.ID),
		Name:           p.Name,
		Description:    p.Description,
		OrganizationID: ID(p.OrganizationID),
		CreatedBy:      ID(p.CreatedBy),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProjectResponses(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = *ToProjectResponse(&projects[i])
	}
	return out
}

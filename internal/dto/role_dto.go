package dto

import (
	"time"

	"accounthub/internal/entity"
)

type CreateRoleRequest struct {
	Name          string   `json:"name" validate:"required"`
	PermissionIDs []string `json:"permission_ids" validate:"required,min=1"`
}

type UpdateRoleRequest struct {
	Name          string   `json:"name" validate:"required"`
	PermissionIDs []string `json:"permission_ids" validate:"required,min=1"`
}

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type PermissionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func RoleResponseFromEntity(role *entity.Role) RoleResponse {
	permissions := make([]PermissionResponse, 0, len(role.Permissions))
	for _, permission := range role.Permissions {
		permissions = append(permissions, PermissionResponse{
			ID:   permission.ID.String(),
			Name: permission.Name,
		})
	}
	return RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Permissions: permissions,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func RoleResponsesFromEntities(roles []entity.Role) []RoleResponse {
	responses := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, RoleResponseFromEntity(&roles[i]))
	}
	return responses
}

func PermissionResponsesFromEntities(permissions []entity.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		responses = append(responses, PermissionResponse{
			ID:   permission.ID.String(),
			Name: permission.Name,
		})
	}
	return responses
}

package dto

import (
	"time"

	"github.com/google/uuid"

	rbacModel "school_backend/internals/features/users/rbac/model"
)

/* ===================== REQUESTS ===================== */

type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

func (r *CreateRoleRequest) ToModel() *rbacModel.RoleModel {
	return &rbacModel.RoleModel{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    true,
	}
}

type UpdateRoleRequest struct {
	Description *string `json:"description" validate:"omitempty,max=200"`
}

// Role names are referenced from JWT claims and seed data; only the
// description is mutable.
func (r *UpdateRoleRequest) ApplyToModel(m *rbacModel.RoleModel) {
	if r.Description != nil {
		m.Description = r.Description
	}
}

type CreatePermissionRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=50"`
	Description  *string `json:"description" validate:"omitempty,max=200"`
	ResourceName string  `json:"resource_name" validate:"required,min=2,max=50"`
	Type         string  `json:"type" validate:"required,oneof=CREATE READ UPDATE DELETE MANAGE"`
}

func (r *CreatePermissionRequest) ToModel() *rbacModel.PermissionModel {
	return &rbacModel.PermissionModel{
		Name:         r.Name,
		Description:  r.Description,
		ResourceName: r.ResourceName,
		Type:         rbacModel.PermissionType(r.Type),
		IsActive:     true,
	}
}

type UpdatePermissionRequest struct {
	Description *string `json:"description" validate:"omitempty,max=200"`
}

// Permission name, resource and type are referenced from JWT claims and
// route gates; only the description is mutable.
func (r *UpdatePermissionRequest) ApplyToModel(m *rbacModel.PermissionModel) {
	if r.Description != nil {
		m.Description = r.Description
	}
}

/* ===================== RESPONSES ===================== */

type PermissionResponse struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Description  *string                  `json:"description,omitempty"`
	ResourceName string                   `json:"resource_name"`
	Type         rbacModel.PermissionType `json:"type"`
	IsActive     bool                     `json:"is_active"`
}

func NewPermissionResponse(m *rbacModel.PermissionModel) *PermissionResponse {
	if m == nil {
		return nil
	}
	return &PermissionResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		ResourceName: m.ResourceName,
		Type:         m.Type,
		IsActive:     m.IsActive,
	}
}

func NewPermissionResponses(ms []rbacModel.PermissionModel) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewPermissionResponse(&ms[i]))
	}
	return out
}

type RoleResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	Permissions []PermissionResponse `json:"permissions"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
}

func NewRoleResponse(m *rbacModel.RoleModel) *RoleResponse {
	if m == nil {
		return nil
	}
	return &RoleResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: NewPermissionResponses(m.Permissions),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func NewRoleResponses(ms []rbacModel.RoleModel) []RoleResponse {
	out := make([]RoleResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewRoleResponse(&ms[i]))
	}
	return out
}

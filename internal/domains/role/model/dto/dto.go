package dto

import (
	"slices"

	"bistro/internal/domains/role/model"
	"bistro/shared"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoleRequest struct {
	Name        string   `json:"name"                  validate:"required,min=2,max=50"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions"           validate:"unique,dive,oneof=menu:write offer:write cart:use order:read order:write order:delete reservation:read reservation:write reservation:delete user:manage role:manage media:upload payment:create"`
}

func (r *CreateRoleRequest) ToModel(username string) model.Role {
	return model.Role{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Description: r.Description,
		Metadata:    gModel.NewMetadata(timezone.Now(), username),
	}
}

func ToPermissionModels(roleID string, permissions []string) []model.RolePermission {
	models := make([]model.RolePermission, len(permissions))
	for i, permission := range permissions {
		models[i] = model.RolePermission{RoleID: roleID, Permission: permission}
	}

	return models
}

type UpdateRoleRequest struct {
	Name        *string  `db:"name"        json:"name,omitempty"        validate:"omitempty,min=2,max=50"`
	Description *string  `db:"description" json:"description,omitempty" validate:"omitempty,max=255"`
	Permissions []string `db:"-"           json:"permissions,omitempty" validate:"omitempty,unique,dive,oneof=menu:write offer:write cart:use order:read order:write order:delete reservation:read reservation:write reservation:delete user:manage role:manage media:upload payment:create"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	gDto.Metadata
}

func (r *RoleResponse) FromModel(role model.Role, permissions []model.RolePermission) {
	r.ID = role.ID
	r.Name = role.Name
	r.Description = role.Description
	r.Permissions = PermissionNames(permissions)
	r.Metadata.FromModel(role.Metadata)
}

// PermissionNames returns the sorted permission strings of a role.
func PermissionNames(permissions []model.RolePermission) []string {
	names := make([]string, len(permissions))
	for i, permission := range permissions {
		names[i] = permission.Permission
	}

	slices.Sort(names)

	return names
}

type GetRolesResponse struct {
	Roles     []RoleResponse `json:"roles"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRolesResponse) FromModels(models []model.Role, permissions []model.RolePermission, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byRole := map[string][]model.RolePermission{}
	for _, permission := range permissions {
		byRole[permission.RoleID] = append(byRole[permission.RoleID], permission)
	}

	r.Roles = make([]RoleResponse, len(models))
	for i, mod := range models {
		r.Roles[i].FromModel(mod, byRole[mod.ID])
	}
}

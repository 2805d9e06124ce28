package model

import "bistro/shared/model"

const (
	TableName  = "roles"
	EntityName = "role"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

const (
	PermissionTableName  = "role_permissions"
	PermissionEntityName = "role permission"

	FieldRoleID     = "role_id"
	FieldPermission = "permission"
)

const (
	PermissionMenuWrite         = "menu:write"
	PermissionOfferWrite        = "offer:write"
	PermissionCartUse           = "cart:use"
	PermissionOrderRead         = "order:read"
	PermissionOrderWrite        = "order:write"
	PermissionOrderDelete       = "order:delete"
	PermissionReservationRead   = "reservation:read"
	PermissionReservationWrite  = "reservation:write"
	PermissionReservationDelete = "reservation:delete"
	PermissionUserManage        = "user:manage"
	PermissionRoleManage        = "role:manage"
	PermissionMediaUpload       = "media:upload"
	PermissionPaymentCreate     = "payment:create"
)

type Role struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	model.Metadata
}

type RolePermission struct {
	RoleID     string `db:"role_id"`
	Permission string `db:"permission"`
}

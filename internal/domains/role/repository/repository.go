package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/role/model"
	gDto "bistro/shared/dto"
	gRepo "bistro/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Role interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Role) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Role, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Role, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Permission interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.RolePermission) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RolePermission, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type roleRepositoryImpl struct {
	gRepo.Repository[model.Role]
}

func New(db *postgres.Connection, otel otel.Otel) Role {
	return &roleRepositoryImpl{
		Repository: gRepo.NewRepository[model.Role](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type permissionRepositoryImpl struct {
	gRepo.Repository[model.RolePermission]
}

func NewPermission(db *postgres.Connection, otel otel.Otel) Permission {
	return &permissionRepositoryImpl{
		Repository: gRepo.NewRepository[model.RolePermission](model.PermissionEntityName, model.PermissionTableName, model.FieldRoleID, db, otel),
	}
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/internal/domains/role/model"
	"bistro/internal/domains/role/model/dto"
	"bistro/internal/domains/role/repository"
	userModel "bistro/internal/domains/user/model"
	userRepo "bistro/internal/domains/user/repository"
	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	gRepo "bistro/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRole         = "role:get"
	cacheGetAllRole      = "role:gets"
	cacheCountRole       = "role:count"
	cacheRolePermissions = "role:permissions"
)

type Role interface {
	Create(ctx context.Context, req dto.CreateRoleRequest) (dto.RoleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRolesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoleResponse, error)
	Update(ctx context.Context, req dto.UpdateRoleRequest, id string) error
	Delete(ctx context.Context, id string) error
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

type serviceImpl struct {
	repo           repository.Role
	permissionRepo repository.Permission
	userRepo       userRepo.User
	tx             gRepo.Transactor
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Role,
	permissionRepo repository.Permission,
	userRepo userRepo.User,
	tx gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Role {
	return &serviceImpl{
		repo:           repo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		tx:             tx,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}
}

func filterPermissionsOf(roleIDs ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoleID,
				Operator: gDto.FilterOperatorIn,
				Value:    roleIDs,
				Table:    model.PermissionTableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoleRequest) (res dto.RoleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.repo.Exist(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if role exists")

		return res, fmt.Errorf("failed to check if role exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("role already exists") // nolint:wrapcheck
	}

	role := req.ToModel(shared.UserFromContext(ctx))
	permissions := dto.ToPermissionModels(role.ID, req.Permissions)

	err = s.tx.WithinTx(ctx, nil, func(sqltx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, sqltx, role); err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}

		if err := s.permissionRepo.InsertBulkTx(ctx, sqltx, permissions); err != nil {
			return fmt.Errorf("failed to create role permissions: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create role")

		return res, err
	}

	res.FromModel(role, permissions)

	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllRole)
	shared.InvalidateCaches(c, s.cache, cacheCountRole)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRolesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRole, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for roles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count roles")

		return res, fmt.Errorf("failed to count roles: %w", err)
	}

	roles, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get roles")

		return res, fmt.Errorf("failed to get roles: %w", err)
	}

	var permissions []model.RolePermission

	if len(roles) > 0 {
		roleIDs := make([]string, len(roles))
		for i, role := range roles {
			roleIDs[i] = role.ID
		}

		permissions, err = s.permissionRepo.GetAll(ctx, gDto.QueryParams{}, filterPermissionsOf(roleIDs...))
		if err != nil {
			log.Error().Err(err).Msg("failed to get role permissions")

			return res, fmt.Errorf("failed to get role permissions: %w", err)
		}
	}

	res.FromModels(roles, permissions, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save roles to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRole, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count roles")

		return res, fmt.Errorf("failed to count roles: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save role count to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetRole, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for role")

		return res, nil
	}

	role, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get role")

		return res, fmt.Errorf("failed to get role: %w", err)
	}

	if role.ID == constant.Empty {
		return res, failure.NotFound("role not found") // nolint:wrapcheck
	}

	permissions, err := s.permissionRepo.GetAll(ctx, gDto.QueryParams{}, filterPermissionsOf(role.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get role permissions")

		return res, fmt.Errorf("failed to get role permissions: %w", err)
	}

	res.FromModel(role, permissions)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save role to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	role, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get role")

		return fmt.Errorf("failed to get role: %w", err)
	}

	if role.ID == constant.Empty {
		return failure.NotFound("role not found") // nolint:wrapcheck
	}

	if req.Name != nil && *req.Name != role.Name {
		exists, err := s.repo.Exist(ctx, filterByName(*req.Name))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if role exists")

			return fmt.Errorf("failed to check if role exists: %w", err)
		}

		if exists {
			return failure.Conflict("role already exists") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, shared.UserFromContext(ctx))

	err = s.tx.WithinTx(ctx, nil, func(sqltx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, sqltx, updatedFields, filter); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}

		if req.Permissions == nil {
			return nil
		}

		if err := s.permissionRepo.DeleteTx(ctx, sqltx, filterPermissionsOf(role.ID)); err != nil {
			return fmt.Errorf("failed to clear role permissions: %w", err)
		}

		if err := s.permissionRepo.InsertBulkTx(ctx, sqltx, dto.ToPermissionModels(role.ID, req.Permissions)); err != nil {
			return fmt.Errorf("failed to replace role permissions: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update role")

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	role, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get role")

		return fmt.Errorf("failed to get role: %w", err)
	}

	if role.ID == constant.Empty {
		return failure.NotFound("role not found") // nolint:wrapcheck
	}

	assigned, err := s.userRepo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldRole,
				Operator: gDto.FilterOperatorEq,
				Value:    role.Name,
				Table:    userModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check role assignments")

		return fmt.Errorf("failed to check role assignments: %w", err)
	}

	if assigned {
		return failure.Conflict("role is still assigned to users") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete role")

		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// HasPermission reports whether role grants permission. The superadmin role grants everything.
func (s *serviceImpl) HasPermission(ctx context.Context, role, permission string) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasPermission")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if role == constant.RoleSuperAdmin {
		return true, nil
	}

	if role == constant.Empty {
		return false, nil
	}

	cacheKey := shared.BuildCacheKey(cacheRolePermissions, role)

	var permissions []string

	err = s.cache.Get(ctx, cacheKey, &permissions)
	if err == nil {
		return slices.Contains(permissions, permission), nil
	}

	roleModel, err := s.repo.Get(ctx, filterByName(role))
	if err != nil {
		log.Error().Err(err).Str("role", role).Msg("failed to get role")

		return false, fmt.Errorf("failed to get role: %w", err)
	}

	permissions = []string{}

	if roleModel.ID != constant.Empty {
		models, err := s.permissionRepo.GetAll(ctx, gDto.QueryParams{}, filterPermissionsOf(roleModel.ID))
		if err != nil {
			log.Error().Err(err).Str("role", role).Msg("failed to get role permissions")

			return false, fmt.Errorf("failed to get role permissions: %w", err)
		}

		permissions = dto.PermissionNames(models)
	}

	if err := s.cache.Save(ctx, cacheKey, permissions, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save role permissions to cache")
	}

	return slices.Contains(permissions, permission), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRole, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete role cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllRole)
	shared.InvalidateCaches(c, s.cache, cacheCountRole)
	shared.InvalidateCaches(c, s.cache, cacheRolePermissions)
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./category.go -destination=./mocks/category_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/internal/domains/menu/model"
	"bistro/internal/domains/menu/model/dto"
	"bistro/internal/domains/menu/repository"
	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory      = "menu:category:get"
	cacheGetAllCategory   = "menu:category:gets"
	cacheCountCategory    = "menu:category:count"
	messageCategoryAbsent = "menu category not found"
)

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type categoryServiceImpl struct {
	repo     repository.Category
	itemRepo repository.Item
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func NewCategory(repo repository.Category, itemRepo repository.Item, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &categoryServiceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func filterCategoryByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCategoryName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
				Table:    model.CategoryTableName,
			},
		},
	}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.repo.Exist(ctx, filterCategoryByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return res, fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("menu category already exists") // nolint:wrapcheck
	}

	category := req.ToModel(shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, category); err != nil {
		log.Error().Err(err).Msg("failed to create menu category")

		return res, fmt.Errorf("failed to create menu category: %w", err)
	}

	res.FromModel(category)

	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
	shared.InvalidateCaches(c, s.cache, cacheCountCategory)

	return res, nil
}

func (s *categoryServiceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu categories")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu categories")

		return res, fmt.Errorf("failed to count menu categories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu categories")

		return res, fmt.Errorf("failed to get menu categories: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu categories to cache")
	}

	return res, nil
}

func (s *categoryServiceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu categories")

		return res, fmt.Errorf("failed to count menu categories: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu category count to cache")
	}

	return res, nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu category")

		return res, fmt.Errorf("failed to get menu category: %w", err)
	}

	if category.ID == constant.Empty {
		return res, failure.NotFound(messageCategoryAbsent) // nolint:wrapcheck
	}

	res.FromModel(category)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu category to cache")
	}

	return res, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateCategoryRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageCategoryAbsent) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, shared.UserFromContext(ctx))
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update menu category")

		return fmt.Errorf("failed to update menu category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Category.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageCategoryAbsent) // nolint:wrapcheck
	}

	inUse, err := s.itemRepo.Exist(ctx, shared.FilterByID(id, model.FieldCategoryID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu category usage")

		return fmt.Errorf("failed to check menu category usage: %w", err)
	}

	if inUse {
		return failure.Conflict("menu category still has items") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete menu category")

		return fmt.Errorf("failed to delete menu category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *categoryServiceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete menu category from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
	shared.InvalidateCaches(c, s.cache, cacheCountCategory)
	// item responses embed the category name
	shared.InvalidateCaches(c, s.cache, cacheItemPrefix)
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/internal/domains/cart/model"
	"bistro/internal/domains/cart/model/dto"
	"bistro/internal/domains/cart/repository"
	menuModel "bistro/internal/domains/menu/model"
	menuRepo "bistro/internal/domains/menu/repository"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"

	"github.com/rs/zerolog/log"
)

const messageLineAbsent = "cart item not found"

type Cart interface {
	Add(ctx context.Context, req dto.AddToCartRequest) (dto.LineResponse, error)
	Get(ctx context.Context) (dto.CartResponse, error)
	Update(ctx context.Context, req dto.UpdateCartRequest, id string) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type serviceImpl struct {
	repo     repository.Cart
	itemRepo menuRepo.Item
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Cart, itemRepo menuRepo.Item, cfg *config.Config, otel otel.Otel) Cart {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddToCartRequest) (res dto.LineResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return res, err
	}

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ItemID, menuModel.FieldID, menuModel.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return res, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	line := req.ToModel(user, item)

	if err = s.repo.Insert(ctx, line); err != nil {
		log.Error().Err(err).Msg("failed to add item to cart")

		return res, fmt.Errorf("failed to add item to cart: %w", err)
	}

	res.FromModel(line)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}
	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)

	lines, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cart")

		return res, fmt.Errorf("failed to get cart: %w", err)
	}

	res.FromModels(lines)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCartRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return err
	}

	if req == (dto.UpdateCartRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByOwner(id, model.FieldID, user, model.FieldUserID, model.TableName)

	if err = s.ensureLine(ctx, filter); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update cart item")

		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByOwner(id, model.FieldID, user, model.FieldUserID, model.TableName)

	if err = s.ensureLine(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove cart item")

		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

func (s *serviceImpl) Clear(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to clear cart")

		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// ensureLine reports a missing line, including one owned by another user, as not found.
func (s *serviceImpl) ensureLine(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cart item exists")

		return fmt.Errorf("failed to check if cart item exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageLineAbsent) // nolint:wrapcheck
	}

	return nil
}

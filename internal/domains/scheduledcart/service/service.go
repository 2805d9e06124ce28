package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"bistro/config"
	"bistro/infras/otel"
	menuModel "bistro/internal/domains/menu/model"
	menuRepo "bistro/internal/domains/menu/repository"
	"bistro/internal/domains/scheduledcart/model"
	"bistro/internal/domains/scheduledcart/model/dto"
	"bistro/internal/domains/scheduledcart/repository"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/timezone"

	"github.com/rs/zerolog/log"
)

const messageLineAbsent = "scheduled cart item not found"

type ScheduledCart interface {
	Add(ctx context.Context, req dto.AddToScheduledCartRequest) (dto.LineResponse, error)
	Get(ctx context.Context) (dto.ScheduledCartResponse, error)
	Update(ctx context.Context, req dto.UpdateScheduledCartRequest, id string) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type serviceImpl struct {
	repo     repository.ScheduledCart
	itemRepo menuRepo.Item
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.ScheduledCart, itemRepo menuRepo.Item, cfg *config.Config, otel otel.Otel) ScheduledCart {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddToScheduledCartRequest) (res dto.LineResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return res, err
	}

	date, clock, err := normalizeSlot(req.ScheduledDate, req.ScheduledTime)
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

	line := req.ToModel(user, item, date, clock)

	if err = s.repo.Insert(ctx, line); err != nil {
		log.Error().Err(err).Msg("failed to add item to scheduled cart")

		return res, fmt.Errorf("failed to add item to scheduled cart: %w", err)
	}

	res.FromModel(line)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ScheduledCartResponse, err error) {
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
		log.Error().Err(err).Msg("failed to get scheduled cart")

		return res, fmt.Errorf("failed to get scheduled cart: %w", err)
	}

	res.FromModels(lines)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateScheduledCartRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return err
	}

	if req == (dto.UpdateScheduledCartRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.ScheduledDate != nil {
		date, err := timezone.ParseDate(*req.ScheduledDate)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		updatedFields[model.FieldScheduledDate] = date
	}

	if req.ScheduledTime != nil {
		clock, err := timezone.NormalizeClock(*req.ScheduledTime)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		updatedFields[model.FieldScheduledTime] = clock
	}

	filter := shared.FilterByOwner(id, model.FieldID, user, model.FieldUserID, model.TableName)

	if err = s.ensureLine(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update scheduled cart item")

		return fmt.Errorf("failed to update scheduled cart item: %w", err)
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
		log.Error().Err(err).Msg("failed to remove scheduled cart item")

		return fmt.Errorf("failed to remove scheduled cart item: %w", err)
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
		log.Error().Err(err).Msg("failed to clear scheduled cart")

		return fmt.Errorf("failed to clear scheduled cart: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureLine(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if scheduled cart item exists")

		return fmt.Errorf("failed to check if scheduled cart item exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageLineAbsent) // nolint:wrapcheck
	}

	return nil
}

func normalizeSlot(date, clock string) (time.Time, string, error) {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return time.Time{}, constant.Empty, failure.BadRequest(err) // nolint:wrapcheck
	}

	normalized, err := timezone.NormalizeClock(clock)
	if err != nil {
		return time.Time{}, constant.Empty, failure.BadRequest(err) // nolint:wrapcheck
	}

	return day, normalized, nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bistro/config"
	"bistro/infras/otel"
	menuModel "bistro/internal/domains/menu/model"
	menuRepo "bistro/internal/domains/menu/repository"
	"bistro/internal/domains/offer/model"
	"bistro/internal/domains/offer/model/dto"
	"bistro/internal/domains/offer/repository"
	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/money"
	gRepo "bistro/shared/repository"
	"bistro/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetOffer    = "offer:get"
	cacheGetAllOffer = "offer:gets"
	cacheCountOffer  = "offer:count"

	minOfferItems      = 2
	messageOfferAbsent = "offer not found"
)

type Offer interface {
	Create(ctx context.Context, req dto.CreateOfferRequest) (dto.OfferResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOffersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OfferResponse, error)
	Update(ctx context.Context, req dto.UpdateOfferRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Offer
	itemRepo repository.OfferItem
	menuRepo menuRepo.Item
	tx       gRepo.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Offer, itemRepo repository.OfferItem, menuRepo menuRepo.Item, tx gRepo.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Offer {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		menuRepo: menuRepo,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// selectItems dedupes ids and makes sure every one of them is on the menu.
func (s *serviceImpl) selectItems(ctx context.Context, ids []string) ([]string, error) {
	unique := dto.UniqueItems(ids)
	if len(unique) < minOfferItems {
		return nil, failure.BadRequestFromString("selectedItems must contain at least 2 distinct menu items") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: menuModel.FieldID, Value: unique, Operator: gDto.FilterOperatorIn, Table: menuModel.ItemTableName},
		},
	}

	found, err := s.menuRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count selected menu items")

		return nil, fmt.Errorf("failed to count selected menu items: %w", err)
	}

	if found != len(unique) {
		return nil, failure.BadRequestFromString("selectedItems references a menu item that does not exist") // nolint:wrapcheck
	}

	return unique, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOfferRequest) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(dto.UniqueItems(req.SelectedItems)) < minOfferItems {
		return res, failure.BadRequestFromString("selectedItems must contain at least 2 distinct menu items") // nolint:wrapcheck
	}

	if money.IsNegative(req.TotalPrice) || money.IsNegative(req.DiscountedPrice) {
		return res, failure.BadRequestFromString("prices must not be negative") // nolint:wrapcheck
	}

	start, err := timezone.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	end, err := timezone.ParseDate(req.EndDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	itemIDs, err := s.selectItems(ctx, req.SelectedItems)
	if err != nil {
		return res, err
	}

	offer, items := req.ToModels(shared.UserFromContext(ctx), itemIDs, start, end)

	err = s.tx.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, offer); err != nil {
			return fmt.Errorf("failed to insert offer: %w", err)
		}

		if err := s.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to insert offer items: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create offer")

		return res, fmt.Errorf("failed to create offer: %w", err)
	}

	res.FromModel(offer, items)

	s.invalidate(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOffersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOffer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for offers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count offers")

		return res, fmt.Errorf("failed to count offers: %w", err)
	}

	offers, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get offers")

		return res, fmt.Errorf("failed to get offers: %w", err)
	}

	var items []model.OfferItem

	if len(offers) > 0 {
		ids := make([]string, len(offers))
		for i, offer := range offers {
			ids[i] = offer.ID
		}

		items, err = s.itemRepo.GetAll(ctx, gDto.QueryParams{}, repository.FilterItemsOf(ids...))
		if err != nil {
			log.Error().Err(err).Msg("failed to get offer items")

			return res, fmt.Errorf("failed to get offer items: %w", err)
		}
	}

	res.FromModels(offers, items, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save offers to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOffer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count offers")

		return res, fmt.Errorf("failed to count offers: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save offer count to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetOffer, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for offer")

		return res, nil
	}

	offer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get offer")

		return res, fmt.Errorf("failed to get offer: %w", err)
	}

	if offer.ID == constant.Empty {
		return res, failure.NotFound(messageOfferAbsent) // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, repository.FilterItemsOf(offer.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get offer items")

		return res, fmt.Errorf("failed to get offer items: %w", err)
	}

	res.FromModel(offer, items)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save offer to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOfferRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if money.IsNegative(req.TotalPrice) || money.IsNegative(req.DiscountedPrice) {
		return failure.BadRequestFromString("prices must not be negative") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, shared.UserFromContext(ctx))

	if err = setDate(updatedFields, model.FieldStartDate, req.StartDate); err != nil {
		return err
	}

	if err = setDate(updatedFields, model.FieldEndDate, req.EndDate); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if offer exists")

		return fmt.Errorf("failed to check if offer exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageOfferAbsent) // nolint:wrapcheck
	}

	var items []model.OfferItem

	if req.SelectedItems != nil {
		itemIDs, err := s.selectItems(ctx, req.SelectedItems)
		if err != nil {
			return err
		}

		items = dto.NewOfferItems(id, itemIDs)
	}

	err = s.tx.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}

		if items == nil {
			return nil
		}

		if err := s.itemRepo.DeleteTx(ctx, tx, repository.FilterItemsOf(id)); err != nil {
			return fmt.Errorf("failed to clear offer items: %w", err)
		}

		if err := s.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to insert offer items: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update offer")

		return fmt.Errorf("failed to update offer: %w", err)
	}

	s.invalidate(context.WithoutCancel(ctx))

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if offer exists")

		return fmt.Errorf("failed to check if offer exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageOfferAbsent) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete offer")

		return fmt.Errorf("failed to delete offer: %w", err)
	}

	s.invalidate(context.WithoutCancel(ctx))

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetOffer)
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllOffer)
	shared.InvalidateCaches(ctx, s.cache, cacheCountOffer)
}

func setDate(fields map[string]any, column string, value *string) error {
	if value == nil {
		return nil
	}

	day, err := timezone.ParseDate(*value)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	fields[column] = day

	return nil
}

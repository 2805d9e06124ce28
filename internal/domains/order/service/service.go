package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"bistro/config"
	"bistro/infras/kafka"
	"bistro/infras/otel"
	"bistro/internal/domains/order/model"
	"bistro/internal/domains/order/model/dto"
	"bistro/internal/domains/order/repository"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/money"
	gRepo "bistro/shared/repository"
	"bistro/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const messageOrderAbsent = "order not found"

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetOrdersResponse, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Order
	lineRepo repository.LineItem
	tx       gRepo.Transactor
	cfg      *config.Config
	kafka    kafka.Client
	otel     otel.Otel
}

func New(repo repository.Order, lineRepo repository.LineItem, tx gRepo.Transactor, cfg *config.Config, kafka kafka.Client, otel otel.Otel) Order {
	return &serviceImpl{
		repo:     repo,
		lineRepo: lineRepo,
		tx:       tx,
		cfg:      cfg,
		kafka:    kafka,
		otel:     otel,
	}
}

func filterLinesOf(orderIDs ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOrderID,
				Operator: gDto.FilterOperatorIn,
				Value:    orderIDs,
				Table:    model.LineTableName,
			},
		},
	}
}

func validateOrder(req dto.CreateOrderRequest) (date *time.Time, clock *string, err error) {
	if money.IsNegative(req.TotalAmount) {
		return nil, nil, failure.BadRequestFromString("total_amount must not be negative") // nolint:wrapcheck
	}

	for _, item := range req.CartItems {
		if money.IsNegative(item.Price) {
			return nil, nil, failure.BadRequestFromString("cart item price must not be negative") // nolint:wrapcheck
		}
	}

	if req.ServiceType == constant.ServiceTypeDelivery && (isBlank(req.AddressLine) || isBlank(req.City)) {
		return nil, nil, failure.BadRequestFromString("address_line and city are required for delivery") // nolint:wrapcheck
	}

	if !isBlank(req.ScheduledDate) {
		day, err := timezone.ParseDate(*req.ScheduledDate)
		if err != nil {
			return nil, nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		date = &day
	}

	if !isBlank(req.ScheduledTime) {
		normalized, err := timezone.NormalizeClock(*req.ScheduledTime)
		if err != nil {
			return nil, nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		clock = &normalized
	}

	return date, clock, nil
}

func isBlank(value *string) bool {
	return value == nil || *value == constant.Empty
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := shared.SessionUser(ctx)
	if err != nil {
		return res, err
	}

	date, clock, err := validateOrder(req)
	if err != nil {
		return res, err
	}

	order, lines := req.ToModels(user, date, clock)

	err = s.tx.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		if err := s.lineRepo.InsertBulkTx(ctx, tx, lines); err != nil {
			return fmt.Errorf("failed to insert order line items: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	res.FromModel(order, lines)

	go func() {
		c := context.WithoutCancel(ctx)
		event := dto.NewOrderPlacedEvent(order, lines)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.OrderPlaced, kafka.Message{Key: order.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish order placed event")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.SortBy == constant.Empty {
		req.SortBy = constant.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	var lines []model.LineItem

	if len(orders) > 0 {
		ids := make([]string, len(orders))
		for i, order := range orders {
			ids[i] = order.ID
		}

		params := gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}

		lines, err = s.lineRepo.GetAll(ctx, params, filterLinesOf(ids...))
		if err != nil {
			log.Error().Err(err).Msg("failed to get order line items")

			return res, fmt.Errorf("failed to get order line items: %w", err)
		}
	}

	res.FromModels(orders, lines, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetOrdersResponse, error) {
	user, err := shared.SessionUser(ctx)
	if err != nil {
		return dto.GetOrdersResponse{}, err
	}

	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound(messageOrderAbsent) // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}

	lines, err := s.lineRepo.GetAll(ctx, params, filterLinesOf(order.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order line items")

		return res, fmt.Errorf("failed to get order line items: %w", err)
	}

	res.FromModel(order, lines)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureOrder(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserFromContext(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureOrder(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete order")

		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureOrder(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if order exists")

		return fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageOrderAbsent) // nolint:wrapcheck
	}

	return nil
}

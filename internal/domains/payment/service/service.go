package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"strings"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/infras/payment"
	"bistro/internal/domains/payment/model/dto"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const receiptPrefix = "rcpt_"

type Payment interface {
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (dto.SessionResponse, error)
	Verify(ctx context.Context, req dto.VerifyRequest) (dto.VerifyResponse, error)
}

type serviceImpl struct {
	gateway payment.Gateway
	cfg     *config.Config
	otel    otel.Otel
}

func New(gateway payment.Gateway, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		gateway: gateway,
		cfg:     cfg,
		otel:    otel,
	}
}

func (s *serviceImpl) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSession")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minor := money.MinorUnits(*req.Amount)
	if minor <= 0 {
		return res, failure.BadRequestFromString("amount must be at least one minor currency unit") // nolint:wrapcheck
	}

	receipt := req.Receipt
	if receipt == constant.Empty {
		receipt = receiptPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}

	order, err := s.gateway.CreateOrder(ctx, minor, strings.ToUpper(req.Currency), receipt)
	if err != nil {
		log.Error().Err(err).Str("receipt", receipt).Msg("failed to create payment session")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res.FromGateway(order, s.gateway.KeyID())

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyRequest) (res dto.VerifyResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn().Str("order_id", req.OrderID).Msg("payment signature mismatch")

		return res, failure.BadRequestFromString("invalid payment signature") // nolint:wrapcheck
	}

	return dto.VerifyResponse{Verified: true, OrderID: req.OrderID, PaymentID: req.PaymentID}, nil
}

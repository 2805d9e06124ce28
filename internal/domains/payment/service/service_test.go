package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	"bistro/infras/payment"
	paymentMocks "bistro/infras/payment/mocks"
	"bistro/internal/domains/payment/model/dto"
	"bistro/internal/domains/payment/service"
	"bistro/shared/failure"
)

func setup(t *testing.T) (*paymentMocks.MockGateway, service.Payment) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gateway := paymentMocks.NewMockGateway(ctrl)

	return gateway, service.New(gateway, &config.Config{}, mocks.NewOtel())
}

func amount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)

	return &d
}

func TestPaymentService_CreateSession(t *testing.T) {
	t.Run("converts to minor units", func(t *testing.T) {
		gateway, svc := setup(t)

		gateway.EXPECT().
			CreateOrder(gomock.Any(), int64(49950), "INR", gomock.Any()).
			DoAndReturn(func(_ context.Context, amount int64, currency, receipt string) (payment.Order, error) {
				assert.True(t, strings.HasPrefix(receipt, "rcpt_"))

				return payment.Order{ID: "order_1", Amount: amount, Currency: currency, Receipt: receipt}, nil
			})
		gateway.EXPECT().KeyID().Return("rzp_test_key")

		res, err := svc.CreateSession(context.Background(), dto.CreateSessionRequest{Amount: amount("499.50"), Currency: "inr"})

		assert.NoError(t, err)
		assert.Equal(t, "order_1", res.OrderID)
		assert.Equal(t, int64(49950), res.Amount)
		assert.Equal(t, "rzp_test_key", res.KeyID)
	})

	t.Run("sub-unit amount", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.CreateSession(context.Background(), dto.CreateSessionRequest{Amount: amount("0.001")})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("gateway not configured", func(t *testing.T) {
		gateway, svc := setup(t)
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(payment.Order{}, payment.ErrNotConfigured)

		_, err := svc.CreateSession(context.Background(), dto.CreateSessionRequest{Amount: amount("10")})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, err, "not configured")
	})
}

func TestPaymentService_Verify(t *testing.T) {
	req := dto.VerifyRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}

	t.Run("valid signature", func(t *testing.T) {
		gateway, svc := setup(t)
		gateway.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(true)

		res, err := svc.Verify(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, res.Verified)
	})

	t.Run("invalid signature", func(t *testing.T) {
		gateway, svc := setup(t)
		gateway.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(false)

		_, err := svc.Verify(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

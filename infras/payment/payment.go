package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/shared/constant"

	"github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("payment gateway is not configured")

// Order is the gateway-side order a checkout session pays against.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type razorpayImpl struct {
	client *razorpay.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	var client *razorpay.Client

	if cfg.External.Razorpay.KeyID == "" || cfg.External.Razorpay.KeySecret == "" {
		log.Warn().Msg("Razorpay credentials not set, payment sessions are disabled")
	} else {
		client = razorpay.NewClient(cfg.External.Razorpay.KeyID, cfg.External.Razorpay.KeySecret)
	}

	return &razorpayImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// CreateOrder opens an order for amount given in minor units (paise).
func (r *razorpayImpl) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (res Order, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if r.client == nil {
		return res, ErrNotConfigured
	}

	if currency == "" {
		currency = r.cfg.External.Razorpay.Currency
	}

	body, err := r.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		log.Error().Err(err).Str("receipt", receipt).Msg("failed to create razorpay order")

		return res, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	return orderFromBody(body), nil
}

// VerifySignature checks the checkout signature, HMAC-SHA256 of "order_id|payment_id" keyed by the secret.
func (r *razorpayImpl) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(r.cfg.External.Razorpay.KeySecret, orderID, paymentID, signature)
}

func (r *razorpayImpl) KeyID() string {
	return r.cfg.External.Razorpay.KeyID
}

func verifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func orderFromBody(body map[string]interface{}) Order {
	order := Order{}

	order.ID, _ = body["id"].(string)
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	}

	return order
}

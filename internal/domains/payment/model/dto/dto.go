package dto

import (
	"bistro/infras/payment"

	"github.com/shopspring/decimal"
)

type CreateSessionRequest struct {
	Amount   *decimal.Decimal `json:"amount"             validate:"required,gt=0" swaggertype:"number"`
	Currency string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	Receipt  string           `json:"receipt,omitempty"  validate:"omitempty,max=40"`
}

type SessionResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"key_id"`
}

func (r *SessionResponse) FromGateway(order payment.Order, keyID string) {
	r.OrderID = order.ID
	r.Amount = order.Amount
	r.Currency = order.Currency
	r.Receipt = order.Receipt
	r.KeyID = keyID
}

type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type VerifyResponse struct {
	Verified  bool   `json:"verified"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

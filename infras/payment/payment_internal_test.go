package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	valid := sign("key-secret", "order_123|pay_456")

	assert.True(t, verifySignature("key-secret", "order_123", "pay_456", valid))
	assert.False(t, verifySignature("key-secret", "order_123", "pay_789", valid))
	assert.False(t, verifySignature("other-secret", "order_123", "pay_456", valid))
	assert.False(t, verifySignature("", "order_123", "pay_456", valid))
}

func TestOrderFromBody(t *testing.T) {
	order := orderFromBody(map[string]interface{}{
		"id":       "order_123",
		"amount":   float64(129950),
		"currency": "INR",
		"receipt":  "order-1",
		"status":   "created",
	})

	assert.Equal(t, Order{ID: "order_123", Amount: 129950, Currency: "INR", Receipt: "order-1", Status: "created"}, order)
}

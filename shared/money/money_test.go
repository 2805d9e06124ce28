package money_test

import (
	"encoding/json"
	"testing"

	"bistro/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	price := decimal.RequireFromString("3.50")

	assert.True(t, money.LineTotal(price, 2).Equal(decimal.RequireFromString("7")))
	assert.True(t, money.LineTotal(price, 0).IsZero())
	assert.True(t, money.LineTotal(decimal.RequireFromString("0.335"), 3).Equal(decimal.RequireFromString("1.01")))
}

func TestSum(t *testing.T) {
	assert.True(t, money.Sum().IsZero())

	total := money.Sum(
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
		decimal.RequireFromString("10.005"),
	)

	assert.Equal(t, "10.31", total.StringFixed(2))
}

func TestIsNegative(t *testing.T) {
	negative := decimal.RequireFromString("-1")
	positive := decimal.RequireFromString("1")

	assert.False(t, money.IsNegative(nil))
	assert.True(t, money.IsNegative(&negative))
	assert.False(t, money.IsNegative(&positive))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(129950), money.MinorUnits(decimal.RequireFromString("1299.5")))
	assert.Equal(t, int64(1), money.MinorUnits(decimal.RequireFromString("0.005")))
}

func TestMarshalWithoutQuotes(t *testing.T) {
	encoded, err := json.Marshal(map[string]decimal.Decimal{"price": decimal.RequireFromString("3.5")})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"price":3.5}`, string(encoded))
}

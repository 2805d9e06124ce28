package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/domains/order/model/dto"
	"bistro/shared/constant"
)

func TestCreateOrderRequest_CartItemsRoundTrip(t *testing.T) {
	price := decimal.RequireFromString("3.5")
	total := decimal.RequireFromString("7")

	req := dto.CreateOrderRequest{
		Name:        "Asha",
		Email:       "asha@example.com",
		CartItems:   []dto.LineItemRequest{{FoodName: "Naan", Quantity: 2, Price: &price}},
		ServiceType: constant.ServiceTypePickup,
		TotalAmount: &total,
	}

	order, lines := req.ToModels("user-1", nil, nil)

	var res dto.OrderResponse
	res.FromModel(order, lines)

	payload, err := json.Marshal(res.CartItems)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"food_name":"Naan","quantity":2,"price":3.5}]`, string(payload))
	assert.Equal(t, order.ID, lines[0].OrderID)
	assert.Nil(t, res.ScheduledDate)
}

func TestNewOrderPlacedEvent(t *testing.T) {
	price := decimal.RequireFromString("2")
	total := decimal.RequireFromString("10")

	req := dto.CreateOrderRequest{
		CartItems: []dto.LineItemRequest{
			{FoodName: "Samosa", Quantity: 3, Price: &price},
			{FoodName: "Chai", Quantity: 2, Price: &price},
		},
		ServiceType: constant.ServiceTypeDelivery,
		TotalAmount: &total,
	}

	order, lines := req.ToModels("user-1", nil, nil)
	event := dto.NewOrderPlacedEvent(order, lines)

	assert.Equal(t, 5, event.ItemCount)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, 1, lines[1].Position)
}

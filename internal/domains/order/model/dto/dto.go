package dto

import (
	"time"

	"bistro/internal/domains/order/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/money"
	"bistro/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	ItemID   *string          `json:"item_id,omitempty" validate:"omitempty,uuid"`
	FoodName string           `json:"food_name"         validate:"required,max=150"`
	Quantity int              `json:"quantity"          validate:"required,min=1"`
	Price    *decimal.Decimal `json:"price"             validate:"required"                swaggertype:"number"`
}

type CreateOrderRequest struct {
	Name          string            `json:"name"                     validate:"required,max=100"`
	Email         string            `json:"email"                    validate:"required,email,max=100"`
	Phone         *string           `json:"phone,omitempty"          validate:"omitempty,max=20"`
	CartItems     []LineItemRequest `json:"cart_items"               validate:"required,min=1,dive"`
	ServiceType   string            `json:"service_type"             validate:"required,oneof=pickup delivery"`
	TotalAmount   *decimal.Decimal  `json:"total_amount"             validate:"required"                       swaggertype:"number"`
	ScheduledDate *string           `json:"scheduled_date,omitempty"`
	ScheduledTime *string           `json:"scheduled_time,omitempty"`
	AddressLine   *string           `json:"address_line,omitempty"   validate:"omitempty,max=255"`
	City          *string           `json:"city,omitempty"           validate:"omitempty,max=100"`
	PostalCode    *string           `json:"postal_code,omitempty"    validate:"omitempty,max=20"`
}

// ToModels builds the order row and its line items. Date and time must already be normalized.
func (r *CreateOrderRequest) ToModels(userID string, date *time.Time, clock *string) (model.Order, []model.LineItem) {
	order := model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		ServiceType:   r.ServiceType,
		TotalAmount:   money.Round(*r.TotalAmount),
		ScheduledDate: date,
		ScheduledTime: clock,
		AddressLine:   r.AddressLine,
		City:          r.City,
		PostalCode:    r.PostalCode,
		Status:        model.StatusPending,
		Metadata:      gModel.NewMetadata(timezone.Now(), userID),
	}

	lines := make([]model.LineItem, len(r.CartItems))
	for i, item := range r.CartItems {
		lines[i] = model.LineItem{
			ID:       uuid.NewString(),
			OrderID:  order.ID,
			ItemID:   item.ItemID,
			FoodName: item.FoodName,
			Quantity: item.Quantity,
			Price:    money.Round(*item.Price),
			Position: i,
		}
	}

	return order, lines
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=Pending Confirmed Preparing Ready Completed Cancelled"`
}

type LineItemResponse struct {
	ItemID   *string         `json:"item_id,omitempty"`
	FoodName string          `json:"food_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"             swaggertype:"number"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         *string            `json:"phone,omitempty"`
	CartItems     []LineItemResponse `json:"cart_items"`
	ServiceType   string             `json:"service_type"`
	TotalAmount   decimal.Decimal    `json:"total_amount"             swaggertype:"number"`
	ScheduledDate *string            `json:"scheduled_date,omitempty"`
	ScheduledTime *string            `json:"scheduled_time,omitempty"`
	AddressLine   *string            `json:"address_line,omitempty"`
	City          *string            `json:"city,omitempty"`
	PostalCode    *string            `json:"postal_code,omitempty"`
	Status        string             `json:"status"`
	gDto.Metadata
}

// FromModel expects lines already ordered by position.
func (r *OrderResponse) FromModel(order model.Order, lines []model.LineItem) {
	r.ID = order.ID
	r.UserID = order.UserID
	r.Name = order.Name
	r.Email = order.Email
	r.Phone = order.Phone
	r.ServiceType = order.ServiceType
	r.TotalAmount = order.TotalAmount
	r.ScheduledTime = order.ScheduledTime
	r.AddressLine = order.AddressLine
	r.City = order.City
	r.PostalCode = order.PostalCode
	r.Status = order.Status
	r.Metadata.FromModel(order.Metadata)

	r.ScheduledDate = nil
	if order.ScheduledDate != nil {
		date := order.ScheduledDate.Format(constant.DateOnly)
		r.ScheduledDate = &date
	}

	r.CartItems = make([]LineItemResponse, len(lines))
	for i, line := range lines {
		r.CartItems[i] = LineItemResponse{
			ItemID:   line.ItemID,
			FoodName: line.FoodName,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(orders []model.Order, lines []model.LineItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byOrder := make(map[string][]model.LineItem, len(orders))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}

	r.Orders = make([]OrderResponse, len(orders))
	for i, order := range orders {
		r.Orders[i].FromModel(order, byOrder[order.ID])
	}
}

// OrderPlacedEvent is published once the order and its lines are committed.
type OrderPlacedEvent struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	Email       string          `json:"email"`
	ServiceType string          `json:"service_type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	PlacedAt    time.Time       `json:"placed_at"`
}

func NewOrderPlacedEvent(order model.Order, lines []model.LineItem) OrderPlacedEvent {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}

	return OrderPlacedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Email:       order.Email,
		ServiceType: order.ServiceType,
		TotalAmount: order.TotalAmount,
		ItemCount:   count,
		PlacedAt:    order.CreatedAt,
	}
}

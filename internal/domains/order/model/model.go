package model

import (
	"time"

	"bistro/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "orders"
	EntityName = "order"

	LineTableName  = "order_line_items"
	LineEntityName = "order line item"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldStatus      = "status"
	FieldServiceType = "service_type"
	FieldEmail       = "email"
	FieldOrderID     = "order_id"
	FieldPosition    = "position"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Order struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	Phone         *string         `db:"phone"`
	ServiceType   string          `db:"service_type"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	ScheduledDate *time.Time      `db:"scheduled_date"`
	ScheduledTime *string         `db:"scheduled_time"`
	AddressLine   *string         `db:"address_line"`
	City          *string         `db:"city"`
	PostalCode    *string         `db:"postal_code"`
	Status        string          `db:"status"`
	model.Metadata
}

// LineItem is the frozen copy of a cart line taken when the order is placed.
type LineItem struct {
	ID       string          `db:"id"`
	OrderID  string          `db:"order_id"`
	ItemID   *string         `db:"item_id"`
	FoodName string          `db:"food_name"`
	Quantity int             `db:"quantity"`
	Price    decimal.Decimal `db:"price"`
	Position int             `db:"position"`
}

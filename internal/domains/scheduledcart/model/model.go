package model

import (
	"time"

	"bistro/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "scheduled_cart_items"
	EntityName = "scheduled cart item"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldScheduledDate = "scheduled_date"
	FieldScheduledTime = "scheduled_time"
	FieldServiceType   = "service_type"
)

// ScheduledCartLine is a cart line held for a later pickup or delivery slot.
type ScheduledCartLine struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	ItemID        string          `db:"item_id"`
	FoodName      string          `db:"food_name"`
	Price         decimal.Decimal `db:"price"`
	Image         *string         `db:"image"`
	Quantity      int             `db:"quantity"`
	SpecialNote   *string         `db:"special_note"`
	ScheduledDate time.Time       `db:"scheduled_date"`
	ScheduledTime string          `db:"scheduled_time"`
	ServiceType   string          `db:"service_type"`
	model.Metadata
}

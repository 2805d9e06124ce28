package model

import (
	"time"

	"bistro/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "offers"
	EntityName = "offer"

	ItemTableName  = "offer_items"
	ItemEntityName = "offer item"

	FieldID              = "id"
	FieldTotalPrice      = "total_price"
	FieldDiscountedPrice = "discounted_price"
	FieldOfferType       = "offer_type"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldOfferID         = "offer_id"
	FieldItemID          = "item_id"
)

type Offer struct {
	ID              string          `db:"id"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	DiscountedPrice decimal.Decimal `db:"discounted_price"`
	OfferType       string          `db:"offer_type"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         time.Time       `db:"end_date"`
	model.Metadata
}

type OfferItem struct {
	OfferID   string              `db:"offer_id"`
	ItemID    string              `db:"item_id"`
	ItemName  *string             `db:"item_name"  table:"menu_items" column:"name"`
	ItemPrice decimal.NullDecimal `db:"item_price" table:"menu_items" column:"price"`
}

func (OfferItem) GetJoinQuery() string {
	return "LEFT JOIN menu_items ON menu_items.id = offer_items.item_id"
}

package model

import (
	"bistro/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "cart_items"
	EntityName = "cart item"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldItemID      = "item_id"
	FieldFoodName    = "food_name"
	FieldPrice       = "price"
	FieldImage       = "image"
	FieldQuantity    = "quantity"
	FieldSpecialNote = "special_note"
)

// CartLine snapshots the menu item name, price and image at the time it was added.
type CartLine struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	ItemID      string          `db:"item_id"`
	FoodName    string          `db:"food_name"`
	Price       decimal.Decimal `db:"price"`
	Image       *string         `db:"image"`
	Quantity    int             `db:"quantity"`
	SpecialNote *string         `db:"special_note"`
	model.Metadata
}

package model

import (
	"bistro/shared/model"

	"github.com/shopspring/decimal"
)

const (
	CategoryTableName  = "menu_categories"
	CategoryEntityName = "menu category"

	FieldCategoryName        = "name"
	FieldCategoryDescription = "description"
)

const (
	ItemTableName  = "menu_items"
	ItemEntityName = "menu item"

	FieldID           = "id"
	FieldCategoryID   = "category_id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldQuantity     = "quantity"
	FieldAvailability = "availability"
	FieldImageURL     = "image_url"
	FieldSpicyLevel   = "spicy_level"
)

const MaxSpicyLevel = 5

type Category struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	model.Metadata
}

// MenuItem is a dish on the menu. Quantity is the item number printed on the card, not stock.
type MenuItem struct {
	ID           string          `db:"id"`
	CategoryID   string          `db:"category_id"`
	CategoryName *string         `db:"category_name" table:"menu_categories" column:"name"`
	Name         string          `db:"name"`
	Description  *string         `db:"description"`
	Price        decimal.Decimal `db:"price"`
	Quantity     int             `db:"quantity"`
	Availability bool            `db:"availability"`
	ImageURL     *string         `db:"image_url"`
	SpicyLevel   int             `db:"spicy_level"`
	model.Metadata
}

func (MenuItem) GetJoinQuery() string {
	return "LEFT JOIN menu_categories ON menu_categories.id = menu_items.category_id"
}

package dto

import (
	"bistro/internal/domains/cart/model"
	menuModel "bistro/internal/domains/menu/model"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/money"
	"bistro/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddToCartRequest struct {
	ItemID      string  `json:"item_id"                validate:"required,uuid"`
	Quantity    int     `json:"quantity"               validate:"required,min=1,max=99"`
	SpecialNote *string `json:"special_note,omitempty" validate:"omitempty,max=255"`
}

// ToModel copies the current menu item details onto a new cart line.
func (r *AddToCartRequest) ToModel(userID string, item menuModel.MenuItem) model.CartLine {
	return model.CartLine{
		ID:          uuid.NewString(),
		UserID:      userID,
		ItemID:      item.ID,
		FoodName:    item.Name,
		Price:       item.Price,
		Image:       item.ImageURL,
		Quantity:    r.Quantity,
		SpecialNote: r.SpecialNote,
		Metadata:    gModel.NewMetadata(timezone.Now(), userID),
	}
}

type UpdateCartRequest struct {
	Quantity    *int    `db:"quantity"     json:"quantity,omitempty"     validate:"omitempty,min=1,max=99"`
	SpecialNote *string `db:"special_note" json:"special_note,omitempty" validate:"omitempty,max=255"`
}

type LineResponse struct {
	ID          string          `json:"cart_id"`
	ItemID      string          `json:"item_id"`
	FoodName    string          `json:"food_name"`
	Price       decimal.Decimal `json:"price"                  swaggertype:"number"`
	Image       *string         `json:"image,omitempty"`
	Quantity    int             `json:"quantity"`
	SpecialNote *string         `json:"special_note,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"             swaggertype:"number"`
	gDto.Metadata
}

func (r *LineResponse) FromModel(line model.CartLine) {
	r.ID = line.ID
	r.ItemID = line.ItemID
	r.FoodName = line.FoodName
	r.Price = line.Price
	r.Image = line.Image
	r.Quantity = line.Quantity
	r.SpecialNote = line.SpecialNote
	r.LineTotal = money.LineTotal(line.Price, line.Quantity)
	r.Metadata.FromModel(line.Metadata)
}

type CartResponse struct {
	Items      []LineResponse  `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"    swaggertype:"number"`
}

func (r *CartResponse) FromModels(lines []model.CartLine) {
	r.Items = make([]LineResponse, len(lines))
	totals := make([]decimal.Decimal, len(lines))
	r.TotalItems = 0

	for i, line := range lines {
		r.Items[i].FromModel(line)
		totals[i] = r.Items[i].LineTotal
		r.TotalItems += line.Quantity
	}

	r.Subtotal = money.Sum(totals...)
}

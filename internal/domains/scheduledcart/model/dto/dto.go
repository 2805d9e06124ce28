package dto

import (
	"time"

	cartModel "bistro/internal/domains/cart/model"
	cartDto "bistro/internal/domains/cart/model/dto"
	menuModel "bistro/internal/domains/menu/model"
	"bistro/internal/domains/scheduledcart/model"
	"bistro/shared/constant"
	gModel "bistro/shared/model"
	"bistro/shared/money"
	"bistro/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddToScheduledCartRequest struct {
	ItemID        string  `json:"item_id"                validate:"required,uuid"`
	Quantity      int     `json:"quantity"               validate:"required,min=1,max=99"`
	SpecialNote   *string `json:"special_note,omitempty" validate:"omitempty,max=255"`
	ScheduledDate string  `json:"scheduled_date"         validate:"required"`
	ScheduledTime string  `json:"scheduled_time"         validate:"required"`
	ServiceType   string  `json:"service_type"           validate:"required,oneof=pickup delivery"`
}

// ToModel copies the menu item snapshot and the normalized slot onto a new line.
func (r *AddToScheduledCartRequest) ToModel(userID string, item menuModel.MenuItem, date time.Time, clock string) model.ScheduledCartLine {
	return model.ScheduledCartLine{
		ID:            uuid.NewString(),
		UserID:        userID,
		ItemID:        item.ID,
		FoodName:      item.Name,
		Price:         item.Price,
		Image:         item.ImageURL,
		Quantity:      r.Quantity,
		SpecialNote:   r.SpecialNote,
		ScheduledDate: date,
		ScheduledTime: clock,
		ServiceType:   r.ServiceType,
		Metadata:      gModel.NewMetadata(timezone.Now(), userID),
	}
}

type UpdateScheduledCartRequest struct {
	Quantity      *int    `db:"quantity"     json:"quantity,omitempty"       validate:"omitempty,min=1,max=99"`
	SpecialNote   *string `db:"special_note" json:"special_note,omitempty"   validate:"omitempty,max=255"`
	ServiceType   *string `db:"service_type" json:"service_type,omitempty"   validate:"omitempty,oneof=pickup delivery"`
	ScheduledDate *string `db:"-"            json:"scheduled_date,omitempty"`
	ScheduledTime *string `db:"-"            json:"scheduled_time,omitempty"`
}

type LineResponse struct {
	cartDto.LineResponse
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	ServiceType   string `json:"service_type"`
}

func (r *LineResponse) FromModel(line model.ScheduledCartLine) {
	r.LineResponse.FromModel(cartModel.CartLine{
		ID:          line.ID,
		UserID:      line.UserID,
		ItemID:      line.ItemID,
		FoodName:    line.FoodName,
		Price:       line.Price,
		Image:       line.Image,
		Quantity:    line.Quantity,
		SpecialNote: line.SpecialNote,
		Metadata:    line.Metadata,
	})
	r.ScheduledDate = line.ScheduledDate.Format(constant.DateOnly)
	r.ScheduledTime = line.ScheduledTime
	r.ServiceType = line.ServiceType
}

type ScheduledCartResponse struct {
	Items      []LineResponse  `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"    swaggertype:"number"`
}

func (r *ScheduledCartResponse) FromModels(lines []model.ScheduledCartLine) {
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

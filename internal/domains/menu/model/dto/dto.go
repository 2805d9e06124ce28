package dto

import (
	"bistro/internal/domains/menu/model"
	"bistro/shared"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/money"
	"bistro/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateCategoryRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}

type CreateItemRequest struct {
	CategoryID   string           `json:"category_id"           validate:"required,uuid"`
	Name         string           `json:"name"                  validate:"required,max=150"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price        *decimal.Decimal `json:"price"                 validate:"required,gte=0"`
	Quantity     int              `json:"quantity"              validate:"gte=0"`
	Availability *bool            `json:"availability"`
	ImageURL     *string          `json:"image_url,omitempty"   validate:"omitempty,url"`
	SpicyLevel   int              `json:"spicy_level"           validate:"gte=0,lte=5"`
}

func (c *CreateItemRequest) ToModel(user string) model.MenuItem {
	availability := true
	if c.Availability != nil {
		availability = *c.Availability
	}

	return model.MenuItem{
		ID:           uuid.NewString(),
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        money.Round(*c.Price),
		Quantity:     c.Quantity,
		Availability: availability,
		ImageURL:     c.ImageURL,
		SpicyLevel:   c.SpicyLevel,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateItemRequest struct {
	CategoryID   *string          `db:"category_id"  json:"category_id,omitempty"  validate:"omitempty,uuid"`
	Name         *string          `db:"name"         json:"name,omitempty"         validate:"omitempty,max=150"`
	Description  *string          `db:"description"  json:"description,omitempty"  validate:"omitempty,max=1000"`
	Price        *decimal.Decimal `db:"price"        json:"price,omitempty"        validate:"omitempty,gte=0"`
	Quantity     *int             `db:"quantity"     json:"quantity,omitempty"     validate:"omitempty,gte=0"`
	Availability *bool            `db:"availability" json:"availability,omitempty"`
	ImageURL     *string          `db:"image_url"    json:"image_url,omitempty"    validate:"omitempty,url"`
	SpicyLevel   *int             `db:"spicy_level"  json:"spicy_level,omitempty"  validate:"omitempty,gte=0,lte=5"`
}

type ItemResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName *string         `json:"category_name,omitempty"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"                   swaggertype:"number"`
	Quantity     int             `json:"quantity"`
	Availability bool            `json:"availability"`
	ImageURL     *string         `json:"image_url,omitempty"`
	SpicyLevel   int             `json:"spicy_level"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Quantity = model.Quantity
	r.Availability = model.Availability
	r.ImageURL = model.ImageURL
	r.SpicyLevel = model.SpicyLevel
	r.Metadata.FromModel(model.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

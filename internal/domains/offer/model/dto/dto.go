package dto

import (
	"time"

	"bistro/internal/domains/offer/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/money"
	"bistro/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOfferRequest struct {
	SelectedItems   []string         `json:"selectedItems"   validate:"required,min=2,dive,uuid"`
	TotalPrice      *decimal.Decimal `json:"totalPrice"      validate:"required"                  swaggertype:"number"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice" validate:"required"                  swaggertype:"number"`
	OfferType       string           `json:"offerType"       validate:"required,max=50"`
	StartDate       string           `json:"startDate"       validate:"required"`
	EndDate         string           `json:"endDate"         validate:"required"`
}

func (r *CreateOfferRequest) ToModels(user string, itemIDs []string, start, end time.Time) (model.Offer, []model.OfferItem) {
	offer := model.Offer{
		ID:              uuid.NewString(),
		TotalPrice:      money.Round(*r.TotalPrice),
		DiscountedPrice: money.Round(*r.DiscountedPrice),
		OfferType:       r.OfferType,
		StartDate:       start,
		EndDate:         end,
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}

	return offer, NewOfferItems(offer.ID, itemIDs)
}

func NewOfferItems(offerID string, itemIDs []string) []model.OfferItem {
	items := make([]model.OfferItem, len(itemIDs))
	for i, id := range itemIDs {
		items[i] = model.OfferItem{OfferID: offerID, ItemID: id}
	}

	return items
}

// UniqueItems drops repeated ids and keeps the first occurrence order.
func UniqueItems(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

type UpdateOfferRequest struct {
	SelectedItems   []string         `db:"-"                json:"selectedItems,omitempty"   validate:"omitempty,min=2,dive,uuid"`
	TotalPrice      *decimal.Decimal `db:"total_price"      json:"totalPrice,omitempty"      swaggertype:"number"`
	DiscountedPrice *decimal.Decimal `db:"discounted_price" json:"discountedPrice,omitempty" swaggertype:"number"`
	OfferType       *string          `db:"offer_type"       json:"offerType,omitempty"       validate:"omitempty,max=50"`
	StartDate       *string          `db:"-"                json:"startDate,omitempty"`
	EndDate         *string          `db:"-"                json:"endDate,omitempty"`
}

func (r *UpdateOfferRequest) IsEmpty() bool {
	return r.SelectedItems == nil && r.TotalPrice == nil && r.DiscountedPrice == nil &&
		r.OfferType == nil && r.StartDate == nil && r.EndDate == nil
}

type OfferItemResponse struct {
	ItemID string           `json:"item_id"`
	Name   *string          `json:"name,omitempty"`
	Price  *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
}

type OfferResponse struct {
	ID              string              `json:"id"`
	SelectedItems   []OfferItemResponse `json:"selectedItems"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"      swaggertype:"number"`
	DiscountedPrice decimal.Decimal     `json:"discountedPrice" swaggertype:"number"`
	Savings         decimal.Decimal     `json:"savings"         swaggertype:"number"`
	OfferType       string              `json:"offerType"`
	StartDate       string              `json:"startDate"`
	EndDate         string              `json:"endDate"`
	gDto.Metadata
}

func (r *OfferResponse) FromModel(offer model.Offer, items []model.OfferItem) {
	r.ID = offer.ID
	r.TotalPrice = offer.TotalPrice
	r.DiscountedPrice = offer.DiscountedPrice
	r.Savings = money.Round(offer.TotalPrice.Sub(offer.DiscountedPrice))
	r.OfferType = offer.OfferType
	r.StartDate = offer.StartDate.Format(constant.DateOnly)
	r.EndDate = offer.EndDate.Format(constant.DateOnly)
	r.Metadata.FromModel(offer.Metadata)

	r.SelectedItems = make([]OfferItemResponse, len(items))
	for i, item := range items {
		r.SelectedItems[i] = OfferItemResponse{ItemID: item.ItemID, Name: item.ItemName}

		if item.ItemPrice.Valid {
			price := item.ItemPrice.Decimal
			r.SelectedItems[i].Price = &price
		}
	}
}

type GetOffersResponse struct {
	Offers    []OfferResponse `json:"offers"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOffersResponse) FromModels(offers []model.Offer, items []model.OfferItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byOffer := make(map[string][]model.OfferItem, len(offers))
	for _, item := range items {
		byOffer[item.OfferID] = append(byOffer[item.OfferID], item)
	}

	r.Offers = make([]OfferResponse, len(offers))
	for i, offer := range offers {
		r.Offers[i].FromModel(offer, byOffer[offer.ID])
	}
}

package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/domains/offer/model"
	"bistro/internal/domains/offer/model/dto"
	"bistro/shared/timezone"
)

func TestUniqueItems(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dto.UniqueItems([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, dto.UniqueItems(nil))
}

func TestUpdateOfferRequest_IsEmpty(t *testing.T) {
	offerType := "combo"

	assert.True(t, (&dto.UpdateOfferRequest{}).IsEmpty())
	assert.False(t, (&dto.UpdateOfferRequest{OfferType: &offerType}).IsEmpty())
	assert.False(t, (&dto.UpdateOfferRequest{SelectedItems: []string{}}).IsEmpty())
}

func TestOfferResponse_FromModel(t *testing.T) {
	require.NoError(t, timezone.Load("America/Los_Angeles"))
	t.Cleanup(func() { _ = timezone.Load("UTC") })

	utc := time.FixedZone("", 0)
	offer := model.Offer{
		ID:              "o1",
		TotalPrice:      decimal.RequireFromString("20.00"),
		DiscountedPrice: decimal.RequireFromString("15.50"),
		OfferType:       "combo",
		StartDate:       time.Date(2026, 12, 1, 0, 0, 0, 0, utc),
		EndDate:         time.Date(2026, 12, 31, 0, 0, 0, 0, utc),
	}

	var res dto.OfferResponse
	res.FromModel(offer, []model.OfferItem{{OfferID: "o1", ItemID: "i1"}})

	assert.Equal(t, "2026-12-01", res.StartDate)
	assert.Equal(t, "2026-12-31", res.EndDate)
	assert.Equal(t, "4.5", res.Savings.String())
	assert.Equal(t, "i1", res.SelectedItems[0].ItemID)
	assert.Nil(t, res.SelectedItems[0].Price)
}

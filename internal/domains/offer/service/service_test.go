package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	menuMocks "bistro/internal/domains/menu/mocks"
	offerMocks "bistro/internal/domains/offer/mocks"
	"bistro/internal/domains/offer/model"
	"bistro/internal/domains/offer/model/dto"
	"bistro/internal/domains/offer/service"
	cacheMocks "bistro/shared/cache/mocks"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	txMocks "bistro/shared/repository/mocks"
)

const (
	naanID  = "0b8e4a36-7f0e-4d5c-9a51-0c9f7d7c1a01"
	dalID   = "0b8e4a36-7f0e-4d5c-9a51-0c9f7d7c1a02"
	lassiID = "0b8e4a36-7f0e-4d5c-9a51-0c9f7d7c1a03"
)

type fixture struct {
	repo     *offerMocks.MockOffer
	itemRepo *offerMocks.MockOfferItem
	menuRepo *menuMocks.MockItem
	tx       *txMocks.MockTransactor
	cache    *cacheMocks.MockRedisCache
	svc      service.Offer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     offerMocks.NewMockOffer(ctrl),
		itemRepo: offerMocks.NewMockOfferItem(ctrl),
		menuRepo: menuMocks.NewMockItem(ctrl),
		tx:       txMocks.NewMockTransactor(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.itemRepo, f.menuRepo, f.tx, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) runTx() {
	f.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.TxOptions, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)

	return &d
}

func comboRequest(items ...string) dto.CreateOfferRequest {
	return dto.CreateOfferRequest{
		SelectedItems:   items,
		TotalPrice:      price("12.00"),
		DiscountedPrice: price("9.50"),
		OfferType:       "combo",
		StartDate:       "2026-11-01",
		EndDate:         "2026-11-30",
	}
}

func TestOfferService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateOfferRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "single item is rejected before any query",
			req:       comboRequest(naanID),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "duplicated item counts once",
			req:       comboRequest(naanID, naanID),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown menu item",
			req:  comboRequest(naanID, dalID),
			setupMock: func(f fixture) {
				f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid end date",
			req: func() dto.CreateOfferRequest {
				req := comboRequest(naanID, dalID)
				req.EndDate = "end of month"

				return req
			}(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "date range is stored as given",
			req: func() dto.CreateOfferRequest {
				req := comboRequest(naanID, dalID)
				req.StartDate, req.EndDate = "2026-11-30", "2026-11-01"

				return req
			}(),
			setupMock: func(f fixture) {
				f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.runTx()
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, offer model.Offer) error {
						assert.True(t, offer.EndDate.Before(offer.StartDate))

						return nil
					})
				f.itemRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "stores offer and items",
			req:  comboRequest(naanID, dalID),
			setupMock: func(f fixture) {
				f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.runTx()
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.itemRepo.EXPECT().
					InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, items []model.OfferItem) error {
						assert.Len(t, items, 2)
						assert.Equal(t, items[0].OfferID, items[1].OfferID)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "2.5", res.Savings.String())
			assert.Len(t, res.SelectedItems, 2)
		})
	}
}

func TestOfferService_Update(t *testing.T) {
	offerType := "weekend"

	tests := []struct {
		name      string
		req       dto.UpdateOfferRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing offer",
			req:  dto.UpdateOfferRequest{OfferType: &offerType},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "keeps items when none are sent",
			req:  dto.UpdateOfferRequest{OfferType: &offerType},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.runTx()
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "replaces items",
			req:  dto.UpdateOfferRequest{SelectedItems: []string{dalID, lassiID}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.runTx()
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.itemRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.itemRepo.EXPECT().
					InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, items []model.OfferItem) error {
						assert.Equal(t, "offer-1", items[0].OfferID)
						assert.Equal(t, lassiID, items[1].ItemID)

						return nil
					})
			},
		},
		{
			name: "replacement with unknown item",
			req:  dto.UpdateOfferRequest{SelectedItems: []string{dalID, lassiID}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), tt.req, "offer-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOfferService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{}, nil)

		_, err := f.svc.Get(context.Background(), "offer-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("includes joined item details", func(t *testing.T) {
		f := newFixture(t)
		name := "Garlic Naan"

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{
			ID: "offer-1", TotalPrice: decimal.RequireFromString("10"), DiscountedPrice: decimal.RequireFromString("8"),
		}, nil)
		f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.OfferItem{
			{OfferID: "offer-1", ItemID: naanID, ItemName: &name, ItemPrice: decimal.NewNullDecimal(decimal.RequireFromString("3.25"))},
			{OfferID: "offer-1", ItemID: dalID},
		}, nil)

		res, err := f.svc.Get(context.Background(), "offer-1")

		assert.NoError(t, err)
		assert.Equal(t, "2", res.Savings.String())
		assert.Equal(t, &name, res.SelectedItems[0].Name)
		assert.Equal(t, "3.25", res.SelectedItems[0].Price.String())
		assert.Nil(t, res.SelectedItems[1].Price)
	})
}

func TestOfferService_Delete(t *testing.T) {
	t.Run("missing offer", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), "offer-1")))
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "offer-1"))
	})
}

func TestOfferService_CreatedOfferIsListed(t *testing.T) {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     offerMocks.NewMockOffer(ctrl),
		itemRepo: offerMocks.NewMockOfferItem(ctrl),
		menuRepo: menuMocks.NewMockItem(ctrl),
		tx:       txMocks.NewMockTransactor(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	svc := service.New(f.repo, f.itemRepo, f.menuRepo, f.tx, cfg, cacheMocks.NewMemory(), mocks.NewOtel())

	var (
		offers []model.Offer
		items  []model.OfferItem
	)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.FilterGroup) (int, error) { return len(offers), nil }).
		AnyTimes()
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Offer, error) {
			return offers, nil
		}).
		AnyTimes()
	f.itemRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.OfferItem, error) {
			return items, nil
		}).
		AnyTimes()

	f.menuRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.runTx()
	f.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, offer model.Offer) error {
			offers = append(offers, offer)

			return nil
		})
	f.itemRepo.EXPECT().
		InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rows []model.OfferItem) error {
			items = append(items, rows...)

			return nil
		})

	params := gDto.QueryParams{Page: 1, Limit: 10}

	before, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, before.Offers)

	created, err := svc.Create(context.Background(), comboRequest(naanID, dalID))
	require.NoError(t, err)

	after, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, after.Offers, 1)
	assert.Equal(t, created.ID, after.Offers[0].ID)
	assert.Equal(t, 1, after.TotalData)
}

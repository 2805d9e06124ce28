package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	menuMocks "bistro/internal/domains/menu/mocks"
	"bistro/internal/domains/menu/model"
	"bistro/internal/domains/menu/model/dto"
	"bistro/internal/domains/menu/service"
	cacheMocks "bistro/shared/cache/mocks"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
)

type menuFixture struct {
	itemRepo     *menuMocks.MockItem
	categoryRepo *menuMocks.MockCategory
	cache        *cacheMocks.MockRedisCache
	items        service.Item
	categories   service.Category
}

func newMenuFixture(t *testing.T) menuFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := menuFixture{
		itemRepo:     menuMocks.NewMockItem(ctrl),
		categoryRepo: menuMocks.NewMockCategory(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.items = service.NewItem(f.itemRepo, f.categoryRepo, cfg, f.cache, mocks.NewOtel())
	f.categories = service.NewCategory(f.categoryRepo, f.itemRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestItemService_Create(t *testing.T) {
	price := decimal.RequireFromString("12.499")

	req := dto.CreateItemRequest{
		CategoryID: "3f1f1c4e-7f4b-4d44-9b89-3c8a3a8e5a11",
		Name:       "Paneer Tikka",
		Price:      &price,
		Quantity:   7,
		SpicyLevel: 3,
	}

	tests := []struct {
		name      string
		setupMock func(f menuFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.MenuItem) error {
					assert.Equal(t, "12.5", item.Price.String())
					assert.True(t, item.Availability)

					return nil
				})
			},
		},
		{
			name: "unknown category",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			res, err := f.items.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Paneer Tikka", res.Name)
			assert.Equal(t, "admin-id", res.CreatedBy)
		})
	}
}

func TestItemService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f menuFixture)
		wantErr   bool
		wantTotal int
		wantPages int
	}{
		{
			name: "cache hit",
			setupMock: func(f menuFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.GetItemsResponse)
						res.TotalData = 4
						res.TotalPage = 2

						return nil
					})
			},
			wantTotal: 4,
			wantPages: 2,
		},
		{
			name: "second page from database",
			setupMock: func(f menuFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.itemRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(21, nil)
				f.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Eq(gDto.QueryParams{Page: 2, Limit: 10}), gomock.Any()).
					Return([]model.MenuItem{{ID: "item-11", Price: decimal.NewFromInt(5)}}, nil)
			},
			wantTotal: 21,
			wantPages: 3,
		},
		{
			name: "count error",
			setupMock: func(f menuFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.itemRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			res, err := f.items.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Equal(t, tt.wantPages, res.TotalPage)
		})
	}
}

func TestItemService_Get(t *testing.T) {
	f := newMenuFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "menu:item:get:missing", gomock.Any()).Return(errors.New("cache miss"))
	f.itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

	_, err := f.items.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestItemService_Update(t *testing.T) {
	availability := false
	category := "3f1f1c4e-7f4b-4d44-9b89-3c8a3a8e5a11"

	tests := []struct {
		name      string
		req       dto.UpdateItemRequest
		setupMock func(f menuFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateItemRequest{},
			setupMock: func(menuFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "item not found",
			req:  dto.UpdateItemRequest{Availability: &availability},
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "moving to unknown category",
			req:  dto.UpdateItemRequest{CategoryID: &category},
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "marks item unavailable",
			req:  dto.UpdateItemRequest{Availability: &availability},
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &availability, fields[model.FieldAvailability])
						assert.NotContains(t, fields, model.FieldPrice)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			err := f.items.Update(context.Background(), tt.req, "item-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItemService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f menuFixture)
		wantCode  int
	}{
		{
			name: "item not found",
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "item bundled in an offer",
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(failure.Conflict("menu item is still referenced"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful deletion",
			setupMock: func(f menuFixture) {
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			err := f.items.Delete(context.Background(), "item-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

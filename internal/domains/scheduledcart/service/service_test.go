package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	menuMocks "bistro/internal/domains/menu/mocks"
	menuModel "bistro/internal/domains/menu/model"
	scheduledMocks "bistro/internal/domains/scheduledcart/mocks"
	"bistro/internal/domains/scheduledcart/model"
	"bistro/internal/domains/scheduledcart/model/dto"
	"bistro/internal/domains/scheduledcart/service"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
)

func setup(t *testing.T) (*scheduledMocks.MockScheduledCart, *menuMocks.MockItem, service.ScheduledCart) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := scheduledMocks.NewMockScheduledCart(ctrl)
	mockItemRepo := menuMocks.NewMockItem(ctrl)

	return mockRepo, mockItemRepo, service.New(mockRepo, mockItemRepo, &config.Config{}, mocks.NewOtel())
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
}

func TestScheduledCartService_Add(t *testing.T) {
	item := menuModel.MenuItem{
		ID:    "5b0b3a52-2c1e-4a55-8f0f-9d7b8e0c1a01",
		Name:  "Paneer Tikka",
		Price: decimal.RequireFromString("8.40"),
	}

	tests := []struct {
		name      string
		req       dto.AddToScheduledCartRequest
		setupMock func(repo *scheduledMocks.MockScheduledCart, itemRepo *menuMocks.MockItem)
		wantCode  int
	}{
		{
			name: "normalizes slot",
			req: dto.AddToScheduledCartRequest{
				ItemID: item.ID, Quantity: 1, ScheduledDate: "2026-11-02", ScheduledTime: "7:30 pm", ServiceType: constant.ServiceTypePickup,
			},
			setupMock: func(repo *scheduledMocks.MockScheduledCart, itemRepo *menuMocks.MockItem) {
				itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(item, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, line model.ScheduledCartLine) error {
					assert.Equal(t, "19:30", line.ScheduledTime)
					assert.Equal(t, time.November, line.ScheduledDate.Month())
					assert.Equal(t, 2, line.ScheduledDate.Day())
					assert.Equal(t, "Paneer Tikka", line.FoodName)

					return nil
				})
			},
		},
		{
			name: "invalid date",
			req: dto.AddToScheduledCartRequest{
				ItemID: item.ID, Quantity: 1, ScheduledDate: "next tuesday", ScheduledTime: "19:30", ServiceType: constant.ServiceTypePickup,
			},
			setupMock: func(*scheduledMocks.MockScheduledCart, *menuMocks.MockItem) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid time",
			req: dto.AddToScheduledCartRequest{
				ItemID: item.ID, Quantity: 1, ScheduledDate: "2026-11-02", ScheduledTime: "dinner", ServiceType: constant.ServiceTypeDelivery,
			},
			setupMock: func(*scheduledMocks.MockScheduledCart, *menuMocks.MockItem) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "menu item not found",
			req: dto.AddToScheduledCartRequest{
				ItemID: item.ID, Quantity: 1, ScheduledDate: "2026-11-02", ScheduledTime: "19:30", ServiceType: constant.ServiceTypePickup,
			},
			setupMock: func(_ *scheduledMocks.MockScheduledCart, itemRepo *menuMocks.MockItem) {
				itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(menuModel.MenuItem{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, itemRepo, svc := setup(t)
			tt.setupMock(repo, itemRepo)

			res, err := svc.Add(userContext(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "2026-11-02", res.ScheduledDate)
			assert.Equal(t, "19:30", res.ScheduledTime)
		})
	}
}

func TestScheduledCartService_Get(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ScheduledCartLine{
		{ID: "l1", Price: decimal.RequireFromString("2.50"), Quantity: 2, ScheduledTime: "12:00"},
	}, nil)

	res, err := svc.Get(userContext())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalItems)
	assert.True(t, decimal.RequireFromString("5").Equal(res.Subtotal))
	assert.Equal(t, "12:00", res.Items[0].ScheduledTime)
}

func TestScheduledCartService_Update(t *testing.T) {
	badTime := "25:61"
	newTime := "8:15 am"

	tests := []struct {
		name      string
		req       dto.UpdateScheduledCartRequest
		setupMock func(repo *scheduledMocks.MockScheduledCart)
		wantCode  int
	}{
		{
			name:      "empty request",
			setupMock: func(*scheduledMocks.MockScheduledCart) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "invalid time",
			req:       dto.UpdateScheduledCartRequest{ScheduledTime: &badTime},
			setupMock: func(*scheduledMocks.MockScheduledCart) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing line",
			req:  dto.UpdateScheduledCartRequest{ScheduledTime: &newTime},
			setupMock: func(repo *scheduledMocks.MockScheduledCart) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "writes normalized time",
			req:  dto.UpdateScheduledCartRequest{ScheduledTime: &newTime},
			setupMock: func(repo *scheduledMocks.MockScheduledCart) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "08:15", fields[model.FieldScheduledTime])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Update(userContext(), tt.req, "l1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduledCartService_RemoveAndClear(t *testing.T) {
	t.Run("missing line", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Remove(userContext(), "l1")))
	})

	t.Run("clear", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Clear(userContext()))
	})
}

func TestScheduledCartService_RequiresSignedInUser(t *testing.T) {
	_, _, svc := setup(t)
	guest := context.Background()

	_, err := svc.Get(guest)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(svc.Remove(guest, "l1")))
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(svc.Clear(guest)))
}

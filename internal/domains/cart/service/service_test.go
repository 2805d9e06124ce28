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
	cartMocks "bistro/internal/domains/cart/mocks"
	"bistro/internal/domains/cart/model"
	"bistro/internal/domains/cart/model/dto"
	"bistro/internal/domains/cart/service"
	menuMocks "bistro/internal/domains/menu/mocks"
	menuModel "bistro/internal/domains/menu/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
)

func setup(t *testing.T) (*cartMocks.MockCart, *menuMocks.MockItem, service.Cart) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := cartMocks.NewMockCart(ctrl)
	mockItemRepo := menuMocks.NewMockItem(ctrl)

	return mockRepo, mockItemRepo, service.New(mockRepo, mockItemRepo, &config.Config{}, mocks.NewOtel())
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
}

func TestCartService_Add(t *testing.T) {
	image := "https://cdn.bistro.test/menu/naan.png"
	item := menuModel.MenuItem{
		ID:       "5b0b3a52-2c1e-4a55-8f0f-9d7b8e0c1a01",
		Name:     "Garlic Naan",
		Price:    decimal.RequireFromString("3.25"),
		ImageURL: &image,
	}

	tests := []struct {
		name      string
		setupMock func(repo *cartMocks.MockCart, itemRepo *menuMocks.MockItem)
		wantCode  int
	}{
		{
			name: "copies menu item snapshot",
			setupMock: func(repo *cartMocks.MockCart, itemRepo *menuMocks.MockItem) {
				itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(item, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, line model.CartLine) error {
					assert.Equal(t, "user-1", line.UserID)
					assert.Equal(t, "Garlic Naan", line.FoodName)
					assert.True(t, item.Price.Equal(line.Price))
					assert.Equal(t, &image, line.Image)

					return nil
				})
			},
		},
		{
			name: "menu item not found",
			setupMock: func(_ *cartMocks.MockCart, itemRepo *menuMocks.MockItem) {
				itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(menuModel.MenuItem{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			setupMock: func(repo *cartMocks.MockCart, itemRepo *menuMocks.MockItem) {
				itemRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(item, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, itemRepo, svc := setup(t)
			tt.setupMock(repo, itemRepo)

			res, err := svc.Add(userContext(), dto.AddToCartRequest{ItemID: item.ID, Quantity: 2})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "6.5", res.LineTotal.String())
		})
	}
}

func TestCartService_Get(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.CartLine, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "user-1", args[model.FieldUserID])

			return []model.CartLine{
				{ID: "l1", Price: decimal.RequireFromString("0.10"), Quantity: 3},
				{ID: "l2", Price: decimal.RequireFromString("0.20"), Quantity: 1},
			}, nil
		})

	res, err := svc.Get(userContext())

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 4, res.TotalItems)
	assert.True(t, decimal.RequireFromString("0.50").Equal(res.Subtotal))
}

func TestCartService_Update(t *testing.T) {
	quantity := 4

	tests := []struct {
		name      string
		req       dto.UpdateCartRequest
		setupMock func(repo *cartMocks.MockCart)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateCartRequest{},
			setupMock: func(*cartMocks.MockCart) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "line of another user",
			req:  dto.UpdateCartRequest{Quantity: &quantity},
			setupMock: func(repo *cartMocks.MockCart) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "successful update",
			req:  dto.UpdateCartRequest{Quantity: &quantity},
			setupMock: func(repo *cartMocks.MockCart) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
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

func TestCartService_Remove(t *testing.T) {
	t.Run("missing line", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Remove(userContext(), "l1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("removes owned line", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Remove(userContext(), "l1"))
	})
}

func TestCartService_Clear(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) error {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(cart_items.user_id = :user_id)", where)

			return nil
		})

	assert.NoError(t, svc.Clear(userContext()))
}

func TestCartService_RequiresSignedInUser(t *testing.T) {
	_, _, svc := setup(t)
	guest := context.Background()

	_, err := svc.Get(guest)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(svc.Remove(guest, "l1")))
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(svc.Clear(guest)))
}

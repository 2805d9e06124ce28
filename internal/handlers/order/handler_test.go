package order_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/infras/otel/mocks"
	"bistro/internal/domains/order/model/dto"
	serviceMocks "bistro/internal/domains/order/service/mocks"
	"bistro/internal/handlers/order"
)

func TestHandler_GetOrderByID(t *testing.T) {
	const orderID = "5f0c7d2e-3b4a-4c1d-8e9f-0a1b2c3d4e5f"

	tests := []struct {
		name      string
		id        string
		setupMock func(svc *serviceMocks.MockOrder)
		wantCode  int
	}{
		{
			name:      "non uuid id is not found",
			id:        "42",
			setupMock: func(*serviceMocks.MockOrder) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "existing order",
			id:   orderID,
			setupMock: func(svc *serviceMocks.MockOrder) {
				svc.EXPECT().Get(gomock.Any(), orderID).Return(dto.OrderResponse{ID: orderID}, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := serviceMocks.NewMockOrder(ctrl)
			tt.setupMock(svc)

			handler := order.New(svc, mocks.NewOtel())

			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+tt.id, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

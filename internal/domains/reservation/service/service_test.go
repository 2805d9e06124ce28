package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/kafka"
	kafkaMocks "bistro/infras/kafka/mocks"
	"bistro/infras/otel/mocks"
	reservationMocks "bistro/internal/domains/reservation/mocks"
	"bistro/internal/domains/reservation/model"
	"bistro/internal/domains/reservation/model/dto"
	"bistro/internal/domains/reservation/service"
	cacheMocks "bistro/shared/cache/mocks"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	txMocks "bistro/shared/repository/mocks"
)

type fixture struct {
	repo  *reservationMocks.MockReservation
	tx    *txMocks.MockTransactor
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	svc   service.Reservation
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  reservationMocks.NewMockReservation(ctrl),
		tx:    txMocks.NewMockTransactor(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Kafka.Topics.ReservationConfirmed = "reservation.confirmed"

	f.svc = service.New(f.repo, f.tx, cfg, f.cache, f.kafka, mocks.NewOtel())

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

func dinnerRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		Name:        "Ravi",
		Phone:       "9876543210",
		Email:       "ravi@example.com",
		Date:        "2026-11-20",
		FromTime:    "19:00",
		ToTime:      "21:00",
		Guests:      4,
		TableNumber: 7,
	}
}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.CreateReservationRequest
		setupMock func(f fixture, published chan struct{})
		wantCode  int
	}{
		{
			name: "invalid date",
			req: func() dto.CreateReservationRequest {
				req := dinnerRequest()
				req.Date = "someday"

				return req
			},
			setupMock: func(fixture, chan struct{}) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "end not after start",
			req: func() dto.CreateReservationRequest {
				req := dinnerRequest()
				req.ToTime = "19:00"

				return req
			},
			setupMock: func(fixture, chan struct{}) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "overlapping reservation is rejected without insert",
			req:  dinnerRequest,
			setupMock: func(f fixture, _ chan struct{}) {
				f.runTx()
				gomock.InOrder(
					f.repo.EXPECT().LockSlotTx(gomock.Any(), gomock.Any(), 7, gomock.Any()).Return(nil),
					f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lock failure",
			req:  dinnerRequest,
			setupMock: func(f fixture, _ chan struct{}) {
				f.runTx()
				f.repo.EXPECT().LockSlotTx(gomock.Any(), gomock.Any(), 7, gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "free slot is confirmed",
			req:  dinnerRequest,
			setupMock: func(f fixture, published chan struct{}) {
				f.runTx()
				gomock.InOrder(
					f.repo.EXPECT().LockSlotTx(gomock.Any(), gomock.Any(), 7, gomock.Any()).Return(nil),
					f.repo.EXPECT().
						ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
							_, args := filter.GetWhereClause()
							assert.Equal(t, 19, args["requested_start"].(time.Time).Hour())
							assert.Equal(t, 21, args["requested_end"].(time.Time).Hour())

							return false, nil
						}),
					f.repo.EXPECT().
						InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, reservation model.Reservation) error {
							assert.Equal(t, model.StatusConfirmed, reservation.Status)
							assert.Equal(t, 4, reservation.NoOfGuest)

							return nil
						}),
				)
				f.kafka.EXPECT().
					SendMessages(gomock.Any(), "reservation.confirmed", gomock.Any()).
					DoAndReturn(func(context.Context, string, ...any) error {
						close(published)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			published := make(chan struct{})
			tt.setupMock(f, published)

			res, err := f.svc.Create(context.Background(), tt.req())

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "19:00", res.FromTime)
			assert.Equal(t, "21:00", res.ToTime)
			assert.Equal(t, "2026-11-20", res.ReservationDate)

			select {
			case <-published:
			case <-time.After(time.Second):
				t.Fatal("reservation confirmed event was not published")
			}
		})
	}
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldStartsAt, SortDir: gDto.SortDirDesc}, gomock.Any()).
		Return([]model.Reservation{{ID: "r1", TableNumber: 2}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "r1", res.Reservations[0].ID)
}

func TestReservationService_CreatedReservationIsListed(t *testing.T) {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  reservationMocks.NewMockReservation(ctrl),
		tx:    txMocks.NewMockTransactor(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	svc := service.New(f.repo, f.tx, cfg, cacheMocks.NewMemory(), f.kafka, mocks.NewOtel())

	var stored []model.Reservation

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.FilterGroup) (int, error) { return len(stored), nil }).
		AnyTimes()
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Reservation, error) {
			return stored, nil
		}).
		AnyTimes()

	f.runTx()
	f.repo.EXPECT().LockSlotTx(gomock.Any(), gomock.Any(), 7, gomock.Any()).Return(nil)
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, reservation model.Reservation) error {
			stored = append(stored, reservation)

			return nil
		})
	published := make(chan struct{})
	f.kafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, ...kafka.Message) error {
			close(published)

			return nil
		})

	params := gDto.QueryParams{Page: 1, Limit: 10}

	before, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, before.Reservations)

	created, err := svc.Create(context.Background(), dinnerRequest())
	require.NoError(t, err)

	after, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, after.Reservations, 1)
	assert.Equal(t, created.ID, after.Reservations[0].ID)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("reservation confirmed event was not published")
	}
}

func TestReservationService_Get(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

	_, err := f.svc.Get(context.Background(), "r1")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestReservationService_UpdateStatus(t *testing.T) {
	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusCancelled}, "r1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cancels", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})

		assert.NoError(t, f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusCancelled}, "r1"))
	})
}

func TestReservationService_Delete(t *testing.T) {
	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), "r1")))
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "r1"))
	})
}

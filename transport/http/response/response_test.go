package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro/shared/failure"
	"bistro/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"count":2}}`, recorder.Body.String())
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusCreated, "Reservation confirmed")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"success":true,"message":"Reservation confirmed"}`, recorder.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "conflict",
			err:      failure.Conflict("table already booked for this time"),
			wantCode: http.StatusConflict,
			wantBody: `{"success":false,"error":"table already booked for this time"}`,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("failed to delete order: %w", failure.NotFound("order not found")),
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"error":"order not found"}`,
		},
		{
			name:     "unknown error hides details",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.JSONEq(t, `{"success":false,"message":"REQUEST LIMIT EXCEEDED"}`, recorder.Body.String())
}

func TestWithJSONTypedPayload(t *testing.T) {
	type line struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}

	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, []line{{ItemID: "naan", Quantity: 2}})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"item_id":"naan","quantity":2}]}`, recorder.Body.String())
}

func TestWithJSONUnencodable(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]any{"broken": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, recorder.Body.String())
}

func TestHealthResponses(t *testing.T) {
	unhealthy := httptest.NewRecorder()
	response.WithUnhealthy(unhealthy)

	assert.Equal(t, http.StatusServiceUnavailable, unhealthy.Code)
	assert.JSONEq(t, `{"success":false,"message":"SERVER UNHEALTHY"}`, unhealthy.Body.String())

	draining := httptest.NewRecorder()
	response.WithPreparingShutdown(draining)

	assert.Equal(t, http.StatusServiceUnavailable, draining.Code)
	assert.JSONEq(t, `{"success":false,"message":"SERVER PREPARING TO SHUT DOWN"}`, draining.Body.String())
}

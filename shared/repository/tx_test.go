package repository

import (
	"errors"
	"net/http"
	"testing"

	"bistro/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantNil  bool
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, wantCode: http.StatusConflict},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, wantCode: http.StatusConflict},
		{name: "wrapped unique violation", err: errors.Join(errors.New("insert"), &pq.Error{Code: "23505"}), wantCode: http.StatusConflict},
		{name: "malformed uuid", err: &pq.Error{Code: "22P02"}, wantCode: http.StatusNotFound},
		{name: "other postgres error", err: &pq.Error{Code: "42P01"}, wantNil: true},
		{name: "plain error", err: errors.New("boom"), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := constraintError(tt.err, "menu item")

			if tt.wantNil {
				assert.NoError(t, got)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(got))
		})
	}
}

package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"bistro/shared/failure"
	"bistro/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dishRequest struct {
	Name     string           `json:"name"      validate:"required"`
	Email    string           `json:"email"     validate:"omitempty,email"`
	Price    *decimal.Decimal `json:"price"     validate:"required,gte=0"`
	Spicy    int              `json:"spicy"     validate:"gte=0,lte=5"`
	Service  string           `json:"service"   validate:"omitempty,oneof=pickup delivery"`
	Internal string           `json:"-"         validate:"omitempty,max=3"`
}

func price(value string) *decimal.Decimal {
	amount := decimal.RequireFromString(value)

	return &amount
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    dishRequest
		wantMsg string
	}{
		{name: "valid", data: dishRequest{Name: "Dal Makhani", Price: price("8.50"), Spicy: 2}},
		{name: "zero price", data: dishRequest{Name: "Water", Price: price("0")}},
		{name: "missing name", data: dishRequest{Price: price("1")}, wantMsg: "name is required"},
		{name: "missing price", data: dishRequest{Name: "Naan"}, wantMsg: "price is required"},
		{name: "negative price", data: dishRequest{Name: "Naan", Price: price("-0.01")}, wantMsg: "price must be greater than or equal to 0"},
		{name: "too spicy", data: dishRequest{Name: "Vindaloo", Price: price("9"), Spicy: 6}, wantMsg: "spicy must be less than or equal to 5"},
		{name: "bad service type", data: dishRequest{Name: "Naan", Price: price("1"), Service: "drone"}, wantMsg: "service must be one of pickup delivery"},
		{name: "bad email", data: dishRequest{Name: "Naan", Price: price("1"), Email: "chef"}, wantMsg: "email must be a valid email address"},
		{name: "unexported json name", data: dishRequest{Name: "Naan", Price: price("1"), Internal: "abcd"}, wantMsg: "Internal must be at most 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Paneer Tikka","price":12.5,"spicy":3}`},
		{name: "price as string", body: `{"name":"Paneer Tikka","price":"12.50"}`},
		{name: "fails rules", body: `{"name":"","price":1}`, wantErr: true},
		{name: "malformed", body: `{"name":"Paneer",`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data dishRequest

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Paneer Tikka", data.Name)
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantMsg string
	}{
		{name: "uuid", field: "6f1c1f7e-2f1d-4d8e-9a57-3f4b3b4f0c11", tag: "uuid"},
		{name: "not a uuid", field: "42", tag: "uuid", wantMsg: "value must be a valid id"},
		{name: "allowed mime", field: "image/webp", tag: "mimetypes=image/png image/webp"},
		{name: "mime case insensitive", field: "IMAGE/PNG", tag: "mimetypes=image/png image/webp"},
		{name: "rejected mime", field: "application/pdf", tag: "mimetypes=image/png image/webp", wantMsg: "value must be one of image/png image/webp"},
		{name: "size within limit", field: int64(1 << 20), tag: "maxfilesize=1"},
		{name: "size over limit", field: int64(1<<20 + 1), tag: "maxfilesize=1", wantMsg: "value must not exceed 1 MB"},
		{name: "fractional limit", field: int64(600 * 1024), tag: "maxfilesize=0.5", wantMsg: "value must not exceed 0.5 MB"},
		{name: "unsupported size type", field: "big", tag: "maxfilesize=1", wantMsg: "value must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

type uploadForm struct {
	File *multipart.FileHeader `json:"file" validate:"required,mimetypes=image/png video/mp4,maxfilesize=1"`
}

func TestValidateUpload(t *testing.T) {
	header := func(contentType string, size int64) *multipart.FileHeader {
		mime := textproto.MIMEHeader{}
		mime.Set("Content-Type", contentType)

		return &multipart.FileHeader{Filename: "dish", Header: mime, Size: size}
	}

	assert.NoError(t, validator.ValidateStruct(&uploadForm{File: header("image/png", 512)}))

	err := validator.ValidateStruct(&uploadForm{})
	require.Error(t, err)
	assert.Equal(t, "file is required", err.Error())

	err = validator.ValidateStruct(&uploadForm{File: header("text/html", 512)})
	require.Error(t, err)
	assert.Equal(t, "file must be one of image/png video/mp4", err.Error())

	err = validator.ValidateStruct(&uploadForm{File: header("video/mp4", 2<<20)})
	require.Error(t, err)
	assert.Equal(t, "file must not exceed 1 MB", err.Error())
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantCode int
	}{
		{name: "uuid", id: "0b7c2f4e-3d1a-4c8e-9f6b-2a5d7e9c1b3f"},
		{name: "numeric id", id: "42", wantCode: http.StatusNotFound},
		{name: "empty", id: "", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateID(tt.id, "order")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, "order not found")
		})
	}
}

package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"bistro/shared/constant"
	"bistro/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	rules := map[string]val.Func{
		"mimetypes":   mimeTypes,
		"maxfilesize": maxFileSize,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// jsonName reports fields under the name clients send them as.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "":
		return field.Name
	case "-":
		return ""
	default:
		return name
	}
}

// decimalValue lets numeric tags (gte, gt, lte) apply to decimal.Decimal fields.
func decimalValue(field reflect.Value) any {
	if amount, ok := field.Interface().(decimal.Decimal); ok {
		return amount.InexactFloat64()
	}

	return nil
}

// mimeTypes checks an uploaded file, or a bare content type string, against a space separated allow list.
func mimeTypes(fl val.FieldLevel) bool {
	var contentType string

	switch value := fl.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = value
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(fl.Param()), strings.ToLower(contentType))
}

// maxFileSize caps an upload, or a byte count, at the megabytes given as the tag param.
func maxFileSize(fl val.FieldLevel) bool {
	limitMB, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	switch value := fl.Field().Interface().(type) {
	case multipart.FileHeader:
		size = value.Size
	case int64:
		size = value
	case int:
		size = int64(value)
	default:
		return false
	}

	return float64(size) <= limitMB*bytesPerMB
}

// Validate decodes a JSON body into data and runs its validate tags.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateID reports a path identifier that is not a UUID as a missing entity, since no row can carry it.
func ValidateID(id, entity string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return failure.NotFound(entity + " not found") //nolint:wrapcheck
	}

	return nil
}

package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":    "%f is required",
	"gte":         "%f must be greater than or equal to %p",
	"gt":          "%f must be greater than %p",
	"lte":         "%f must be less than or equal to %p",
	"lt":          "%f must be less than %p",
	"oneof":       "%f must be one of %p",
	"max":         "%f must be at most %p",
	"min":         "%f must be at least %p",
	"len":         "%f must have length %p",
	"email":       "%f must be a valid email address",
	"url":         "%f must be a valid url",
	"uuid":        "%f must be a valid id",
	"unique":      "%f must not contain duplicates",
	"nefield":     "%f must differ from %p",
	"eqfield":     "%f must match %p",
	"gtfield":     "%f must be after %p",
	"datetime":    "%f must match the format %p",
	"mimetypes":   "%f must be one of %p",
	"maxfilesize": "%f must not exceed %p MB",
}

// message renders the first failed rule that has a template, so clients see one actionable error.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := templates[fieldErr.Tag()]
		if !ok {
			continue
		}

		field := fieldErr.Field()
		if field == "" {
			field = "value"
		}

		return strings.NewReplacer("%f", field, "%p", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/logger"

	"github.com/rs/zerolog/log"
)

const messageInternalError = "internal server error"

// Data wraps a successful payload.
type Data[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

// Error carries the message of a failure.Failure. Any other error is reported as an internal error.
type Error struct {
	Success bool    `json:"success"`
	Error   *string `json:"error,omitempty"`
}

type Message struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Success: code < http.StatusBadRequest, Message: &message})
}

func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	write(writer, code, Data[T]{Success: true, Data: &payload})
}

func WithError(writer http.ResponseWriter, err error) {
	message := messageInternalError

	var fail *failure.Failure
	if errors.As(err, &fail) {
		message = fail.Message
	} else {
		logger.ErrorWithStack(err)
	}

	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError && fail != nil {
		log.Error().Err(err).Int("status", code).Msg("request failed")
	}

	write(writer, code, Error{Error: &message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write encodes the whole body before touching the writer, so an encoding failure still yields a 500.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":"` + messageInternalError + `"}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response body")
	}
}

package payment

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/payment/model/dto"
	"bistro/internal/domains/payment/service"
	"bistro/shared/constant"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/session", handler.CreateSession)
		routerGroup.Post("/verify", handler.Verify)
	})
}

// CreateSession opens a payment order on the gateway.
// @Summary Create a payment session
// @Description Returns the gateway order id and public key the client checkout needs.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Create Session Request"
// @Success 201 {object} response.Data[dto.SessionResponse] "Payment session"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/session [post]
// @Security BearerAuth
func (handler *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSession")
	defer scope.End()

	req := dto.CreateSessionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.CreateSession(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment session " + session.OrderID + " created")

	response.WithJSON(w, http.StatusCreated, session)
}

// Verify checks the signature the gateway returned to the client.
// @Summary Verify a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.VerifyRequest true "Verify Request"
// @Success 200 {object} response.Data[dto.VerifyResponse] "Payment verified"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/verify [post]
// @Security BearerAuth
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	req := dto.VerifyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

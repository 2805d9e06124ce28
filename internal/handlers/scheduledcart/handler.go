package scheduledcart

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/scheduledcart/model/dto"
	"bistro/internal/domains/scheduledcart/service"
	"bistro/shared/constant"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ScheduledCart
	otel    otel.Otel
}

func New(service service.ScheduledCart, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/scheduled-cart", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddToScheduledCart)
		routerGroup.Get("/", handler.GetScheduledCart)
		routerGroup.Delete("/", handler.ClearScheduledCart)
		routerGroup.Patch("/{id}", handler.UpdateScheduledCartLine)
		routerGroup.Delete("/{id}", handler.RemoveScheduledCartLine)
	})
}

// AddToScheduledCart adds a menu item for a later pickup or delivery slot.
// @Summary Add an item to the scheduled cart
// @Description Accepts dates like 2025-01-31 or 01/31/2025 and times like 19:30 or 7:30 PM.
// @Tags Scheduled Cart
// @Accept json
// @Produce json
// @Param request body dto.AddToScheduledCartRequest true "Add To Scheduled Cart Request"
// @Success 201 {object} response.Data[dto.LineResponse] "Created scheduled cart line"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scheduled-cart [post]
// @Security BearerAuth
func (handler *Handler) AddToScheduledCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddToScheduledCart")
	defer scope.End()

	req := dto.AddToScheduledCartRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	line, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add item to scheduled cart")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item scheduled by user " + user)

	response.WithJSON(w, http.StatusCreated, line)
}

// GetScheduledCart returns the session user's scheduled cart.
// @Summary Get the scheduled cart
// @Tags Scheduled Cart
// @Produce json
// @Success 200 {object} response.Data[dto.ScheduledCartResponse] "Scheduled cart contents"
// @Failure 500 {object} response.Error
// @Router /v1/scheduled-cart [get]
// @Security BearerAuth
func (handler *Handler) GetScheduledCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScheduledCart")
	defer scope.End()

	cart, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get scheduled cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cart)
}

// UpdateScheduledCartLine updates quantity, note, slot or service type of a line.
// @Summary Update a scheduled cart line
// @Tags Scheduled Cart
// @Accept json
// @Produce json
// @Param id path string true "Scheduled cart line ID"
// @Param request body dto.UpdateScheduledCartRequest true "Update Scheduled Cart Request"
// @Success 200 {object} response.Message "Scheduled cart updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scheduled-cart/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateScheduledCartLine(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateScheduledCartLine")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "scheduled cart item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateScheduledCartRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update scheduled cart line")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Scheduled cart updated successfully")
}

// RemoveScheduledCartLine removes one line from the scheduled cart.
// @Summary Remove a scheduled cart line
// @Tags Scheduled Cart
// @Produce json
// @Param id path string true "Scheduled cart line ID"
// @Success 200 {object} response.Message "Item removed from scheduled cart"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scheduled-cart/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveScheduledCartLine(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveScheduledCartLine")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "scheduled cart item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove scheduled cart line")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Item removed from scheduled cart")
}

// ClearScheduledCart empties the session user's scheduled cart.
// @Summary Clear the scheduled cart
// @Tags Scheduled Cart
// @Produce json
// @Success 200 {object} response.Message "Scheduled cart cleared"
// @Failure 500 {object} response.Error
// @Router /v1/scheduled-cart [delete]
// @Security BearerAuth
func (handler *Handler) ClearScheduledCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearScheduledCart")
	defer scope.End()

	if err := handler.service.Clear(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear scheduled cart")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Scheduled cart cleared")
}

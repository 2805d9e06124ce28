package offer

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/offer/model"
	"bistro/internal/domains/offer/model/dto"
	"bistro/internal/domains/offer/repository"
	"bistro/internal/domains/offer/service"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/timezone"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryParamActiveOn = "active_on"

type Handler struct {
	service service.Offer
	otel    otel.Otel
}

func New(service service.Offer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/offers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOffer)
		routerGroup.Get("/", handler.GetOffers)
		routerGroup.Get("/{id}", handler.GetOfferByID)
		routerGroup.Patch("/{id}", handler.UpdateOffer)
		routerGroup.Delete("/{id}", handler.DeleteOffer)
	})
}

// CreateOffer bundles two or more menu items into an offer.
// @Summary Create an offer
// @Tags Offer
// @Accept json
// @Produce json
// @Param request body dto.CreateOfferRequest true "Create Offer Request"
// @Success 201 {object} response.Data[dto.OfferResponse] "Created offer"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers [post]
// @Security BearerAuth
func (handler *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffer")
	defer scope.End()

	req := dto.CreateOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	offer, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create offer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Offer created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, offer)
}

// GetOffers lists offers with their bundled items.
// @Summary Get all offers
// @Tags Offer
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active_on query string false "Only offers running on this date"
// @Param offer_type query string false "Filter by offer type"
// @Success 200 {object} response.Data[dto.GetOffersResponse] "List of offers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers [get]
func (handler *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOffers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if activeOn := query.Get(queryParamActiveOn); activeOn != "" {
		day, err := timezone.ParseDate(activeOn)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, failure.BadRequest(err))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, repository.FilterActiveOn(day))
	}

	if offerType := query.Get(model.FieldOfferType); offerType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldOfferType,
			Operator: gDto.FilterOperatorEq,
			Value:    offerType,
			Table:    model.TableName,
		})
	}

	offers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get offers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, offers)
}

// GetOfferByID retrieves an offer.
// @Summary Get an offer by ID
// @Tags Offer
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} response.Data[dto.OfferResponse] "Offer details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [get]
func (handler *Handler) GetOfferByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "offer"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	offer, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get offer by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, offer)
}

// UpdateOffer partially updates an offer. A new selectedItems list replaces the bundled items.
// @Summary Update an offer by ID
// @Tags Offer
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body dto.UpdateOfferRequest true "Update Offer Request"
// @Success 200 {object} response.Message "Offer updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOffer")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "offer"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateOfferRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update offer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Offer updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Offer updated successfully")
}

// DeleteOffer hard deletes an offer and its bundled items.
// @Summary Delete an offer by ID
// @Tags Offer
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} response.Message "Offer deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOffer")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "offer"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Offer deleted successfully")
}

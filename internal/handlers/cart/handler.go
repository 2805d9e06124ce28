package cart

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/cart/model/dto"
	"bistro/internal/domains/cart/service"
	"bistro/shared/constant"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cart
	otel    otel.Otel
}

func New(service service.Cart, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cart", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddToCart)
		routerGroup.Get("/", handler.GetCart)
		routerGroup.Delete("/", handler.ClearCart)
		routerGroup.Patch("/{id}", handler.UpdateCartLine)
		routerGroup.Delete("/{id}", handler.RemoveCartLine)
	})
}

// AddToCart adds a menu item to the session user's cart.
// @Summary Add an item to the cart
// @Description Snapshot the menu item's name, price and image into a new cart line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body dto.AddToCartRequest true "Add To Cart Request"
// @Success 201 {object} response.Data[dto.LineResponse] "Created cart line"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cart [post]
// @Security BearerAuth
func (handler *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddToCart")
	defer scope.End()

	req := dto.AddToCartRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	line, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add item to cart")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item added to cart by user " + user)

	response.WithJSON(w, http.StatusCreated, line)
}

// GetCart returns the session user's cart with line totals and subtotal.
// @Summary Get the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} response.Data[dto.CartResponse] "Cart contents"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cart [get]
// @Security BearerAuth
func (handler *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCart")
	defer scope.End()

	cart, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cart)
}

// UpdateCartLine changes the quantity or note of a cart line.
// @Summary Update a cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Cart line ID"
// @Param request body dto.UpdateCartRequest true "Update Cart Request"
// @Success 200 {object} response.Message "Cart updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cart/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCartLine(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCartLine")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "cart item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateCartRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cart line")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Cart updated successfully")
}

// RemoveCartLine removes one line from the cart.
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param id path string true "Cart line ID"
// @Success 200 {object} response.Message "Item removed from cart"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cart/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveCartLine")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "cart item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove cart line")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Item removed from cart")
}

// ClearCart empties the session user's cart.
// @Summary Clear the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} response.Message "Cart cleared"
// @Failure 500 {object} response.Error
// @Router /v1/cart [delete]
// @Security BearerAuth
func (handler *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearCart")
	defer scope.End()

	if err := handler.service.Clear(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear cart")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cart cleared by user " + user)

	response.WithMessage(w, http.StatusOK, "Cart cleared")
}

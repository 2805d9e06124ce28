package router

import (
	"bistro/internal/handlers/auth"
	"bistro/internal/handlers/cart"
	"bistro/internal/handlers/media"
	"bistro/internal/handlers/menu"
	"bistro/internal/handlers/offer"
	"bistro/internal/handlers/order"
	"bistro/internal/handlers/payment"
	"bistro/internal/handlers/reservation"
	"bistro/internal/handlers/role"
	"bistro/internal/handlers/scheduledcart"
	"bistro/internal/handlers/user"
	"bistro/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth          auth.Handler
	User          user.Handler
	Role          role.Handler
	Menu          menu.Handler
	Cart          cart.Handler
	ScheduledCart scheduledcart.Handler
	Order         order.Handler
	Reservation   reservation.Handler
	Offer         offer.Handler
	Media         media.Handler
	Payment       payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Role.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Cart.Router(routerGroup)
		r.DomainHandlers.ScheduledCart.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Offer.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}

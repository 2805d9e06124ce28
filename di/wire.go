//go:build wireinject
// +build wireinject

package di

import (
	"bistro/config"
	"bistro/infras/jwt"
	"bistro/infras/kafka"
	"bistro/infras/otel"
	"bistro/infras/payment"
	"bistro/infras/postgres"
	"bistro/infras/redis"
	"bistro/infras/s3"
	"bistro/permissions"
	"bistro/shared/cache"
	gRepo "bistro/shared/repository"
	"bistro/transport/http"
	"bistro/transport/http/middleware"
	"bistro/transport/http/router"

	"github.com/google/wire"

	authService "bistro/internal/domains/auth/service"
	cartRepository "bistro/internal/domains/cart/repository"
	cartService "bistro/internal/domains/cart/service"
	mediaService "bistro/internal/domains/media/service"
	menuRepository "bistro/internal/domains/menu/repository"
	menuService "bistro/internal/domains/menu/service"
	offerRepository "bistro/internal/domains/offer/repository"
	offerService "bistro/internal/domains/offer/service"
	orderRepository "bistro/internal/domains/order/repository"
	orderService "bistro/internal/domains/order/service"
	paymentService "bistro/internal/domains/payment/service"
	reservationRepository "bistro/internal/domains/reservation/repository"
	reservationService "bistro/internal/domains/reservation/service"
	roleRepository "bistro/internal/domains/role/repository"
	roleService "bistro/internal/domains/role/service"
	scheduledCartRepository "bistro/internal/domains/scheduledcart/repository"
	scheduledCartService "bistro/internal/domains/scheduledcart/service"
	userRepository "bistro/internal/domains/user/repository"
	userService "bistro/internal/domains/user/service"

	authHandler "bistro/internal/handlers/auth"
	cartHandler "bistro/internal/handlers/cart"
	mediaHandler "bistro/internal/handlers/media"
	menuHandler "bistro/internal/handlers/menu"
	offerHandler "bistro/internal/handlers/offer"
	orderHandler "bistro/internal/handlers/order"
	paymentHandler "bistro/internal/handlers/payment"
	reservationHandler "bistro/internal/handlers/reservation"
	roleHandler "bistro/internal/handlers/role"
	scheduledCartHandler "bistro/internal/handlers/scheduledcart"
	userHandler "bistro/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	payment.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.PermissionChecker), new(roleService.Role)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var menuDomain = wire.NewSet(
	menuRepository.NewCategory,
	menuRepository.NewItem,
	menuService.NewCategory,
	menuService.NewItem,
)

var cartDomain = wire.NewSet(
	cartRepository.New,
	cartService.New,
	scheduledCartRepository.New,
	scheduledCartService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderRepository.NewLineItem,
	orderService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var offerDomain = wire.NewSet(
	offerRepository.New,
	offerRepository.NewOfferItem,
	offerService.New,
)

var identityDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	roleRepository.New,
	roleRepository.NewPermission,
	roleService.New,
	authService.New,
)

var externalDomain = wire.NewSet(
	mediaService.New,
	paymentService.New,
)

var domains = wire.NewSet(
	menuDomain,
	cartDomain,
	orderDomain,
	reservationDomain,
	offerDomain,
	identityDomain,
	externalDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roleHandler.New,
	menuHandler.New,
	cartHandler.New,
	scheduledCartHandler.New,
	orderHandler.New,
	reservationHandler.New,
	offerHandler.New,
	mediaHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

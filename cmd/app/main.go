package main

import (
	"bistro/config"
	"bistro/di"
	"bistro/helper"
	"bistro/shared/logger"
	"bistro/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Bistro API
// @version 1.0
// @description Restaurant back-office API: menu, cart, orders, reservations and offers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	timezone.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}

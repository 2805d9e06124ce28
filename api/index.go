package handler

import (
	"net/http"
	"sync"

	"bistro/config"
	"bistro/di"
	"bistro/shared/logger"
	"bistro/shared/timezone"
	transport "bistro/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		timezone.Init(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}

package logger

import (
	"os"
	"time"

	"bistro/config"
	"bistro/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger sets up a human readable logger at trace level until SetLogLevel applies the configuration.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info. Outside development the logger switches to JSON
// lines tagged with the service name.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if config.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", config.App.Name).Logger()
	}

	zerolog.SetGlobalLevel(level)
	log.Info().Str("loglevel", level.String()).Str("env", config.Server.Env).Msg("Log level configured.")
}

// ErrorWithStack logs err with the stack trace of the caller.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

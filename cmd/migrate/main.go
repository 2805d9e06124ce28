package main

import (
	"os"

	"bistro/config"
	"bistro/helper"
	"bistro/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|step-up|down|drop"

func main() {
	logger.InitLogger()

	if len(os.Args) != 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("migration failed")
	}
}

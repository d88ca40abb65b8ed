package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/notenmeister/internal/app"
	"github.com/ilyadubrovsky/notenmeister/internal/config"
)

func main() {
	help := flag.Bool("help-env", false, "print the supported environment variables")
	flag.Parse()

	if *help {
		fmt.Println(config.Description())
		return
	}

	// .env is optional, the environment wins over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Msgf("godotenv.Load: %v", err)
	}

	cfg, err := config.NewConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Msgf("cant initialize config: %v", err)
	}

	initLogger(cfg.Log)

	if err = app.Run(cfg); err != nil {
		log.Fatal().Msgf("app.Run: %v", err)
	}
}

func initLogger(cfg config.Log) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Level).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

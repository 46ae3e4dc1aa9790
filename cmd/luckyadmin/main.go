package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/drawlabs/luckyadmin/internal/buildinfo"
	"github.com/drawlabs/luckyadmin/internal/cli"
	"github.com/drawlabs/luckyadmin/internal/config"
	"github.com/drawlabs/luckyadmin/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to load config")
	}
	zl = zl.Level(logLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logging.NewZerologLogger(zl))
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to start")
	}

	app.Run(context.Background())
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

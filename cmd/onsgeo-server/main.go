package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/onsgeo/onsgeo/internal/core/config"
	"github.com/onsgeo/onsgeo/internal/core/httpclient"
	"github.com/onsgeo/onsgeo/internal/core/observability"
	"github.com/onsgeo/onsgeo/internal/core/server"
	"github.com/onsgeo/onsgeo/internal/logger"
	"github.com/onsgeo/onsgeo/pkg/geoportal"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		zl := logger.Build(logger.Config{Level: "error", Component: "onsgeo-server"}, os.Stderr)
		zl.Error().Err(err).Msg("load config")
		return 1
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "onsgeo-server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting onsgeo-server",
		"addr", cfg.Addr,
		"version", Version,
		"portal", cfg.PortalURL)

	client := geoportal.New(
		geoportal.WithBaseURL(cfg.PortalURL),
		geoportal.WithHTTPClient(httpclient.NewOutbound(cfg.RequestTimeout)),
		geoportal.WithLogger(appLog),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, appLog, client); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

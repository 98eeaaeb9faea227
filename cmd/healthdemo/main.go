package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/healthdemo/internal"
	"github.com/dmitrymomot/healthdemo/internal/config"
	"github.com/dmitrymomot/healthdemo/middlewares"
	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	cfg, err := config.Load(".env", ".local.env")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	svc, err := newService(cfg, log)
	if err != nil {
		log.Error("build service", "error", err)
		os.Exit(1)
	}

	err = svc.app.Run(cfg.HTTP.Address,
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		internal.DrainDelay(cfg.HTTP.DrainDelay),
		internal.ShutdownHook(logger.Flush(sentryFlushTimeout)),
	)
	if err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

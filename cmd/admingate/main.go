package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matt-dz/admingate/internal/api"
	"github.com/matt-dz/admingate/internal/config"
	"github.com/matt-dz/admingate/internal/env"
	"github.com/matt-dz/admingate/internal/http"
	"github.com/matt-dz/admingate/internal/log"
)

const healthcheckTimeout = 10 * time.Second

func newLogger(conf config.Config) (*slog.Logger, error) {
	level, err := log.ParseLevel(conf.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if conf.Env == config.EnvDev {
		return log.NewDev(opts), nil
	}
	return log.New(opts), nil
}

func healthcheck(ctx context.Context, conf config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	scheme := "http"
	if conf.Server.TLSEnabled() {
		scheme = "https"
	}

	client := http.New(http.DefaultConfig()).WithLogger(logger)
	return client.Ping(ctx, fmt.Sprintf("%s://127.0.0.1:%d/api/ping", scheme, conf.Server.Port))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if l, err := newLogger(conf); err != nil {
		logger.Error("failed to setup logger", slog.Any("error", err))
		os.Exit(1)
	} else {
		logger = l
	}

	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := healthcheck(ctx, conf, logger); err != nil {
			logger.Error("healthcheck failed", slog.Any("error", err))
			os.Exit(1)
		}
		os.Exit(0)
	}

	httpConfig := http.DefaultConfig()
	httpConfig.Logger = logger

	env := env.New(nil)
	env.Logger = logger
	env.Config = conf
	env.HTTP = http.New(httpConfig)

	logger.DebugContext(ctx, "starting server", slog.String("env", conf.Env), slog.String("admin", conf.Admin.Username))
	if err := api.Start(ctx, env); err != nil {
		env.Logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}

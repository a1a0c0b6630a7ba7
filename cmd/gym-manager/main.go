// Package main Gym Manager API
//
// @title           Gym Manager API
// @version         1.0
// @description     API для учета клиентов, визитов и выручки спортзала

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	_ "github.com/magabrotheeeer/gym-manager/docs"
	"github.com/magabrotheeeer/gym-manager/internal/app/gym"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)

	logger.Info("starting gym-manager", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := gym.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("gym-manager stopped gracefully")
}

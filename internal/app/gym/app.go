package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-manager/internal/app/backend"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	gymservice "github.com/magabrotheeeer/gym-manager/internal/services/gym"
	insightsservice "github.com/magabrotheeeer/gym-manager/internal/services/insights"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server  *http.Server
	logger  *slog.Logger
	backend *backend.Backend
}

// New поднимает хранилище, загружает коллекции и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gym.New"

	b, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gymService := gymservice.New(b.Store, logger, gymservice.Settings{
		Location:    cfg.Location(),
		DailyFee:    decimal.NewFromInt(cfg.DailyFee),
		EmailDomain: cfg.EmailDomain,
	}, m)
	if err := gymService.Load(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authService, err := authservice.NewAuthService(gymService, jwt.NewJWTMaker(cfg.JWTSecretKey), authservice.Credentials{
		AdminPasscode:  cfg.AdminPasscode,
		WorkerPasscode: cfg.WorkerPasscode,
		AdminName:      cfg.AdminName,
		AdminEmail:     cfg.AdminEmail,
	}, m)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	insightsService, err := newInsights(ctx, cfg, b, logger)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Gym:      gymService,
		Auth:     authService,
		Insights: insightsService,
		Health:   b.Store,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.InsightsTimeout + cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		backend: b,
	}, nil
}

func newInsights(ctx context.Context, cfg *config.Config, b *backend.Backend, logger *slog.Logger) (*insightsservice.Service, error) {
	var gen insightsservice.Generator
	if cfg.InsightsAPIKey != "" {
		g, err := insightsservice.NewGeminiGenerator(ctx, cfg.InsightsAPIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		gen = g
	} else {
		logger.Warn("GEMINI_API_KEY is not set, insights will return a static message")
	}

	var c insightsservice.Cache
	if b.Cache != nil {
		c = b.Cache
	}
	return insightsservice.NewService(gen, c, cfg.InsightsTimeout, cfg.CacheTTL, logger), nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.backend.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.backend.Close()
		return err
	}
}

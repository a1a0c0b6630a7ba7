// Package gym собирает HTTP-приложение спортзала: маршруты, сервисы и сервер.
package gym

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/session"
	checkincreate "github.com/magabrotheeeer/gym-manager/internal/http/handlers/checkin/create"
	checkinlist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/checkin/list"
	clientcreate "github.com/magabrotheeeer/gym-manager/internal/http/handlers/client/create"
	clientlist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/client/list"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/client/renew"
	clientremove "github.com/magabrotheeeer/gym-manager/internal/http/handlers/client/remove"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/report/alerts"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/report/dailytotal"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/report/history"
	insightshandler "github.com/magabrotheeeer/gym-manager/internal/http/handlers/report/insights"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/report/summary"
	workerlist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/worker/list"
	workerremove "github.com/magabrotheeeer/gym-manager/internal/http/handlers/worker/remove"
	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	gymservice "github.com/magabrotheeeer/gym-manager/internal/services/gym"
	insightsservice "github.com/magabrotheeeer/gym-manager/internal/services/insights"
)

// Deps зависимости маршрутов.
type Deps struct {
	Logger   *slog.Logger
	Gym      *gymservice.Service
	Auth     *authservice.AuthService
	Insights *insightsservice.Service
	Health   health.Checker
	Limiter  *rate.Limiter
	Gatherer prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Лимит только для API: проверки здоровья и сбор метрик его не расходуют
		r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))

		// Открытые конечные точки
		r.Post("/login", login.New(logger, d.Auth).ServeHTTP)

		// Группа с проверкой токена сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Auth, logger))

			r.Get("/session", session.New(logger, d.Auth).ServeHTTP)
			r.Post("/logout", logout.New(logger, d.Auth).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, d.Gym).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, d.Gym).ServeHTTP)
			r.Post("/clients/{id}/renew", renew.New(logger, d.Gym).ServeHTTP)
			r.Delete("/clients/{id}", clientremove.New(logger, d.Gym).ServeHTTP)

			r.Post("/checkins", checkincreate.New(logger, d.Gym).ServeHTTP)
			r.Get("/checkins", checkinlist.New(logger, d.Gym).ServeHTTP)

			r.Get("/reports/alerts", alerts.New(logger, d.Gym).ServeHTTP)
			r.Get("/reports/daily-total", dailytotal.New(logger, d.Gym).ServeHTTP)

			// Только управляющий
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/reports/summary", summary.New(logger, d.Gym).ServeHTTP)
				r.Get("/reports/history", history.New(logger, d.Gym).ServeHTTP)
				r.Get("/reports/insights", insightshandler.New(logger, d.Gym, d.Insights).ServeHTTP)
				r.Get("/workers", workerlist.New(logger, d.Gym).ServeHTTP)
				r.Delete("/workers/{id}", workerremove.New(logger, d.Gym).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, d.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// Package dailytotal отдает сумму разовых посещений за календарный день.
package dailytotal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	DailyTotal(day models.Date) decimal.Decimal
	Today(now time.Time) models.Date
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выручка за день
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD, по умолчанию сегодня"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /reports/daily-total [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.dailytotal"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	day := h.service.Today(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			log.Warn("invalid date", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("date must be in format YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	total := h.service.DailyTotal(day)

	log.Info("daily total computed", slog.String("date", day.String()), slog.String("total", total.String()))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"date":  day,
		"total": total,
	}))
}

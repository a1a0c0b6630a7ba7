// Package insights отдает управляющему короткие советы по выручке.
// Ответ всегда 200: при отсутствии ключа или сбое модели возвращается статический текст.
package insights

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log      *slog.Logger
	reports  Reports
	insights Advisor
}

// Reports источник сводки для советов.
type Reports interface {
	Summary(now time.Time) models.Summary
}

// Advisor генерирует советы по показателям.
type Advisor interface {
	GetInsights(ctx context.Context, stats models.InsightStats) string
}

func New(log *slog.Logger, reports Reports, insights Advisor) *Handler {
	return &Handler{
		log:      log,
		reports:  reports,
		insights: insights,
	}
}

// ServeHTTP godoc
// @Summary Советы по выручке
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /reports/insights [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.insights"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats := models.StatsFromSummary(h.reports.Summary(time.Now()))
	text := h.insights.GetInsights(r.Context(), stats)

	log.Info("insights served")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"insights": text,
		"stats":    stats,
	}))
}

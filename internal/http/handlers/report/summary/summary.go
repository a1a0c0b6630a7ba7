package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Summary(now time.Time) models.Summary
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка выручки
// @Description Только для управляющего. Активные считаются по сохраненному статусу.
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Summary}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /reports/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary := h.service.Summary(time.Now())

	log.Info("summary computed", slog.String("total", summary.TotalRevenue.String()))
	render.JSON(w, r, response.StatusOKWithData(summary))
}

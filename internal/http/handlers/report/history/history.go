// Package history отдает единую историю платежей: абонементы и разовые посещения,
// отсортированные по дате, вместе с суммой по отфильтрованным строкам.
package history

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	History(query string) ([]models.HistoryRow, decimal.Decimal)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История платежей
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Поиск по имени или типу"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /reports/history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rows, total := h.service.History(r.URL.Query().Get("q"))

	log.Info("history built", slog.Int("rows", len(rows)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rows":  rows,
		"count": len(rows),
		"total": total,
	}))
}

package alerts

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

// Service пересчитывает корзины по дате окончания на момент now.
type Service interface {
	Alerts(now time.Time) models.Alerts
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Истекшие и истекающие абонементы
// @Description Истекающие это окончание в ближайшие 7 дней включая сегодня.
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Alerts}
// @Failure 401 {object} response.ErrorResponse
// @Router /reports/alerts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.alerts"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	alerts := h.service.Alerts(time.Now())

	log.Info("alerts computed",
		slog.Int("expired", len(alerts.Expired)),
		slog.Int("expiring_soon", len(alerts.ExpiringSoon)),
	)
	render.JSON(w, r, response.StatusOKWithData(alerts))
}

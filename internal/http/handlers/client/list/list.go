package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service отдает участников, отфильтрованных по имени, почте или телефону.
type Service interface {
	Clients(query string) []models.MonthlyClient
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Сначала самые новые по дате начала. Параметр q ищет по имени, почте и телефону.
// @Tags Clients
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Строка поиска"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")
	clients := h.service.Clients(query)

	log.Info("clients listed", slog.Int("count", len(clients)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"clients": clients,
		"count":   len(clients),
	}))
}

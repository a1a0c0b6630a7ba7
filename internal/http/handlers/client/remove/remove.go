package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	DeleteClient(ctx context.Context, id string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить участника
// @Tags Clients
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response "removed_count 0 или 1"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /clients/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("empty id")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	removed, err := h.service.DeleteClient(r.Context(), id)
	if err != nil {
		log.Error("failed to delete client", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete client"))
		return
	}

	count := 0
	if removed {
		count = 1
	}
	log.Info("delete client", slog.String("id", id), slog.Int("removed", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_count": count,
	}))
}

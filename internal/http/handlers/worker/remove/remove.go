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
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	DeleteWorker(ctx context.Context, id string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить сотрудника
// @Description Управляющего удалить нельзя.
// @Tags Workers
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID сотрудника"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /workers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.worker.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" || id == models.AdminID {
		log.Warn("invalid worker id", slog.String("id", id))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	removed, err := h.service.DeleteWorker(r.Context(), id)
	if err != nil {
		log.Error("failed to delete worker", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete worker"))
		return
	}

	count := 0
	if removed {
		count = 1
	}
	log.Info("delete worker", slog.String("id", id), slog.Int("removed", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_count": count,
	}))
}

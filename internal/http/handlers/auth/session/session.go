// Package session отдает сохраненную сессию текущего рабочего дня.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

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

// Service возвращает сессию или nil, если сессии нет или она устарела.
type Service interface {
	Session(ctx context.Context, now time.Time) (*models.Session, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Сессия действует только в день входа. Устаревшая сессия удаляется.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Session}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Нет активной сессии"
// @Failure 500 {object} response.ErrorResponse
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.session"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, err := h.service.Session(r.Context(), time.Now())
	if err != nil {
		log.Error("failed to read session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read session"))
		return
	}
	if session == nil {
		log.Info("no active session")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(session))
}

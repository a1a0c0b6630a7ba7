package logout

import (
	"context"
	"log/slog"
	"net/http"

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
	Logout(ctx context.Context) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Очищает сохраненную сессию.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Logout(r.Context()); err != nil {
		log.Error("failed to clear session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not logout"))
		return
	}

	log.Info("session cleared")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logged_out": true,
	}))
}

package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

// Checker проверка готовности зависимости.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

type Handler struct {
	log     *slog.Logger
	storage Checker
}

// New создает Handler. storage может быть nil, тогда проверяется только сам процесс.
func New(log *slog.Logger, storage Checker) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP godoc
// @Summary Проверка здоровья
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.CheckDatabaseReady(ctx); err != nil {
			h.log.Error("storage is not ready", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage unavailable"))
			return
		}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}

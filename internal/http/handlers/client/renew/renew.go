// Package renew реализует продление абонемента участника.
//
// Продление считается от старой даты окончания, если абонемент еще действует,
// и от сегодняшнего дня, если он уже истек. Неизвестный id не является ошибкой.
package renew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/billing"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	RenewClient(ctx context.Context, id string, now time.Time) (models.MonthlyClient, bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Продлить абонемент
// @Tags Clients
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response "found=false для неизвестного id"
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 500 {object} response.ErrorResponse
// @Router /clients/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.renew"
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

	client, found, err := h.service.RenewClient(r.Context(), id, time.Now())
	if errors.Is(err, billing.ErrUnknownPlan) {
		log.Warn("stored client has unknown plan", slog.String("id", id))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid plan"))
		return
	}
	if err != nil {
		log.Error("failed to renew client", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not renew client"))
		return
	}
	if !found {
		log.Info("client not found", slog.String("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"found": false,
		}))
		return
	}

	log.Info("client renewed", slog.String("id", id), slog.String("expiry", client.ExpiryDate.String()))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"found":  true,
		"client": client,
	}))
}

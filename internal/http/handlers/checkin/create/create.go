// Package create реализует HTTP-обработчик разового посещения.
// Время посещения ставит сервер, сумма по умолчанию равна дневному тарифу.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/lib/validation"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	AddCheckin(ctx context.Context, req models.CheckinRequest, by string, now time.Time) (models.DailyCheckin, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Разовое посещение
// @Description Все поля необязательны. Без суммы берется дневной тариф.
// @Tags Checkins
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CheckinRequest true "Данные посетителя"
// @Success 200 {object} response.Response{data=models.DailyCheckin}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /checkins [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkin.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	checkin, err := h.service.AddCheckin(r.Context(), req, user.Name, time.Now())
	if err != nil {
		log.Error("failed to add checkin", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add checkin"))
		return
	}

	log.Info("checkin recorded", slog.String("id", checkin.ID), slog.String("amount", checkin.Amount.String()))
	render.JSON(w, r, response.StatusOKWithData(checkin))
}

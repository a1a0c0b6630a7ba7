// Package create реализует HTTP-обработчик регистрации участника с абонементом.
//
// Handler принимает JSON с данными участника, валидирует его, берет имя сотрудника из контекста,
// вычисляет дату окончания через сервис и возвращает созданную запись.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/billing"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/lib/validation"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler управляет HTTP-запросами на регистрацию участников.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис участников
	validate *validator.Validate // Валидатор входящих данных
}

// Service описывает регистрацию участника.
type Service interface {
	RegisterClient(ctx context.Context, req models.RegisterClientRequest, by string) (models.MonthlyClient, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать участника
// @Description Создает участника с абонементом. Дата окончания вычисляется по тарифу.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.RegisterClientRequest true "Данные участника"
// @Success 200 {object} response.Response{data=models.MonthlyClient}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сохранения"
// @Router /clients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterClientRequest
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

	client, err := h.service.RegisterClient(r.Context(), req, user.Name)
	if errors.Is(err, billing.ErrUnknownPlan) {
		log.Warn("unknown plan", slog.String("plan", string(req.Plan)))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid plan"))
		return
	}
	if err != nil {
		log.Error("failed to register client", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register client"))
		return
	}

	log.Info("client registered", slog.String("id", client.ID), slog.String("expiry", client.ExpiryDate.String()))
	render.JSON(w, r, response.StatusOKWithData(client))
}

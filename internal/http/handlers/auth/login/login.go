// Package login реализует HTTP-обработчик входа по четырехзначному коду доступа.
//
// Код управляющего открывает сессию управляющего, код сотрудника вместе с именем
// открывает сессию сотрудника (новый сотрудник заводится при первом входе).
// Ответ содержит токен, действующий до конца текущего рабочего дня.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/lib/validation"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/auth"
)

// InvalidCredentialsMessage общий ответ на неверный код или код сотрудника без имени.
const InvalidCredentialsMessage = "Dados inválidos. Verifique o nome e o código."

// Handler управляет HTTP-запросами на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает вход по коду.
type Service interface {
	Login(ctx context.Context, code, name string, now time.Time) (*models.Session, string, error)
}

// Result данные успешного входа.
type Result struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
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
// @Summary Вход по коду доступа
// @Description Код управляющего или код сотрудника с именем. Токен действует до конца рабочего дня.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Код доступа и имя сотрудника"
// @Success 200 {object} response.Response{data=login.Result}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
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

	session, token, err := h.service.Login(r.Context(), req.Passcode, req.Name, time.Now())
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Warn("login rejected")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(InvalidCredentialsMessage))
		return
	}
	if err != nil {
		log.Error("failed to login", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not login"))
		return
	}

	log.Info("staff logged in", slog.String("user_id", session.User.ID), slog.String("role", string(session.User.Role)))
	render.JSON(w, r, response.StatusOKWithData(Result{
		Token:     token,
		User:      session.User,
		ExpiresAt: session.ExpiresAt,
	}))
}

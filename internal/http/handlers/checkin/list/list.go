// Package list отдает разовые посещения за сегодня или за все время.
// Полный список доступен только управляющему.
package list

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const (
	ScopeToday = "today"
	ScopeAll   = "all"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Checkins(day *models.Date) []models.DailyCheckin
	Today(now time.Time) models.Date
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список посещений
// @Tags Checkins
// @Produce  json
// @Security BearerAuth
// @Param scope query string false "today (по умолчанию) или all (только управляющий)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /checkins [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = ScopeToday
	}

	var checkins []models.DailyCheckin
	switch scope {
	case ScopeToday:
		today := h.service.Today(time.Now())
		checkins = h.service.Checkins(&today)
	case ScopeAll:
		user, _ := middlewarectx.UserFrom(r.Context())
		if !user.IsAdmin() {
			log.Warn("full checkin list requires admin", slog.String("user_id", user.ID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("admin access required"))
			return
		}
		checkins = h.service.Checkins(nil)
	default:
		log.Warn("unknown scope", slog.String("scope", scope))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("scope must be today or all"))
		return
	}

	total := decimal.Zero
	for _, c := range checkins {
		total = total.Add(c.Amount)
	}

	log.Info("checkins listed", slog.String("scope", scope), slog.Int("count", len(checkins)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"scope":    scope,
		"checkins": checkins,
		"count":    len(checkins),
		"total":    total,
	}))
}

// Package middlewarectx содержит HTTP middleware для проверки токенов сессии,
// роли управляющего и ограничения частоты запросов.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization
// и в случае успеха кладет в контекст сотрудника и его роль.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User ключ для сотрудника (models.User) в контексте
	User Key = "user"
	// Role ключ для роли сотрудника в контексте
	Role Key = "role"
)

// TokenValidator описывает проверку токена сессии.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string, now time.Time) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
// Токен, выпущенный в другой рабочий день, отклоняется с 401.
func JWTMiddleware(auth TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.ValidateToken(r.Context(), tokenStr, time.Now())
			if err != nil || user == nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, *user)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom достает сотрудника, положенного JWTMiddleware.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(User).(models.User)
	return user, ok && user.ID != ""
}

// WithUser кладет сотрудника в контекст. Используется в тестах обработчиков.
func WithUser(ctx context.Context, user models.User) context.Context {
	ctx = context.WithValue(ctx, User, user)
	return context.WithValue(ctx, Role, user.Role)
}

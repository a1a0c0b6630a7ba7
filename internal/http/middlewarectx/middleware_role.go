package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// RequireAdmin пропускает только управляющего. Ставится после JWTMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(Role).(models.Role)
			if role != models.RoleAdmin {
				log.Warn("admin role required",
					slog.String("role", string(role)),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

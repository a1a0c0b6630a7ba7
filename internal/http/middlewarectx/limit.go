package middlewarectx

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов общим для всех маршрутов лимитером.
// При отказе в Retry-After указывается, через сколько секунд появится свободный токен.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiter.Reserve()
			if !res.OK() || res.Delay() > 0 {
				wait := res.Delay()
				res.Cancel()
				if res.OK() {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				log.Warn("too many requests", slog.String("path", r.URL.Path), slog.Duration("retry_after", wait))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package gym

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	redisstore "github.com/magabrotheeeer/gym-manager/internal/storage/redis"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	gymservice "github.com/magabrotheeeer/gym-manager/internal/services/gym"
	insightsservice "github.com/magabrotheeeer/gym-manager/internal/services/insights"
)

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newLimitedServer(t, rate.NewLimiter(rate.Inf, 0))
}

func newLimitedServer(t *testing.T, limiter *rate.Limiter) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := redisstore.New(client, "gym:")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	gymService := gymservice.New(store, logger, gymservice.Settings{
		Location:    time.UTC,
		DailyFee:    decimal.NewFromInt(500),
		EmailDomain: "gym.com",
	}, m)
	require.NoError(t, gymService.Load(context.Background()))

	authService, err := authservice.NewAuthService(gymService, jwt.NewJWTMaker("test-secret"), authservice.Credentials{
		AdminPasscode:  "2222",
		WorkerPasscode: "0000",
		AdminName:      "Gerente Geral",
		AdminEmail:     "admin@gym.com",
	}, m)
	require.NoError(t, err)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Gym:      gymService,
		Auth:     authService,
		Insights: insightsservice.NewService(nil, nil, time.Second, time.Minute, logger),
		Health:   store,
		Limiter:  limiter,
		Gatherer: reg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func loginAs(t *testing.T, srv *httptest.Server, body string) string {
	t.Helper()
	code, env := call(t, srv, http.MethodPost, "/api/v1/login", "", body)
	require.Equal(t, http.StatusOK, code, env.Error)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestRoutes_WorkerFlow(t *testing.T) {
	srv := newTestServer(t)

	code, env := call(t, srv, http.MethodPost, "/api/v1/login", "", `{"passcode":"1234","name":"Ana"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Dados inválidos. Verifique o nome e o código.", env.Error)

	code, _ = call(t, srv, http.MethodGet, "/api/v1/clients", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := loginAs(t, srv, `{"passcode":"0000","name":"Ana Maria"}`)

	code, env = call(t, srv, http.MethodGet, "/api/v1/session", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"email":"anamaria@gym.com"`)

	today := time.Now().UTC().Format("2006-01-02")
	code, env = call(t, srv, http.MethodPost, "/api/v1/clients", token,
		`{"name":"João","contact":"841234567","start_date":"`+today+`","plan":"3m","amount_paid":4000}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	var created struct {
		ID           string `json:"id"`
		Contact      string `json:"contact"`
		RegisteredBy string `json:"registered_by"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "+258841234567", created.Contact)
	assert.Equal(t, "Ana Maria", created.RegisteredBy)

	code, _ = call(t, srv, http.MethodPost, "/api/v1/checkins", token, `{}`)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, srv, http.MethodGet, "/api/v1/reports/daily-total", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":500`)

	code, env = call(t, srv, http.MethodPost, "/api/v1/clients/"+created.ID+"/renew", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"found":true`)

	code, env = call(t, srv, http.MethodDelete, "/api/v1/clients/unknown", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"removed_count":0`)

	for _, path := range []string{
		"/api/v1/reports/summary",
		"/api/v1/reports/insights",
		"/api/v1/reports/history",
		"/api/v1/reports/history?q=Jo",
		"/api/v1/workers",
		"/api/v1/checkins?scope=all",
	} {
		code, env = call(t, srv, http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusForbidden, code, path)
		assert.Empty(t, env.Data, path)
	}

	code, _ = call(t, srv, http.MethodPost, "/api/v1/logout", token, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, srv, http.MethodGet, "/api/v1/session", token, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRoutes_AdminFlow(t *testing.T) {
	srv := newTestServer(t)

	workerToken := loginAs(t, srv, `{"passcode":"0000","name":"Rui"}`)
	code, _ := call(t, srv, http.MethodPost, "/api/v1/checkins", workerToken, `{"name":"Zito","amount":300}`)
	require.Equal(t, http.StatusOK, code)

	token := loginAs(t, srv, `{"passcode":"2222"}`)

	code, env := call(t, srv, http.MethodGet, "/api/v1/reports/summary", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"today_revenue":300`)
	assert.Contains(t, string(env.Data), `"today_checkin_count":1`)

	code, env = call(t, srv, http.MethodGet, "/api/v1/reports/insights", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), insightsservice.MissingKeyMessage)

	code, env = call(t, srv, http.MethodGet, "/api/v1/workers", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"Rui"`)
	assert.NotContains(t, string(env.Data), "passcode_hash")

	var workers struct {
		Workers []struct {
			ID string `json:"id"`
		} `json:"workers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &workers))
	require.Len(t, workers.Workers, 1)

	code, env = call(t, srv, http.MethodDelete, "/api/v1/workers/"+workers.Workers[0].ID, token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"removed_count":1`)

	code, env = call(t, srv, http.MethodGet, "/api/v1/checkins?scope=all", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"registered_by":"Rui"`)

	code, env = call(t, srv, http.MethodGet, "/api/v1/reports/history", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"count":1`)
	assert.Contains(t, string(env.Data), `"total":300`)
	assert.Contains(t, string(env.Data), `"by":"Rui"`)
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	code, _ := call(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)

	loginAs(t, srv, `{"passcode":"2222"}`)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "gym_logins_total")
}

func TestRoutes_RateLimitCoversOnlyAPI(t *testing.T) {
	srv := newLimitedServer(t, rate.NewLimiter(rate.Every(time.Hour), 1))

	for range 5 {
		code, _ := call(t, srv, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, code)

		resp, err := srv.Client().Get(srv.URL + "/metrics")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	loginAs(t, srv, `{"passcode":"2222"}`)

	code, env := call(t, srv, http.MethodPost, "/api/v1/login", "", `{"passcode":"2222"}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "too many requests", env.Error)
}

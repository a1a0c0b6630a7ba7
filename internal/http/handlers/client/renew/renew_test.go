package renew

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/lib/billing"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RenewClient(ctx context.Context, id string, now time.Time) (models.MonthlyClient, bool, error) {
	args := m.Called(ctx, id, now)
	return args.Get(0).(models.MonthlyClient), args.Bool(1), args.Error(2)
}

func TestRenewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renewed := models.MonthlyClient{ID: "c1", ExpiryDate: models.MustParseDate("2024-05-15"), Status: models.StatusActive}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "renewed",
			id:   "c1",
			setupMock: func(m *MockService) {
				m.On("RenewClient", mock.Anything, "c1", mock.Anything).Return(renewed, true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"expiry_date":"2024-05-15"`,
		},
		{
			name: "unknown id is not an error",
			id:   "nope",
			setupMock: func(m *MockService) {
				m.On("RenewClient", mock.Anything, "nope", mock.Anything).Return(models.MonthlyClient{}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"found":false`,
		},
		{
			name: "unknown plan",
			id:   "c2",
			setupMock: func(m *MockService) {
				m.On("RenewClient", mock.Anything, "c2", mock.Anything).Return(models.MonthlyClient{}, false, billing.ErrUnknownPlan)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "invalid plan",
		},
		{
			name: "storage failure",
			id:   "c3",
			setupMock: func(m *MockService) {
				m.On("RenewClient", mock.Anything, "c3", mock.Anything).Return(models.MonthlyClient{}, false, errors.New("down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not renew client",
		},
		{
			name:           "empty id",
			id:             "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/"+tt.id+"/renew", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

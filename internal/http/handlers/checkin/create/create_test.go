package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) AddCheckin(ctx context.Context, req models.CheckinRequest, by string, now time.Time) (models.DailyCheckin, error) {
	args := m.Called(ctx, req, by, now)
	return args.Get(0).(models.DailyCheckin), args.Error(1)
}

func TestCreateCheckinHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := models.User{ID: "w1", Name: "Rui", Role: models.RoleWorker}
	recorded := models.DailyCheckin{ID: "d1", Name: "Zito", Amount: decimal.NewFromInt(500), RegisteredBy: "Rui"}

	tests := []struct {
		name           string
		body           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "empty body uses default fee",
			body: `{}`,
			user: &worker,
			setupMock: func(m *MockService) {
				m.On("AddCheckin", mock.Anything, mock.MatchedBy(func(r models.CheckinRequest) bool {
					return r.Amount == nil
				}), "Rui", mock.Anything).Return(recorded, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"registered_by":"Rui"`,
		},
		{
			name: "explicit amount",
			body: `{"name":"Zito","amount":"300"}`,
			user: &worker,
			setupMock: func(m *MockService) {
				m.On("AddCheckin", mock.Anything, mock.MatchedBy(func(r models.CheckinRequest) bool {
					return r.Amount != nil && r.Amount.Equal(decimal.NewFromInt(300))
				}), "Rui", mock.Anything).Return(recorded, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"d1"`,
		},
		{
			name:           "negative amount",
			body:           `{"amount":"-5"}`,
			user:           &worker,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field amount must not be negative",
		},
		{
			name:           "no user",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
		{
			name: "storage failure",
			body: `{}`,
			user: &worker,
			setupMock: func(m *MockService) {
				m.On("AddCheckin", mock.Anything, mock.Anything, "Rui", mock.Anything).Return(models.DailyCheckin{}, errors.New("down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not add checkin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", strings.NewReader(tt.body))
			if tt.user != nil {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), *tt.user))
			}
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

package list

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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

func (m *MockService) Checkins(day *models.Date) []models.DailyCheckin {
	return m.Called(day).Get(0).([]models.DailyCheckin)
}

func (m *MockService) Today(now time.Time) models.Date {
	return m.Called(now).Get(0).(models.Date)
}

func TestListCheckinsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	today := models.MustParseDate("2024-05-10")
	admin := models.User{ID: models.AdminID, Role: models.RoleAdmin}
	worker := models.User{ID: "w1", Role: models.RoleWorker}
	rows := []models.DailyCheckin{
		{ID: "d2", Amount: decimal.NewFromInt(300)},
		{ID: "d1", Amount: decimal.NewFromInt(500)},
	}

	tests := []struct {
		name           string
		url            string
		user           models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "today by default",
			url:  "/api/v1/checkins",
			user: worker,
			setupMock: func(m *MockService) {
				m.On("Today", mock.Anything).Return(today)
				m.On("Checkins", mock.MatchedBy(func(d *models.Date) bool {
					return d != nil && d.Equal(today)
				})).Return(rows)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"count":2`, `"total":800`, `"scope":"today"`},
		},
		{
			name: "all for admin",
			url:  "/api/v1/checkins?scope=all",
			user: admin,
			setupMock: func(m *MockService) {
				m.On("Checkins", (*models.Date)(nil)).Return(rows)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"scope":"all"`},
		},
		{
			name:           "all forbidden for worker",
			url:            "/api/v1/checkins?scope=all",
			user:           worker,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   []string{"admin access required"},
		},
		{
			name:           "unknown scope",
			url:            "/api/v1/checkins?scope=week",
			user:           admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"scope must be today or all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.user))
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, part := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), part)
			}
			mockService.AssertExpectations(t)
		})
	}
}

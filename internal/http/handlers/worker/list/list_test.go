package list

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Workers() []models.User {
	return m.Called().Get(0).([]models.User)
}

func TestWorkersHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mockService := new(MockService)
	mockService.On("Workers").Return([]models.User{
		{ID: "w1", Name: "Ana", Email: "ana@gym.com", Role: models.RoleWorker},
	}).Once()

	w := httptest.NewRecorder()
	New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ana@gym.com"`)
	assert.NotContains(t, w.Body.String(), "passcode_hash")
	mockService.AssertExpectations(t)
}

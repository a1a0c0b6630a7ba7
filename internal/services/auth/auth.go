// Package auth проверяет коды доступа, заводит сотрудников при первом входе
// и выпускает токены сессии, действующие до конца рабочего дня.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/passcode"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

var (
	// ErrInvalidCredentials неверный код или код сотрудника без имени.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired токен выпущен в другой рабочий день.
	ErrSessionExpired = errors.New("session expired")
)

// Staff хранилище сотрудников и слота сессии.
type Staff interface {
	FindOrCreateWorker(ctx context.Context, name, passcodeHash string, now time.Time) (models.User, bool, error)
	SaveSession(ctx context.Context, session models.Session) error
	CurrentSession(ctx context.Context, now time.Time) (*models.Session, error)
	ClearSession(ctx context.Context) error
	Location() *time.Location
}

// Credentials коды доступа и данные управляющего из конфига.
type Credentials struct {
	AdminPasscode  string
	WorkerPasscode string
	AdminName      string
	AdminEmail     string
}

// AuthService отвечает за вход, выход и проверку токенов.
type AuthService struct {
	staff      Staff
	jwtMaker   jwt.Maker
	metrics    *metrics.Metrics
	admin      models.User
	adminHash  string
	workerHash string
}

// NewAuthService хэширует коды доступа и создает AuthService.
func NewAuthService(staff Staff, jwtMaker jwt.Maker, creds Credentials, m *metrics.Metrics) (*AuthService, error) {
	const op = "auth.NewAuthService"

	if !passcode.WellFormed(creds.AdminPasscode) || !passcode.WellFormed(creds.WorkerPasscode) {
		return nil, fmt.Errorf("%s: passcodes must be %d digits", op, passcode.Length)
	}
	if creds.AdminPasscode == creds.WorkerPasscode {
		return nil, fmt.Errorf("%s: admin and worker passcodes must differ", op)
	}
	adminHash, err := passcode.Hash(creds.AdminPasscode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	workerHash, err := passcode.Hash(creds.WorkerPasscode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AuthService{
		staff:    staff,
		jwtMaker: jwtMaker,
		metrics:  m,
		admin: models.User{
			ID:    models.AdminID,
			Name:  creds.AdminName,
			Email: creds.AdminEmail,
			Role:  models.RoleAdmin,
		},
		adminHash:  adminHash,
		workerHash: workerHash,
	}, nil
}

// Login определяет роль по коду. Код управляющего дает фиксированного управляющего,
// код сотрудника с именем дает существующего или нового сотрудника.
// Слот сессии перезаписывается, токен действует до начала следующего дня.
func (s *AuthService) Login(ctx context.Context, code, name string, now time.Time) (*models.Session, string, error) {
	const op = "auth.Login"

	var user models.User
	switch {
	case passcode.Matches(s.adminHash, code):
		user = s.admin
		s.metrics.Login("admin")
	case passcode.Matches(s.workerHash, code) && strings.TrimSpace(name) != "":
		worker, _, err := s.staff.FindOrCreateWorker(ctx, name, s.workerHash, now)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		user = worker.Public()
		s.metrics.Login("worker")
	default:
		s.metrics.Login("rejected")
		return nil, "", ErrInvalidCredentials
	}

	loc := s.staff.Location()
	today := models.DateOf(now, loc)
	session := models.Session{
		User:      user,
		LoginDate: today,
		ExpiresAt: today.AddDays(1).Start(loc),
	}

	token, err := s.jwtMaker.GenerateToken(user, session.LoginDate, session.ExpiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.staff.SaveSession(ctx, session); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &session, token, nil
}

// ValidateToken проверяет подпись, срок и то, что токен выпущен сегодня.
func (s *AuthService) ValidateToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.LoginDate != models.DateOf(now, s.staff.Location()).String() {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionExpired)
	}
	user := claims.User()
	if user.IsAdmin() {
		user.Email = s.admin.Email
	}
	return &user, nil
}

// Session возвращает сохраненную сессию текущего дня.
func (s *AuthService) Session(ctx context.Context, now time.Time) (*models.Session, error) {
	return s.staff.CurrentSession(ctx, now)
}

// Logout очищает слот сессии.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.staff.ClearSession(ctx)
}

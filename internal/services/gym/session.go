package gym

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

// SaveSession перезаписывает слот сессии.
func (s *Service) SaveSession(ctx context.Context, session models.Session) error {
	const op = "gym.SaveSession"
	s.mu.Lock()
	defer s.mu.Unlock()

	session.User = session.User.Public()
	if err := s.persist(ctx, storage.KeySession, session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.session = &session
	return nil
}

// CurrentSession возвращает сохраненную сессию, если она открыта сегодня.
// Сессия прошлого дня удаляется из слота.
func (s *Service) CurrentSession(ctx context.Context, now time.Time) (*models.Session, error) {
	const op = "gym.CurrentSession"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, nil
	}
	if s.session.LoginDate.Equal(s.today(now)) && s.session.ValidAt(now) {
		session := *s.session
		return &session, nil
	}

	if err := s.store.Delete(ctx, storage.KeySession); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.session = nil
	return nil, nil
}

// ClearSession очищает слот сессии (выход).
func (s *Service) ClearSession(ctx context.Context) error {
	const op = "gym.ClearSession"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.session = nil
	return nil
}

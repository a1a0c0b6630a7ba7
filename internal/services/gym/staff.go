package gym

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

// WorkerEmail адрес сотрудника: имя без пробелов в нижнем регистре и домен спортзала.
func WorkerEmail(name, domain string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + "@" + domain
}

// FindOrCreateWorker находит сотрудника по имени без учета регистра и пробелов по краям
// или создает нового. created сообщает, был ли сотрудник создан.
func (s *Service) FindOrCreateWorker(ctx context.Context, name, passcodeHash string, now time.Time) (models.User, bool, error) {
	const op = "gym.FindOrCreateWorker"
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	i := slices.IndexFunc(s.workers, func(u models.User) bool {
		return strings.EqualFold(strings.TrimSpace(u.Name), name)
	})
	if i >= 0 {
		return s.workers[i], false, nil
	}

	id, err := s.id()
	if err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	created := now.UTC()
	worker := models.User{
		ID:           id,
		Name:         name,
		Email:        WorkerEmail(name, s.settings.EmailDomain),
		Role:         models.RoleWorker,
		PasscodeHash: passcodeHash,
		CreatedAt:    &created,
	}

	next := withAppended(s.workers, worker)
	if err := s.persist(ctx, storage.KeyWorkers, next); err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	s.workers = next

	return worker, true, nil
}

// Workers список сотрудников без хэшей кодов доступа.
func (s *Service) Workers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w.Public())
	}
	return out
}

// DeleteWorker удаляет сотрудника. Неизвестный id дает found=false.
func (s *Service) DeleteWorker(ctx context.Context, id string) (bool, error) {
	const op = "gym.DeleteWorker"
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.workers, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return false, nil
	}

	next := withoutIndex(s.workers, i)
	if err := s.persist(ctx, storage.KeyWorkers, next); err != nil {
		return true, fmt.Errorf("%s: %w", op, err)
	}
	s.workers = next
	return true, nil
}

// Package gym владеет коллекциями спортзала: сотрудники, сессия, абонементы и посещения.
// Сервис единственный, кто пишет в хранилище. Каждая мутация собирает новую коллекцию,
// сохраняет снимок целиком и только после успешной записи подменяет данные в памяти.
package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

// Settings параметры предметной области.
type Settings struct {
	Location    *time.Location
	DailyFee    decimal.Decimal
	EmailDomain string
}

type Service struct {
	mu sync.Mutex

	store    storage.Store
	log      *slog.Logger
	metrics  *metrics.Metrics
	settings Settings

	newID func() (uuid.UUID, error)
	clock func() time.Time

	workers  []models.User
	session  *models.Session
	clients  []models.MonthlyClient
	checkins []models.DailyCheckin
}

// New создает сервис с пустыми коллекциями. Данные поднимаются вызовом Load.
func New(store storage.Store, log *slog.Logger, settings Settings, m *metrics.Metrics) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Service{
		store:    store,
		log:      log,
		metrics:  m,
		settings: settings,
		newID:    uuid.NewV7,
		clock:    time.Now,
	}
}

// Location часовой пояс бизнес-дня.
func (s *Service) Location() *time.Location {
	return s.settings.Location
}

// Load читает все четыре слота. Отсутствующий или поврежденный слот дает пустую коллекцию.
// Ошибка возвращается только если хранилище недоступно.
func (s *Service) Load(ctx context.Context) error {
	const op = "gym.Load"
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		workers  []models.User
		session  *models.Session
		clients  []models.MonthlyClient
		checkins []models.DailyCheckin
	)

	for _, slot := range []struct {
		key string
		v   any
	}{
		{storage.KeyWorkers, &workers},
		{storage.KeySession, &session},
		{storage.KeyClients, &clients},
		{storage.KeyCheckins, &checkins},
	} {
		if err := s.loadSlot(ctx, slot.key, slot.v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.workers = workers
	s.session = session
	s.clients = clients
	s.checkins = checkins

	s.log.Info("gym data loaded",
		slog.Int("workers", len(workers)),
		slog.Int("clients", len(clients)),
		slog.Int("checkins", len(checkins)),
	)
	return nil
}

func (s *Service) loadSlot(ctx context.Context, key string, v any) error {
	_, err := storage.LoadSlot(ctx, s.store, key, v)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrCorrupt) || errors.Is(err, storage.ErrIncompatibleVersion) {
		s.log.Warn("slot is unreadable, starting empty", slog.String("slot", key), sl.Err(err))
		return nil
	}
	return err
}

// persist перезаписывает слот. Вызывается под s.mu.
func (s *Service) persist(ctx context.Context, key string, v any) error {
	if err := storage.SaveSlot(ctx, s.store, key, v, s.clock()); err != nil {
		s.metrics.PersistFailed(key)
		s.log.Error("failed to persist slot", slog.String("slot", key), sl.Err(err))
		return err
	}
	return nil
}

func (s *Service) id() (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Service) today(now time.Time) models.Date {
	return models.DateOf(now, s.settings.Location)
}

// withAppended копирует коллекцию и добавляет элемент, не трогая исходный массив.
func withAppended[T any](items []T, item T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, item)
}

// withPrepended копирует коллекцию и ставит элемент первым: свежие записи хранятся в начале.
func withPrepended[T any](items []T, item T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, item)
	return append(next, items...)
}

// withoutIndex копирует коллекцию без элемента i.
func withoutIndex[T any](items []T, i int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}

func withReplaced[T any](items []T, i int, item T) []T {
	next := slices.Clone(items)
	next[i] = item
	return next
}

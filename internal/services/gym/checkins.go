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

// AddCheckin записывает разовое посещение. Время ставит сервер, без суммы берется дневной тариф.
func (s *Service) AddCheckin(ctx context.Context, req models.CheckinRequest, by string, now time.Time) (models.DailyCheckin, error) {
	const op = "gym.AddCheckin"
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.id()
	if err != nil {
		return models.DailyCheckin{}, fmt.Errorf("%s: %w", op, err)
	}

	amount := s.settings.DailyFee
	if req.Amount != nil {
		amount = *req.Amount
	}

	checkin := models.DailyCheckin{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		Contact:      models.NormalizeContact(req.Contact),
		CheckinTime:  now,
		Amount:       amount,
		RegisteredBy: by,
	}

	next := withPrepended(s.checkins, checkin)
	if err := s.persist(ctx, storage.KeyCheckins, next); err != nil {
		return models.DailyCheckin{}, fmt.Errorf("%s: %w", op, err)
	}
	s.checkins = next

	s.metrics.CheckinRecorded(amount)
	return checkin, nil
}

// Checkins возвращает посещения дня day (или все при day == nil), сначала самые поздние.
func (s *Service) Checkins(day *models.Date) []models.DailyCheckin {
	s.mu.Lock()
	checkins := slices.Clone(s.checkins)
	s.mu.Unlock()

	if day != nil {
		loc := s.settings.Location
		checkins = slices.DeleteFunc(checkins, func(c models.DailyCheckin) bool {
			return !models.DateOf(c.CheckinTime, loc).Equal(*day)
		})
	}

	slices.SortStableFunc(checkins, func(a, b models.DailyCheckin) int {
		return b.CheckinTime.Compare(a.CheckinTime)
	})
	if checkins == nil {
		checkins = []models.DailyCheckin{}
	}
	return checkins
}

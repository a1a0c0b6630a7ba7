// Package scheduler периодически ищет абонементы, которые истекли или скоро истекут,
// и публикует напоминания в очередь уведомлений.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/report"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

// ExpiredNoticeDays сколько дней после окончания абонемента участнику еще приходит
// письмо об истечении. Давно истекшие абонементы в рассылку не попадают.
const ExpiredNoticeDays = 7

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

type SchedulerService struct {
	store    storage.Store
	pub      Publisher
	loc      *time.Location
	interval time.Duration
	log      *slog.Logger
	clock    func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(store storage.Store, pub Publisher, loc *time.Location, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		store:    store,
		pub:      pub,
		loc:      loc,
		interval: interval,
		log:      log,
		clock:    time.Now,
	}
}

// Run выполняет проход сразу и затем раз в interval, пока не отменен ctx.
func (s *SchedulerService) Run(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("reminder pass failed", sl.Err(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Error("reminder pass failed", sl.Err(err))
			}
		}
	}
}

// RunOnce читает слот участников и публикует по одному напоминанию на каждого участника с почтой.
// Возвращает число опубликованных сообщений.
func (s *SchedulerService) RunOnce(ctx context.Context) (int, error) {
	const op = "scheduler.RunOnce"
	log := s.log.With(sl.Op(op))

	var clients []models.MonthlyClient
	if _, err := storage.LoadSlot(ctx, s.store, storage.KeyClients, &clients); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock()
	alerts := report.AlertBuckets(clients, now, s.loc)
	expired := recentlyExpired(alerts.Expired, models.DateOf(now, s.loc))
	log.Info("found members needing attention",
		slog.Int("expired", len(alerts.Expired)),
		slog.Int("expired_to_notify", len(expired)),
		slog.Int("expiring_soon", len(alerts.ExpiringSoon)),
	)

	published := s.publish(log, expired, true)
	published += s.publish(log, alerts.ExpiringSoon, false)
	return published, nil
}

// recentlyExpired оставляет абонементы, истекшие не раньше чем ExpiredNoticeDays дней назад.
func recentlyExpired(clients []models.MonthlyClient, today models.Date) []models.MonthlyClient {
	cutoff := today.AddDays(-ExpiredNoticeDays)
	var out []models.MonthlyClient
	for _, c := range clients {
		if !c.ExpiryDate.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}

func (s *SchedulerService) publish(log *slog.Logger, clients []models.MonthlyClient, expired bool) int {
	n := 0
	key := rabbitmq.RoutingKeyFor(expired)
	for _, c := range clients {
		if c.Email == "" {
			continue
		}
		notice := models.ExpiryNotice{
			ClientID:   c.ID,
			Name:       c.Name,
			Email:      c.Email,
			Plan:       c.Plan,
			ExpiryDate: c.ExpiryDate,
			Expired:    expired,
		}
		if err := s.pub.Publish(key, notice); err != nil {
			log.Error("failed to publish message", slog.String("client_id", c.ID), sl.Err(err))
			continue
		}
		n++
	}
	return n
}

package gym

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/lib/report"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// snapshot копирует обе коллекции, чтобы считать отчеты без блокировки.
func (s *Service) snapshot() ([]models.MonthlyClient, []models.DailyCheckin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.clients), slices.Clone(s.checkins)
}

// History единая история платежей с поиском и итогом по найденным строкам.
func (s *Service) History(query string) ([]models.HistoryRow, decimal.Decimal) {
	clients, checkins := s.snapshot()
	return report.FilterHistory(report.UnifiedHistory(clients, checkins, s.settings.Location), query)
}

func (s *Service) Alerts(now time.Time) models.Alerts {
	clients, _ := s.snapshot()
	return report.AlertBuckets(clients, now, s.settings.Location)
}

func (s *Service) Summary(now time.Time) models.Summary {
	clients, checkins := s.snapshot()
	return report.RevenueSummary(clients, checkins, now, s.settings.Location)
}

// DailyTotal выручка от разовых посещений за день.
func (s *Service) DailyTotal(day models.Date) decimal.Decimal {
	_, checkins := s.snapshot()
	return report.DailyTotal(checkins, day, s.settings.Location)
}

// Today текущий бизнес-день.
func (s *Service) Today(now time.Time) models.Date {
	return s.today(now)
}

// Package report сводит два потока выручки (абонементы и разовые посещения)
// в отчеты: дневная сумма, единая история, группы уведомлений и общая сводка.
package report

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/lib/billing"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// DailyTotal сумма посещений, время которых приходится на день day в часовом поясе loc.
func DailyTotal(checkins []models.DailyCheckin, day models.Date, loc *time.Location) decimal.Decimal {
	total := decimal.Zero
	for _, c := range checkins {
		if models.DateOf(c.CheckinTime, loc).Equal(day) {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// CountOn количество посещений за день day.
func CountOn(checkins []models.DailyCheckin, day models.Date, loc *time.Location) int {
	n := 0
	for _, c := range checkins {
		if models.DateOf(c.CheckinTime, loc).Equal(day) {
			n++
		}
	}
	return n
}

// UnifiedHistory возвращает последовательность строк истории по убыванию даты.
// Каждый проход строит и сортирует строки заново, поэтому последовательность можно
// перебирать повторно. При равной дате сначала идут абонементы в исходном порядке,
// затем посещения.
func UnifiedHistory(clients []models.MonthlyClient, checkins []models.DailyCheckin, loc *time.Location) iter.Seq[models.HistoryRow] {
	return func(yield func(models.HistoryRow) bool) {
		rows := make([]models.HistoryRow, 0, len(clients)+len(checkins))
		for _, c := range clients {
			rows = append(rows, models.HistoryRow{
				ID:     c.ID,
				Date:   c.StartDate,
				Name:   c.Name,
				Type:   models.HistoryTypeMonthly,
				Amount: c.AmountPaid,
				By:     c.RegisteredBy,
			})
		}
		for _, c := range checkins {
			name := c.Name
			if name == "" {
				name = models.AnonymousName
			}
			rows = append(rows, models.HistoryRow{
				ID:     c.ID,
				Date:   models.DateOf(c.CheckinTime, loc),
				Name:   name,
				Type:   models.HistoryTypeDaily,
				Amount: c.Amount,
				By:     c.RegisteredBy,
			})
		}

		slices.SortStableFunc(rows, func(a, b models.HistoryRow) int {
			return b.Date.Compare(a.Date)
		})

		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}

// FilterHistory оставляет строки, у которых имя или тип содержит query без учета регистра,
// и считает их сумму. Пустой query оставляет все строки.
func FilterHistory(seq iter.Seq[models.HistoryRow], query string) ([]models.HistoryRow, decimal.Decimal) {
	q := strings.ToLower(strings.TrimSpace(query))
	rows := []models.HistoryRow{}
	total := decimal.Zero
	for r := range seq {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Type), q) {
			continue
		}
		rows = append(rows, r)
		total = total.Add(r.Amount)
	}
	return rows, total
}

// AlertBuckets делит абонементы на истекшие и истекающие в ближайшие 7 дней.
// Считается заново при каждом вызове.
func AlertBuckets(clients []models.MonthlyClient, now time.Time, loc *time.Location) models.Alerts {
	alerts := models.Alerts{
		Expired:      []models.MonthlyClient{},
		ExpiringSoon: []models.MonthlyClient{},
	}
	for _, c := range clients {
		switch billing.Classify(c, now, loc) {
		case billing.ClassExpired:
			alerts.Expired = append(alerts.Expired, c)
		case billing.ClassExpiringSoon:
			alerts.ExpiringSoon = append(alerts.ExpiringSoon, c)
		}
	}
	return alerts
}

// RevenueSummary считает сводку выручки за все время и за сегодня.
// Активные участники считаются по сохраненному статусу, в отличие от AlertBuckets.
func RevenueSummary(clients []models.MonthlyClient, checkins []models.DailyCheckin, now time.Time, loc *time.Location) models.Summary {
	monthly := decimal.Zero
	active := 0
	for _, c := range clients {
		monthly = monthly.Add(c.AmountPaid)
		if c.Status == models.StatusActive {
			active++
		}
	}

	daily := decimal.Zero
	for _, c := range checkins {
		daily = daily.Add(c.Amount)
	}

	today := models.DateOf(now, loc)
	return models.Summary{
		TotalRevenue:      monthly.Add(daily),
		TodayRevenue:      DailyTotal(checkins, today, loc),
		MonthlyRevenue:    monthly,
		DailyRevenue:      daily,
		ActiveClientCount: active,
		TodayCheckinCount: CountOn(checkins, today, loc),
		TotalClients:      len(clients),
	}
}

package models

import "github.com/shopspring/decimal"

// Типы строк единой истории платежей.
const (
	HistoryTypeMonthly = "Mensalidade"
	HistoryTypeDaily   = "Check-in Diário"
	// AnonymousName подставляется для посещений без имени.
	AnonymousName = "Anónimo"
)

// HistoryRow строка единой истории: абонемент или разовое посещение.
type HistoryRow struct {
	ID     string          `json:"id"`
	Date   Date            `json:"date"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	By     string          `json:"by"`
}

// Alerts участники, требующие внимания. Активные сюда не попадают.
type Alerts struct {
	Expired      []MonthlyClient `json:"expired"`
	ExpiringSoon []MonthlyClient `json:"expiring_soon"`
}

// Summary сводка выручки для панели управляющего.
// ActiveClientCount считается по сохраненному статусу, а не по дате окончания.
type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	DailyRevenue      decimal.Decimal `json:"daily_revenue"`
	ActiveClientCount int             `json:"active_client_count"`
	TodayCheckinCount int             `json:"today_checkin_count"`
	TotalClients      int             `json:"total_clients"`
}

// InsightStats данные, которые уходят в сервис советов.
type InsightStats struct {
	TotalClients   int             `json:"total_clients"`
	ActiveMonthly  int             `json:"active_monthly"`
	DailyToday     int             `json:"daily_today"`
	RevenueMonthly decimal.Decimal `json:"revenue_monthly"`
	RevenueDaily   decimal.Decimal `json:"revenue_daily"`
}

// StatsFromSummary собирает InsightStats из сводки.
func StatsFromSummary(s Summary) InsightStats {
	return InsightStats{
		TotalClients:   s.TotalClients,
		ActiveMonthly:  s.ActiveClientCount,
		DailyToday:     s.TodayCheckinCount,
		RevenueMonthly: s.MonthlyRevenue,
		RevenueDaily:   s.TodayRevenue,
	}
}

// ExpiryNotice сообщение о скором или наступившем окончании абонемента для очереди уведомлений.
type ExpiryNotice struct {
	ClientID   string `json:"client_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Plan       Plan   `json:"plan"`
	ExpiryDate Date   `json:"expiry_date"`
	Expired    bool   `json:"expired"`
}

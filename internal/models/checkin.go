package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCheckin разовое посещение с оплатой на месте.
// CheckinTime проставляется сервером при создании и больше не меняется.
type DailyCheckin struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	Contact      string          `json:"contact"`
	CheckinTime  time.Time       `json:"checkin_time"`
	Amount       decimal.Decimal `json:"amount"`
	RegisteredBy string          `json:"registered_by"`
}

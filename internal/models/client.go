package models

import "github.com/shopspring/decimal"

func init() {
	// Суммы в JSON отдаются числами, как в исходных снапшотах.
	decimal.MarshalJSONWithoutQuotes = true
}

// ClientStatus сохраненный статус абонемента.
// Выставляется при регистрации и продлении и сам по себе не пересчитывается.
type ClientStatus string

const (
	StatusActive  ClientStatus = "active"
	StatusExpired ClientStatus = "expired"
)

// MonthlyClient участник с абонементом.
type MonthlyClient struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	Contact      string          `json:"contact"`
	StartDate    Date            `json:"start_date"`
	ExpiryDate   Date            `json:"expiry_date"`
	Plan         Plan            `json:"plan"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Status       ClientStatus    `json:"status"`
	RegisteredBy string          `json:"registered_by"`
}

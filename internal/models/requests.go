package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MozambiquePrefix международный код, который добавляется к локальному номеру.
const MozambiquePrefix = "+258"

// RegisterClientRequest входные данные регистрации участника с абонементом.
type RegisterClientRequest struct {
	Name       string          `json:"name" validate:"required"`
	Email      string          `json:"email,omitempty" validate:"omitempty,email"`
	Address    string          `json:"address,omitempty"`
	Contact    string          `json:"contact,omitempty" validate:"omitempty,moz_phone"`
	StartDate  string          `json:"start_date" validate:"required,date"`
	Plan       Plan            `json:"plan" validate:"required,oneof=1m 3m anual"`
	AmountPaid decimal.Decimal `json:"amount_paid" validate:"gte=0"`
}

// CheckinRequest входные данные разового посещения.
// Время посещения не принимается от клиента. Без суммы берется дневной тариф.
type CheckinRequest struct {
	Name    string           `json:"name,omitempty"`
	Email   string           `json:"email,omitempty" validate:"omitempty,email"`
	Address string           `json:"address,omitempty"`
	Contact string           `json:"contact,omitempty" validate:"omitempty,moz_phone"`
	Amount  *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

// LoginRequest код доступа и имя сотрудника. Имя нужно только для кода сотрудника.
type LoginRequest struct {
	Name     string `json:"name,omitempty"`
	Passcode string `json:"passcode" validate:"required,len=4,numeric"`
}

// NormalizeContact приводит номер к виду +258XXXXXXXXX. Пустой номер остается пустым.
func NormalizeContact(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" || strings.HasPrefix(contact, "+") {
		return contact
	}
	return MozambiquePrefix + contact
}

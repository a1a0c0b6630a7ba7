// Package billing вычисляет периоды абонементов: дату окончания по тарифу,
// продление без потери оплаченных дней и классификацию по дате окончания.
//
// Все функции чистые: время и часовой пояс передаются явно.
package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// SoonWindowDays сколько дней до окончания абонемент считается истекающим.
const SoonWindowDays = 7

// ErrUnknownPlan возвращается для тарифа, которого нет в PlanMonths.
var ErrUnknownPlan = errors.New("unknown plan")

// PlanMonths длительность тарифов в месяцах. Единственный источник длительности периода.
var PlanMonths = map[models.Plan]int{
	models.PlanMonthly:   1,
	models.PlanQuarterly: 3,
	models.PlanAnnual:    12,
}

// Class результат классификации абонемента на текущую дату.
type Class int

const (
	ClassActive Class = iota
	ClassExpiringSoon
	ClassExpired
)

func (c Class) String() string {
	switch c {
	case ClassExpiringSoon:
		return "expiring-soon"
	case ClassExpired:
		return "expired"
	default:
		return "active"
	}
}

// Months возвращает длительность тарифа в месяцах.
func Months(plan models.Plan) (int, error) {
	m, ok := PlanMonths[plan]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	return m, nil
}

// ComputeExpiry сдвигает start на длительность тарифа в календарных месяцах.
// Переполнение дня переносится вперед: 31.01 + 3 месяца = 01.05.
func ComputeExpiry(start models.Date, plan models.Plan) (models.Date, error) {
	months, err := Months(plan)
	if err != nil {
		return models.Date{}, err
	}
	return start.AddMonths(months), nil
}

// NewClient собирает новый абонемент из запроса: считает дату окончания,
// ставит статус active и запоминает, кто зарегистрировал.
func NewClient(req models.RegisterClientRequest, id, registeredBy string) (models.MonthlyClient, error) {
	const op = "billing.NewClient"

	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}
	expiry, err := ComputeExpiry(start, req.Plan)
	if err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.MonthlyClient{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		Contact:      models.NormalizeContact(req.Contact),
		StartDate:    start,
		ExpiryDate:   expiry,
		Plan:         req.Plan,
		AmountPaid:   req.AmountPaid,
		Status:       models.StatusActive,
		RegisteredBy: registeredBy,
	}, nil
}

// Anchor дата, от которой отсчитывается новый период: старая дата окончания,
// если абонемент еще не истек, иначе сегодняшний день.
func Anchor(expiry, today models.Date) models.Date {
	if expiry.After(today) {
		return expiry
	}
	return today
}

// Renew продлевает абонемент на длительность его тарифа.
// Возвращает копию: StartDate = сегодня, ExpiryDate от якоря, статус active.
// RegisteredBy не меняется.
func Renew(client models.MonthlyClient, now time.Time, loc *time.Location) (models.MonthlyClient, error) {
	const op = "billing.Renew"

	today := models.DateOf(now, loc)
	expiry, err := ComputeExpiry(Anchor(client.ExpiryDate, today), client.Plan)
	if err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}

	client.StartDate = today
	client.ExpiryDate = expiry
	client.Status = models.StatusActive
	return client, nil
}

// Classify относит абонемент к одной из трех групп по дате окончания.
// Сохраненный Status не учитывается.
func Classify(client models.MonthlyClient, now time.Time, loc *time.Location) Class {
	today := models.DateOf(now, loc)
	switch {
	case client.ExpiryDate.Before(today):
		return ClassExpired
	case !client.ExpiryDate.After(today.AddDays(SoonWindowDays)):
		return ClassExpiringSoon
	default:
		return ClassActive
	}
}

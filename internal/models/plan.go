package models

// Plan тариф абонемента. Значения совпадают с ключами, которые хранятся в снапшотах.
type Plan string

const (
	// PlanMonthly месячный абонемент.
	PlanMonthly Plan = "1m"
	// PlanQuarterly абонемент на три месяца.
	PlanQuarterly Plan = "3m"
	// PlanAnnual годовой абонемент.
	PlanAnnual Plan = "anual"
)

// PlanLabels подписи тарифов для отчетов и писем.
var PlanLabels = map[Plan]string{
	PlanMonthly:   "Mensal",
	PlanQuarterly: "Trimestral",
	PlanAnnual:    "Anual",
}

// Label возвращает подпись тарифа или сам ключ, если тариф неизвестен.
func (p Plan) Label() string {
	if l, ok := PlanLabels[p]; ok {
		return l
	}
	return string(p)
}

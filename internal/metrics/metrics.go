// Package metrics счетчики Prometheus для операций спортзала.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Виды выручки.
const (
	RevenueMonthly = "monthly"
	RevenueDaily   = "daily"
)

// Metrics набор счетчиков. Нулевой указатель допустим: все методы становятся no-op.
type Metrics struct {
	clientsRegistered prometheus.Counter
	clientsRenewed    prometheus.Counter
	clientsRemoved    prometheus.Counter
	checkins          prometheus.Counter
	revenue           *prometheus.CounterVec
	persistFailures   *prometheus.CounterVec
	logins            *prometheus.CounterVec
}

// New создает счетчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		clientsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "clients_registered_total",
			Help:      "Monthly clients registered.",
		}),
		clientsRenewed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "clients_renewed_total",
			Help:      "Monthly memberships renewed.",
		}),
		clientsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "clients_removed_total",
			Help:      "Monthly clients removed.",
		}),
		checkins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "checkins_total",
			Help:      "Daily check-ins recorded.",
		}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "revenue_total",
			Help:      "Revenue recorded, by kind.",
		}, []string{"kind"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "persist_failures_total",
			Help:      "Failed snapshot writes, by slot.",
		}, []string{"slot"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "logins_total",
			Help:      "Login attempts, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.clientsRegistered,
		m.clientsRenewed,
		m.clientsRemoved,
		m.checkins,
		m.revenue,
		m.persistFailures,
		m.logins,
	)
	return m
}

func (m *Metrics) ClientRegistered(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.clientsRegistered.Inc()
	m.revenue.WithLabelValues(RevenueMonthly).Add(amount.InexactFloat64())
}

func (m *Metrics) ClientRenewed() {
	if m == nil {
		return
	}
	m.clientsRenewed.Inc()
}

func (m *Metrics) ClientRemoved() {
	if m == nil {
		return
	}
	m.clientsRemoved.Inc()
}

func (m *Metrics) CheckinRecorded(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.checkins.Inc()
	m.revenue.WithLabelValues(RevenueDaily).Add(amount.InexactFloat64())
}

func (m *Metrics) PersistFailed(slot string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(slot).Inc()
}

// Login result: admin, worker или rejected.
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

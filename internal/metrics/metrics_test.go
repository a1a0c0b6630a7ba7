package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ClientRegistered(decimal.NewFromInt(1500))
	m.ClientRegistered(decimal.NewFromInt(4000))
	m.ClientRenewed()
	m.ClientRemoved()
	m.CheckinRecorded(decimal.NewFromInt(500))
	m.PersistFailed("gym_clients")
	m.Login("worker")
	m.Login("rejected")
	m.Login("rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.clientsRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clientsRenewed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clientsRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkins))
	assert.Equal(t, 5500.0, testutil.ToFloat64(m.revenue.WithLabelValues(RevenueMonthly)))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.revenue.WithLabelValues(RevenueDaily)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures.WithLabelValues("gym_clients")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues("rejected")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ClientRegistered(decimal.NewFromInt(1))
		m.ClientRenewed()
		m.ClientRemoved()
		m.CheckinRecorded(decimal.NewFromInt(1))
		m.PersistFailed("gym_workers")
		m.Login("admin")
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

package contract

import (
	"errors"

	"charity_dao/sdk"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine activity.
type Metrics struct {
	ops        *prometheus.CounterVec
	rejections *prometheus.CounterVec
	paidOut    prometheus.Counter
	proposals  prometheus.Gauge
}

// NewMetrics registers the engine collectors on reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "operations_total",
			Help:      "Committed state-mutating operations by kind.",
		}, []string{"op"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "rejections_total",
			Help:      "Rejected operations by kind and revert symbol.",
		}, []string{"op", "symbol"}),
		paidOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "paid_out_units_total",
			Help:      "Smallest currency units released to proposal recipients.",
		}),
		proposals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "treasury",
			Name:      "proposals",
			Help:      "Number of proposals ever created.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.rejections, m.paidOut, m.proposals)
	}
	return m
}

func (m *Metrics) observe(op string, err error) {
	if err == nil {
		m.ops.WithLabelValues(op).Inc()
		return
	}
	symbol := "internal"
	var rv *sdk.Revert
	if errors.As(err, &rv) {
		symbol = rv.Symbol
	}
	m.rejections.WithLabelValues(op, symbol).Inc()
}

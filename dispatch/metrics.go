package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "triage"
	subsystem = "dispatcher"
)

type metrics struct {
	admitted        prometheus.Counter
	served          prometheus.Counter
	publishFailures prometheus.Counter
	waiting         prometheus.GaugeFunc
}

func newMetrics(waiting func() float64) *metrics {
	return &metrics{
		admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "admitted_total",
			Help:      "Number of patients admitted to the queue",
		}),
		served: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "served_total",
			Help:      "Number of patients taken off the queue",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "publish_failures_total",
			Help:      "Number of visit batches that could not be published",
		}),
		waiting: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "waiting",
			Help:      "Number of patients currently waiting",
		}, waiting),
	}
}

func (m *metrics) register(registerer prometheus.Registerer) error {
	if registerer == nil {
		return nil
	}

	for _, c := range []prometheus.Collector{m.admitted, m.served, m.publishFailures, m.waiting} {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

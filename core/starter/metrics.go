package starter

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "launchpad"

// stepMetrics is nil when no registerer is configured; its methods accept a nil receiver.
type stepMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	ready    prometheus.Gauge
}

func newStepMetrics(reg prometheus.Registerer) *stepMetrics {
	if reg == nil {
		return nil
	}

	return &stepMetrics{
		duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "prepare",
			Name:      "step_duration_seconds",
			Help:      "Duration of preparation steps in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"preparer", "result"})),

		failures: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "prepare",
			Name:      "step_failures_total",
			Help:      "Total number of failed preparation steps",
		}, []string{"preparer"})),

		ready: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ready",
			Help:      "1 once every preparation step succeeded",
		})),
	}
}

// register registers c, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *stepMetrics) observe(name string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
		m.failures.WithLabelValues(name).Inc()
	}
	m.duration.WithLabelValues(name, result).Observe(d.Seconds())
}

func (m *stepMetrics) setReady(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.ready.Set(1)
		return
	}
	m.ready.Set(0)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the non-HTTP application metrics
type Metrics struct {
	// Mail delivery
	MailDispatched *prometheus.CounterVec
	MailLatency    *prometheus.HistogramVec

	// Redis mail queue
	QueueOperations *prometheus.CounterVec
	QueueDepth      prometheus.Gauge
}

// NewMetrics creates and registers all application metrics on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MailDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "dispatched_total",
			Help:      "Total number of mail dispatch attempts",
		}, []string{"transport", "status"}),
		MailLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of mail dispatch attempts",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"transport"}),
		QueueOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "operations_total",
			Help:      "Total number of Redis queue operations",
		}, []string{"operation", "status"}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of jobs waiting in the mail queue",
		}),
	}
}

// ObserveMail records one dispatch attempt. Safe on a nil receiver.
func (m *Metrics) ObserveMail(transport string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.MailDispatched.WithLabelValues(transport, status(err)).Inc()
	m.MailLatency.WithLabelValues(transport).Observe(time.Since(start).Seconds())
}

// ObserveQueue records one queue operation. Safe on a nil receiver.
func (m *Metrics) ObserveQueue(operation string, err error) {
	if m == nil {
		return
	}
	m.QueueOperations.WithLabelValues(operation, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

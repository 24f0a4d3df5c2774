package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMail(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "carelink")

	m.ObserveMail("smtp", time.Now(), nil)
	m.ObserveMail("smtp", time.Now(), errors.New("refused"))
	m.ObserveMail("smtp", time.Now(), errors.New("refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MailDispatched.WithLabelValues("smtp", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MailDispatched.WithLabelValues("smtp", "error")))
}

func TestObserveQueue(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "carelink")

	m.ObserveQueue("push", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueueOperations.WithLabelValues("push", "success")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveMail("log", time.Now(), nil)
		m.ObserveQueue("pop", nil)
	})
}

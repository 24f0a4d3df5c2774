package email

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

// LogMailer writes messages to the log instead of delivering them. Used in development.
type LogMailer struct {
	metrics *metrics.Metrics
}

func NewLogMailer(m *metrics.Metrics) *LogMailer {
	return &LogMailer{metrics: m}
}

func (l *LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.HTML).
		Msg("Mail not delivered (log driver)")
	l.metrics.ObserveMail("log", time.Now(), nil)
	return nil
}

package email

import (
	"fmt"
	"time"

	"github.com/jwalitptl/carelink-api/internal/config"
	"github.com/jwalitptl/carelink-api/pkg/circuitbreaker"
	"github.com/jwalitptl/carelink-api/pkg/messaging"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

// NewSMTPFromConfig wires the SMTP transport behind a breaker that opens after five straight failures.
func NewSMTPFromConfig(cfg config.MailConfig, m *metrics.Metrics) *SMTPMailer {
	breaker := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "smtp",
		MaxFailures: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	})
	return NewSMTPMailer(SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	}, breaker, m)
}

// New picks the transport named by cfg.Driver. queue is only used by the queue driver.
func New(cfg config.MailConfig, queue messaging.Queue, m *metrics.Metrics) (Mailer, error) {
	switch cfg.Driver {
	case config.MailDriverSMTP:
		return NewSMTPFromConfig(cfg, m), nil
	case config.MailDriverQueue:
		if queue == nil {
			return nil, fmt.Errorf("mail driver %q needs a queue", cfg.Driver)
		}
		return NewQueueMailer(queue, cfg.QueueKey, m), nil
	case config.MailDriverLog:
		return NewLogMailer(m), nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
}

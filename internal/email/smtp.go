package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/carelink-api/pkg/circuitbreaker"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	from    string
	send    func(...*gomail.Message) error
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewSMTPMailer(cfg SMTPConfig, breaker *circuitbreaker.CircuitBreaker, m *metrics.Metrics) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		from:    cfg.From,
		send:    dialer.DialAndSend,
		breaker: breaker,
		metrics: m,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	start := time.Now()
	err := s.breaker.Execute(func() error {
		return s.send(m)
	})
	s.metrics.ObserveMail("smtp", start, err)
	if err != nil {
		return fmt.Errorf("failed to send mail over smtp: %w", err)
	}
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/carelink-api/internal/email"
	"github.com/jwalitptl/carelink-api/pkg/messaging"
)

type MailDispatcherConfig struct {
	QueueKey      string
	PopTimeout    time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// MailDispatcher drains queued mail and delivers it through a Mailer.
type MailDispatcher struct {
	queue  messaging.Queue
	mailer email.Mailer
	config MailDispatcherConfig
}

func NewMailDispatcher(queue messaging.Queue, mailer email.Mailer, config MailDispatcherConfig) *MailDispatcher {
	if config.PopTimeout < time.Second {
		config.PopTimeout = time.Second
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}
	return &MailDispatcher{queue: queue, mailer: mailer, config: config}
}

// Start blocks until ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	log.Info().Str("queue", d.config.QueueKey).Msg("Starting mail dispatcher")

	for {
		if ctx.Err() != nil {
			log.Info().Msg("Shutting down mail dispatcher")
			return
		}
		if err := d.ProcessOne(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Failed to dispatch mail")
			sleep(ctx, d.config.RetryDelay)
		}
	}
}

// ProcessOne waits up to PopTimeout for a job and delivers it. An empty
// queue is not an error. Undecodable jobs are dropped.
func (d *MailDispatcher) ProcessOne(ctx context.Context) error {
	raw, err := d.queue.Pop(ctx, d.config.QueueKey, d.config.PopTimeout)
	if err == nil || errors.Is(err, messaging.ErrEmpty) {
		d.observeDepth(ctx)
	}
	if errors.Is(err, messaging.ErrEmpty) {
		return nil
	}
	if err != nil {
		return err
	}

	var msg email.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Error().Err(err).Bytes("payload", raw).Msg("Dropping malformed mail job")
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= d.config.RetryAttempts; attempt++ {
		if lastErr = d.mailer.Send(ctx, msg); lastErr == nil {
			log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Mail delivered")
			return nil
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Str("to", msg.To).Msg("Mail delivery failed")
		if attempt < d.config.RetryAttempts && !sleep(ctx, d.config.RetryDelay) {
			break
		}
	}
	return fmt.Errorf("giving up on mail to %s: %w", msg.To, lastErr)
}

// observeDepth refreshes the queue depth gauge, which Len keeps.
func (d *MailDispatcher) observeDepth(ctx context.Context) {
	if _, err := d.queue.Len(ctx, d.config.QueueKey); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Str("queue", d.config.QueueKey).Msg("Failed to read mail queue depth")
	}
}

// sleep waits for d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

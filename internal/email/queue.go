package email

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/carelink-api/pkg/messaging"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

// QueueMailer hands messages to the mail worker through a queue.
type QueueMailer struct {
	queue   messaging.Queue
	key     string
	metrics *metrics.Metrics
}

func NewQueueMailer(queue messaging.Queue, key string, m *metrics.Metrics) *QueueMailer {
	return &QueueMailer{queue: queue, key: key, metrics: m}
}

func (q *QueueMailer) Send(ctx context.Context, msg Message) error {
	start := time.Now()
	err := q.queue.Push(ctx, q.key, msg)
	q.metrics.ObserveMail("queue", start, err)
	if err != nil {
		return fmt.Errorf("failed to enqueue mail: %w", err)
	}
	return nil
}

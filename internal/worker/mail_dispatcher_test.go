package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/email"
	"github.com/jwalitptl/carelink-api/pkg/messaging/redis"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

type recordingMailer struct {
	mu       sync.Mutex
	sent     []email.Message
	failures int
}

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newQueue(t *testing.T) *redis.RedisQueue {
	srv := miniredis.RunT(t)
	q := redis.NewRedisQueueFromClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}), nil)
	t.Cleanup(func() { q.Close() })
	return q
}

func TestProcessOneDelivers(t *testing.T) {
	q := newQueue(t)
	mailer := &recordingMailer{}
	d := NewMailDispatcher(q, mailer, MailDispatcherConfig{QueueKey: "mail", RetryDelay: time.Millisecond})

	msg := email.PasswordResetMessage("a@x.com", "http://h/x")
	require.NoError(t, q.Push(context.Background(), "mail", msg))

	require.NoError(t, d.ProcessOne(context.Background()))
	assert.Equal(t, []email.Message{msg}, mailer.sent)
}

func TestProcessOneReportsQueueDepth(t *testing.T) {
	srv := miniredis.RunT(t)
	m := metrics.NewMetrics(prometheus.NewRegistry(), "carelink")
	q := redis.NewRedisQueueFromClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}), m)
	t.Cleanup(func() { q.Close() })
	d := NewMailDispatcher(q, &recordingMailer{}, MailDispatcherConfig{QueueKey: "mail"})

	for _, to := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		require.NoError(t, q.Push(context.Background(), "mail", email.Message{To: to}))
	}

	require.NoError(t, d.ProcessOne(context.Background()))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.QueueDepth))

	require.NoError(t, d.ProcessOne(context.Background()))
	require.NoError(t, d.ProcessOne(context.Background()))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.QueueDepth))
}

func TestProcessOneRetries(t *testing.T) {
	q := newQueue(t)
	mailer := &recordingMailer{failures: 2}
	d := NewMailDispatcher(q, mailer, MailDispatcherConfig{QueueKey: "mail", RetryAttempts: 3, RetryDelay: time.Millisecond})

	require.NoError(t, q.Push(context.Background(), "mail", email.Message{To: "a@x.com"}))

	require.NoError(t, d.ProcessOne(context.Background()))
	assert.Len(t, mailer.sent, 1)
}

func TestProcessOneGivesUp(t *testing.T) {
	q := newQueue(t)
	mailer := &recordingMailer{failures: 5}
	d := NewMailDispatcher(q, mailer, MailDispatcherConfig{QueueKey: "mail", RetryAttempts: 2, RetryDelay: time.Millisecond})

	require.NoError(t, q.Push(context.Background(), "mail", email.Message{To: "a@x.com"}))

	err := d.ProcessOne(context.Background())
	assert.ErrorContains(t, err, "smtp unavailable")
	assert.Empty(t, mailer.sent)
}

func TestProcessOneDropsMalformedJob(t *testing.T) {
	q := newQueue(t)
	mailer := &recordingMailer{}
	d := NewMailDispatcher(q, mailer, MailDispatcherConfig{QueueKey: "mail"})

	require.NoError(t, q.Push(context.Background(), "mail", "not a message object"))

	assert.NoError(t, d.ProcessOne(context.Background()))
	assert.Empty(t, mailer.sent)
}

func TestStartStopsOnCancel(t *testing.T) {
	q := newQueue(t)
	d := NewMailDispatcher(q, &recordingMailer{}, MailDispatcherConfig{QueueKey: "mail"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

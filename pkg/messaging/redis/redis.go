package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/carelink-api/pkg/messaging"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
)

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

// RedisQueue implements messaging.Queue on Redis lists (RPUSH / BLPOP).
type RedisQueue struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

func NewRedisQueue(ctx context.Context, config Config, m *metrics.Metrics) (*RedisQueue, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.RetryBackoff > 0 {
		opts.MinRetryBackoff = config.RetryBackoff
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisQueueFromClient(client, m), nil
}

func NewRedisQueueFromClient(client *redis.Client, m *metrics.Metrics) *RedisQueue {
	return &RedisQueue{client: client, metrics: m}
}

var _ messaging.Queue = (*RedisQueue)(nil)

func (q *RedisQueue) Push(ctx context.Context, queue string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.client.RPush(ctx, queue, data).Err()
	q.metrics.ObserveQueue("push", err)
	if err != nil {
		return fmt.Errorf("failed to push job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Pop(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	res, err := q.client.BLPop(ctx, timeout, queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, messaging.ErrEmpty
	}
	q.metrics.ObserveQueue("pop", err)
	if err != nil {
		return nil, fmt.Errorf("failed to pop job: %w", err)
	}
	// BLPOP replies with [key, value]
	return []byte(res[1]), nil
}

func (q *RedisQueue) Len(ctx context.Context, queue string) (int64, error) {
	n, err := q.client.LLen(ctx, queue).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	if q.metrics != nil {
		q.metrics.QueueDepth.Set(float64(n))
	}
	return n, nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}

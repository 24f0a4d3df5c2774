package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/pkg/messaging"
)

func setupQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q := NewRedisQueueFromClient(client, nil)
	t.Cleanup(func() { q.Close() })
	return q, mr
}

func TestPushPopFIFO(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, "mail", map[string]string{"to": "a@x.com"}))
	require.NoError(t, q.Push(ctx, "mail", map[string]string{"to": "b@x.com"}))

	n, err := q.Len(ctx, "mail")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	first, err := q.Pop(ctx, "mail", time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"a@x.com"}`, string(first))

	second, err := q.Pop(ctx, "mail", time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"b@x.com"}`, string(second))
}

func TestPopEmpty(t *testing.T) {
	q, _ := setupQueue(t)

	_, err := q.Pop(context.Background(), "mail", time.Second)
	assert.ErrorIs(t, err, messaging.ErrEmpty)
}

func TestNewRedisQueueBadURL(t *testing.T) {
	_, err := NewRedisQueue(context.Background(), Config{URL: "::not a url"}, nil)
	assert.Error(t, err)
}

func TestNewRedisQueueConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	q, err := NewRedisQueue(context.Background(), Config{URL: "redis://" + mr.Addr()}, nil)
	require.NoError(t, err)
	defer q.Close()

	require.NoError(t, q.Push(context.Background(), "mail", "x"))
	assert.True(t, mr.Exists("mail"))
}

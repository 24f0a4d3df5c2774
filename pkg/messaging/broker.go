package messaging

import (
	"context"
	"errors"
	"time"
)

// ErrEmpty is returned by Pop when no job arrived before the timeout.
var ErrEmpty = errors.New("queue is empty")

// Queue is a FIFO job queue shared between the API and the worker.
type Queue interface {
	Push(ctx context.Context, queue string, payload interface{}) error
	Pop(ctx context.Context, queue string, timeout time.Duration) ([]byte, error)
	Len(ctx context.Context, queue string) (int64, error)
	Close() error
}

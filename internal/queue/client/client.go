package client

import (
	"context"
	"errors"
	"sync"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asyncQCtxKey
)

var ErrNoClient = errors.New("queue client is not configured")

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// GetClient returns the client bound to ctx, falling back to the global one
// which can be reconfigured with SetClient. It's safe for concurrent use.
func GetClient(ctx context.Context) *asynq.Client {
	c := ctx.Value(asyncQCtxKey)
	if c != nil {
		client, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}

		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// WithClient binds client to ctx, taking precedence over the global one.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asyncQCtxKey, client)
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// Enqueue submits task through GetClient(ctx).
func Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	c := GetClient(ctx)
	if c == nil {
		return nil, ErrNoClient
	}

	return c.EnqueueContext(ctx, task, opts...)
}

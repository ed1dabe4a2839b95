package events

import (
	"context"
	"time"
)

// PushConsumerFunc adapts a function into a PushConsumer whose disconnect
// notification is ignored.
type PushConsumerFunc[T any] func(ctx context.Context, data T) error

func (fn PushConsumerFunc[T]) Push(ctx context.Context, data T) error {
	return fn(ctx, data)
}

func (PushConsumerFunc[T]) DisconnectPushConsumer() {}

// PushSupplierFunc adapts a disconnect callback into a PushSupplier.
type PushSupplierFunc func()

func (fn PushSupplierFunc) DisconnectPushSupplier() {
	if fn != nil {
		fn()
	}
}

// PullConsumerFunc adapts a disconnect callback into a PullConsumer.
type PullConsumerFunc func()

func (fn PullConsumerFunc) DisconnectPullConsumer() {
	if fn != nil {
		fn()
	}
}

// TryPullFunc adapts a non-blocking pull function into a PullSupplier.
// Pull is emulated by retrying the function every TryPullRetryInterval.
type TryPullFunc[T any] func() (T, bool, error)

// TryPullRetryInterval is the retry period TryPullFunc uses to emulate Pull.
const TryPullRetryInterval = 10 * time.Millisecond

func (fn TryPullFunc[T]) Pull(ctx context.Context) (T, error) {
	ticker := time.NewTicker(TryPullRetryInterval)
	defer ticker.Stop()
	for {
		v, ok, err := fn()
		if err != nil || ok {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (fn TryPullFunc[T]) TryPull() (T, bool, error) {
	return fn()
}

func (TryPullFunc[T]) DisconnectPullSupplier() {}

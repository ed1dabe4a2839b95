package events

import "context"

// PushConsumer receives events pushed to it.
type PushConsumer[T any] interface {
	// Push delivers one event. Implementations return ErrDisconnected when
	// they can no longer accept events.
	Push(ctx context.Context, data T) error
	// DisconnectPushConsumer notifies the consumer that its connection is gone.
	DisconnectPushConsumer()
}

// PushSupplier is a supplier that pushes events into a channel.
type PushSupplier interface {
	DisconnectPushSupplier()
}

// PullConsumer is a consumer that pulls events out of a channel.
type PullConsumer interface {
	DisconnectPullConsumer()
}

// PullSupplier hands out events on request.
type PullSupplier[T any] interface {
	// Pull blocks until an event is available. It returns ErrDisconnected
	// once the supplier is gone.
	Pull(ctx context.Context) (T, error)
	// TryPull never blocks. The boolean reports whether an event was returned.
	TryPull() (T, bool, error)
	DisconnectPullSupplier()
}

// Package events defines the boundary between an event channel and the
// parties connected to it: the four capability interfaces external consumers
// and suppliers implement, the errors exchanged across that boundary and an
// explicit outcome type for callers that prefer branching over error checks.
//
// Design decisions:
//   - Capabilities, not a base type: each party implements only the small
//     interface for its role (PushConsumer, PushSupplier, PullConsumer,
//     PullSupplier)
//   - Type-safe payloads: the data-carrying interfaces are generic over the
//     event type, payloads travel by reference and are never copied
//   - Sentinel errors: ErrDisconnected is both a failure and the normal
//     "peer gone" signal, callers test it with errors.Is
//   - Explicit outcomes: StatusOf folds any error into a Status so the
//     disconnected and already-connected cases can be switched on directly
//
// Capability overview:
//   - PushConsumer[T]: receives Push calls, learns about disconnection
//   - PushSupplier: only learns about disconnection
//   - PullConsumer: only learns about disconnection
//   - PullSupplier[T]: answers Pull (blocking) and TryPull (non-blocking)
//
// Example usage:
//
//	consumer := events.PushConsumerFunc[string](func(ctx context.Context, data string) error {
//	    fmt.Println("received", data)
//	    return nil
//	})
//	if err := proxy.ConnectPushConsumer(consumer); err != nil {
//	    switch events.StatusOf(err) {
//	    case events.StatusAlreadyConnected:
//	        // programming error
//	    case events.StatusDisconnected:
//	        // proxy was torn down
//	    }
//	}
package events

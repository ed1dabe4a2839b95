package interop

import (
	"context"
	"fmt"

	"github.com/casualjim/eventchannel/events"
)

// Extractor turns an Any into a typed payload. It should fail with an error
// wrapping events.ErrTypeMismatch when the Any has the wrong kind.
type Extractor[T any] func(Any) (T, error)

// Inserter wraps a typed payload into an Any.
type Inserter[T any] func(T) Any

var (
	_ events.PushConsumer[Any]    = (*BridgePushConsumer[string])(nil)
	_ events.PushConsumer[string] = (*AnyPushConsumer[string])(nil)
)

// BridgePushConsumer lets a typed consumer sit on a channel of Any values.
// Events that fail extraction are rejected with the extractor's error.
type BridgePushConsumer[T any] struct {
	target  events.PushConsumer[T]
	extract Extractor[T]
}

func NewBridgePushConsumer[T any](target events.PushConsumer[T], extract Extractor[T]) *BridgePushConsumer[T] {
	return &BridgePushConsumer[T]{target: target, extract: extract}
}

func (b *BridgePushConsumer[T]) Push(ctx context.Context, data Any) error {
	v, err := b.extract(data)
	if err != nil {
		return fmt.Errorf("bridge %s: %w", data.Type(), err)
	}
	return b.target.Push(ctx, v)
}

func (b *BridgePushConsumer[T]) DisconnectPushConsumer() {
	b.target.DisconnectPushConsumer()
}

// AnyPushConsumer is the reverse bridge: it lets a consumer of Any values sit
// on a typed channel.
type AnyPushConsumer[T any] struct {
	target events.PushConsumer[Any]
	insert Inserter[T]
}

func NewAnyPushConsumer[T any](target events.PushConsumer[Any], insert Inserter[T]) *AnyPushConsumer[T] {
	return &AnyPushConsumer[T]{target: target, insert: insert}
}

func (b *AnyPushConsumer[T]) Push(ctx context.Context, data T) error {
	return b.target.Push(ctx, b.insert(data))
}

func (b *AnyPushConsumer[T]) DisconnectPushConsumer() {
	b.target.DisconnectPushConsumer()
}

// Extractors for the common kinds.
var (
	ExtractString Extractor[string]  = Any.AsString
	ExtractBool   Extractor[bool]    = Any.AsBool
	ExtractLong   Extractor[int32]   = Any.AsLong
	ExtractDouble Extractor[float64] = Any.AsDouble
)

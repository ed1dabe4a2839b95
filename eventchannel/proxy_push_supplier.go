package eventchannel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/pkg/slogx"
	"github.com/casualjim/eventchannel/pkg/uuidx"
)

var _ events.PushSupplier = (*ProxyPushSupplier[any])(nil)

// ProxyPushSupplier delivers every channel event to one external consumer.
type ProxyPushSupplier[T any] struct {
	id      string
	channel *Channel[T]
	conn    connection[events.PushConsumer[T]]
}

func newProxyPushSupplier[T any](c *Channel[T]) *ProxyPushSupplier[T] {
	return &ProxyPushSupplier[T]{
		id:      uuidx.Prefixed(kindPushSupplier),
		channel: c,
	}
}

func (p *ProxyPushSupplier[T]) ID() string {
	return p.id
}

func (p *ProxyPushSupplier[T]) State() State {
	return p.conn.State()
}

// ConnectPushConsumer connects the consumer events are delivered to.
// Events broadcast while no consumer is connected are not delivered here.
func (p *ProxyPushSupplier[T]) ConnectPushConsumer(consumer events.PushConsumer[T]) error {
	return p.conn.connect(consumer, nil)
}

// DisconnectPushSupplier disconnects the proxy and notifies the consumer.
// Subsequent calls do nothing.
func (p *ProxyPushSupplier[T]) DisconnectPushSupplier() {
	p.disconnect()
}

func (p *ProxyPushSupplier[T]) disconnect() {
	consumer, hasPeer, first := p.conn.disconnect(nil)
	if !first {
		return
	}
	if hasPeer {
		notifyPeer(p.channel.logger, consumer.DisconnectPushConsumer)
	}
	detach(p.channel, p.channel.pushSuppliers, kindPushSupplier, p.id)
}

// deliver runs as its own goroutine for every broadcast event. A consumer
// reporting ErrDisconnected takes the proxy down with it; any other failure
// is logged and the event is dropped.
func (p *ProxyPushSupplier[T]) deliver(ctx context.Context, data T) {
	logger := p.channel.logger.With(slogx.Proxy(p.id))
	defer func() {
		if r := recover(); r != nil {
			p.channel.metrics.deliveryFailures.Inc()
			logger.Warn("push consumer panicked", slog.Any("panic", r))
		}
	}()

	if ctx.Err() != nil {
		return
	}
	consumer, hasPeer, state := p.conn.current()
	if state == StateDisconnected || !hasPeer {
		return
	}

	if err := consumer.Push(ctx, data); err != nil {
		if errors.Is(err, events.ErrDisconnected) {
			logger.Debug("push consumer went away, disconnecting")
			p.disconnect()
			return
		}
		p.channel.metrics.deliveryFailures.Inc()
		logger.Warn("error pushing event to consumer", slogx.Error(err))
		return
	}
	p.channel.metrics.delivered.Inc()
}

package eventchannel

import (
	"context"

	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/pkg/uuidx"
)

var _ events.PushConsumer[any] = (*ProxyPushConsumer[any])(nil)

// ProxyPushConsumer receives pushes from one external supplier and forwards
// them into the channel.
type ProxyPushConsumer[T any] struct {
	id      string
	channel *Channel[T]
	conn    connection[events.PushSupplier]
}

func newProxyPushConsumer[T any](c *Channel[T]) *ProxyPushConsumer[T] {
	return &ProxyPushConsumer[T]{
		id:      uuidx.Prefixed(kindPushConsumer),
		channel: c,
	}
}

func (p *ProxyPushConsumer[T]) ID() string {
	return p.id
}

func (p *ProxyPushConsumer[T]) State() State {
	return p.conn.State()
}

// ConnectPushSupplier connects the supplier. A nil supplier is allowed; it
// only means nobody is told when the proxy disconnects.
func (p *ProxyPushConsumer[T]) ConnectPushSupplier(supplier events.PushSupplier) error {
	return p.conn.connect(supplier, nil)
}

// Push forwards data into the channel. Pushing through a proxy that has not
// been connected yet is allowed.
func (p *ProxyPushConsumer[T]) Push(ctx context.Context, data T) error {
	if p.conn.State() == StateDisconnected {
		return events.ErrDisconnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.channel.pushEvent(data)
}

// DisconnectPushConsumer disconnects the proxy and notifies the supplier.
// Subsequent calls do nothing.
func (p *ProxyPushConsumer[T]) DisconnectPushConsumer() {
	p.disconnect()
}

func (p *ProxyPushConsumer[T]) disconnect() {
	supplier, hasPeer, first := p.conn.disconnect(nil)
	if !first {
		return
	}
	if hasPeer {
		notifyPeer(p.channel.logger, supplier.DisconnectPushSupplier)
	}
	detach(p.channel, p.channel.pushConsumers, kindPushConsumer, p.id)
}

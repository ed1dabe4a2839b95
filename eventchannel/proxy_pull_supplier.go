package eventchannel

import (
	"context"
	"errors"
	"time"

	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/pkg/uuidx"
)

var _ events.PullSupplier[any] = (*ProxyPullSupplier[any])(nil)

// ProxyPullSupplier lets one external consumer drain the channel's event
// queue. Pull-supplier proxies of the same channel compete for events.
type ProxyPullSupplier[T any] struct {
	id      string
	channel *Channel[T]
	conn    connection[events.PullConsumer]

	// done is cancelled on disconnect to release blocked pulls.
	done   context.Context
	cancel context.CancelFunc
}

func newProxyPullSupplier[T any](c *Channel[T]) *ProxyPullSupplier[T] {
	done, cancel := context.WithCancel(context.Background())
	return &ProxyPullSupplier[T]{
		id:      uuidx.Prefixed(kindPullSupplier),
		channel: c,
		done:    done,
		cancel:  cancel,
	}
}

func (p *ProxyPullSupplier[T]) ID() string {
	return p.id
}

func (p *ProxyPullSupplier[T]) State() State {
	return p.conn.State()
}

// ConnectPullConsumer connects the consumer. A nil consumer is allowed.
func (p *ProxyPullSupplier[T]) ConnectPullConsumer(consumer events.PullConsumer) error {
	return p.conn.connect(consumer, nil)
}

// Pull blocks until an event is available. It returns ErrDisconnected if the
// proxy is or becomes disconnected, and ctx.Err() if ctx is done first.
func (p *ProxyPullSupplier[T]) Pull(ctx context.Context) (T, error) {
	var zero T
	if p.conn.State() == StateDisconnected {
		return zero, events.ErrDisconnected
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.done, cancel)
	defer stop()

	v, err := p.channel.takeEvent(ctx)
	if err != nil {
		return zero, p.translate(err)
	}
	return v, nil
}

// TryPull returns immediately; the boolean reports whether an event was
// available.
func (p *ProxyPullSupplier[T]) TryPull() (T, bool, error) {
	var zero T
	if p.conn.State() == StateDisconnected {
		return zero, false, events.ErrDisconnected
	}
	v, ok, err := p.channel.pullEvent()
	if err != nil {
		return zero, false, p.translate(err)
	}
	return v, ok, nil
}

// PullTimeout waits at most timeout for an event and reports false when the
// bound elapses without one.
func (p *ProxyPullSupplier[T]) PullTimeout(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T
	if p.conn.State() == StateDisconnected {
		return zero, false, events.ErrDisconnected
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.done, cancel)
	defer stop()

	v, ok, err := p.channel.tryPullEvent(ctx, timeout)
	if err != nil {
		return zero, false, p.translate(err)
	}
	return v, ok, nil
}

// DisconnectPullSupplier disconnects the proxy, releases blocked pulls and
// notifies the consumer. Subsequent calls do nothing.
func (p *ProxyPullSupplier[T]) DisconnectPullSupplier() {
	p.disconnect()
}

func (p *ProxyPullSupplier[T]) disconnect() {
	consumer, hasPeer, first := p.conn.disconnect(nil)
	if !first {
		return
	}
	p.cancel()
	if hasPeer {
		notifyPeer(p.channel.logger, consumer.DisconnectPullConsumer)
	}
	detach(p.channel, p.channel.pullSuppliers, kindPullSupplier, p.id)
}

// translate maps errors caused by this proxy's own teardown to ErrDisconnected.
func (p *ProxyPullSupplier[T]) translate(err error) error {
	if p.done.Err() != nil {
		return events.ErrDisconnected
	}
	if errors.Is(err, events.ErrChannelDestroyed) && p.conn.State() == StateDisconnected {
		return events.ErrDisconnected
	}
	return err
}

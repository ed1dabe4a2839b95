package eventchannel

import (
	"log/slog"

	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/internal/registry"
	"github.com/casualjim/eventchannel/pkg/slogx"
)

const (
	kindPushConsumer = "push-consumer"
	kindPushSupplier = "push-supplier"
	kindPullConsumer = "pull-consumer"
	kindPullSupplier = "pull-supplier"
)

// ConsumerAdmin hands out the proxies consumers connect to.
type ConsumerAdmin[T any] struct {
	channel *Channel[T]
}

// ObtainPushSupplier returns a new proxy that pushes every channel event to
// the consumer connected to it.
func (a *ConsumerAdmin[T]) ObtainPushSupplier() (*ProxyPushSupplier[T], error) {
	c := a.channel
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	p := newProxyPushSupplier(c)
	if err := attach(c, c.pushSuppliers, kindPushSupplier, p.id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ObtainPullSupplier returns a new proxy a consumer pulls channel events from.
func (a *ConsumerAdmin[T]) ObtainPullSupplier() (*ProxyPullSupplier[T], error) {
	c := a.channel
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	p := newProxyPullSupplier(c)
	if err := attach(c, c.pullSuppliers, kindPullSupplier, p.id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SupplierAdmin hands out the proxies suppliers connect to.
type SupplierAdmin[T any] struct {
	channel *Channel[T]
}

// ObtainPushConsumer returns a new proxy a supplier pushes events into.
func (a *SupplierAdmin[T]) ObtainPushConsumer() (*ProxyPushConsumer[T], error) {
	c := a.channel
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	p := newProxyPushConsumer(c)
	if err := attach(c, c.pushConsumers, kindPushConsumer, p.id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ObtainPullConsumer returns a new proxy that polls the supplier connected
// to it and feeds what it gets into the channel.
func (a *SupplierAdmin[T]) ObtainPullConsumer() (*ProxyPullConsumer[T], error) {
	c := a.channel
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	p := newProxyPullConsumer(c)
	if err := attach(c, c.pullConsumers, kindPullConsumer, p.id, p); err != nil {
		return nil, err
	}
	return p, nil
}

type proxy interface {
	disconnect()
}

// attach registers a fresh proxy. A Destroy racing with the registration
// is caught by the second check; the proxy is then torn down immediately.
func attach[T any, P proxy](c *Channel[T], reg registry.Registry[P], kind, id string, p P) error {
	reg.Add(id, p)
	c.metrics.proxies.WithLabelValues(kind).Inc()
	if c.Destroyed() {
		p.disconnect()
		return events.ErrChannelDestroyed
	}
	c.logger.Debug("obtained proxy", slog.String("kind", kind), slogx.Proxy(id))
	return nil
}

// detach is the registry side of a proxy's first disconnect.
func detach[T any, P any](c *Channel[T], reg registry.Registry[P], kind, id string) {
	reg.Del(id)
	c.metrics.proxies.WithLabelValues(kind).Dec()
	c.logger.Debug("disconnected proxy", slog.String("kind", kind), slogx.Proxy(id))
}

package eventchannel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Jeffail/shutdown"
	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/pkg/slogx"
	"github.com/casualjim/eventchannel/pkg/uuidx"
)

var _ events.PullConsumer = (*ProxyPullConsumer[any])(nil)

// ProxyPullConsumer bridges an external pull supplier into the channel. Once
// connected it polls the supplier in the background and pushes whatever it
// gets into the channel as if a supplier had pushed it.
type ProxyPullConsumer[T any] struct {
	id      string
	channel *Channel[T]
	conn    connection[events.PullSupplier[T]]

	// polling is guarded by conn.mu.
	polling bool
	shutSig *shutdown.Signaller
}

func newProxyPullConsumer[T any](c *Channel[T]) *ProxyPullConsumer[T] {
	return &ProxyPullConsumer[T]{
		id:      uuidx.Prefixed(kindPullConsumer),
		channel: c,
		shutSig: shutdown.NewSignaller(),
	}
}

func (p *ProxyPullConsumer[T]) ID() string {
	return p.id
}

func (p *ProxyPullConsumer[T]) State() State {
	return p.conn.State()
}

// ConnectPullSupplier connects the supplier and starts polling it. A nil
// supplier connects the proxy without starting a polling task.
func (p *ProxyPullConsumer[T]) ConnectPullSupplier(supplier events.PullSupplier[T]) error {
	return p.conn.connect(supplier, func() {
		if isNilPeer(supplier) {
			return
		}
		p.polling = true
		p.channel.pollers.add()
		go p.poll(supplier)
	})
}

// DisconnectPullConsumer stops the polling task, notifies the supplier and
// disconnects the proxy. Subsequent calls do nothing.
func (p *ProxyPullConsumer[T]) DisconnectPullConsumer() {
	p.disconnect()
}

// WaitForStop blocks until the polling task has exited or ctx is done. It
// returns immediately for a proxy that never started polling once it is
// disconnected.
func (p *ProxyPullConsumer[T]) WaitForStop(ctx context.Context) error {
	select {
	case <-p.shutSig.HasStoppedChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ProxyPullConsumer[T]) disconnect() {
	var polling bool
	supplier, hasPeer, first := p.conn.disconnect(func() {
		polling = p.polling
	})
	if !first {
		return
	}

	p.shutSig.TriggerHardStop()
	if !polling {
		p.shutSig.TriggerHasStopped()
	}

	if hasPeer {
		notifyPeer(p.channel.logger, supplier.DisconnectPullSupplier)
	}
	detach(p.channel, p.channel.pullConsumers, kindPullConsumer, p.id)
}

func (p *ProxyPullConsumer[T]) poll(supplier events.PullSupplier[T]) {
	defer p.channel.pollers.done()
	defer p.shutSig.TriggerHasStopped()

	logger := p.channel.logger.With(slogx.Proxy(p.id))
	logger.Debug("started polling pull supplier")
	defer logger.Debug("stopped polling pull supplier")

	for {
		select {
		case <-p.shutSig.HardStopChan():
			return
		default:
		}

		if stop := p.pollOnce(logger, supplier); stop {
			return
		}

		timer := p.channel.clock.Timer(p.channel.pollInterval)
		select {
		case <-p.shutSig.HardStopChan():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// pollOnce performs one try-pull and reports whether polling should stop.
func (p *ProxyPullConsumer[T]) pollOnce(logger *slog.Logger, supplier events.PullSupplier[T]) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			p.channel.metrics.pollFailures.Inc()
			logger.Warn("pull supplier panicked", slog.Any("panic", r))
		}
	}()

	data, ok, err := supplier.TryPull()
	switch {
	case errors.Is(err, events.ErrDisconnected):
		logger.Debug("pull supplier went away, disconnecting")
		p.disconnect()
		return true
	case err != nil:
		p.channel.metrics.pollFailures.Inc()
		logger.Warn("error pulling event from supplier", slogx.Error(err))
		return false
	case !ok:
		return false
	}

	p.channel.metrics.polled.Inc()
	if err := p.channel.pushEvent(data); err != nil {
		if errors.Is(err, events.ErrChannelDestroyed) {
			return true
		}
		logger.Warn("error injecting polled event", slogx.Error(err))
	}
	return false
}

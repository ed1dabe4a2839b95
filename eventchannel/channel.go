package eventchannel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/casualjim/eventchannel/events"
	"github.com/casualjim/eventchannel/internal/queue"
	"github.com/casualjim/eventchannel/internal/registry"
	"github.com/casualjim/eventchannel/pkg/slogx"
	"github.com/casualjim/eventchannel/pkg/uuidx"
)

// Channel is an in-process event channel. Events pushed by suppliers are
// broadcast to every push-supplier proxy and buffered once in a shared FIFO
// that pull-supplier proxies drain competitively.
type Channel[T any] struct {
	id        string
	name      string
	createdAt time.Time

	logger       *slog.Logger
	clock        clock.Clock
	pollInterval time.Duration

	queue *queue.Queue[T]

	pushConsumers registry.Registry[*ProxyPushConsumer[T]]
	pushSuppliers registry.Registry[*ProxyPushSupplier[T]]
	pullConsumers registry.Registry[*ProxyPullConsumer[T]]
	pullSuppliers registry.Registry[*ProxyPullSupplier[T]]

	consumerAdmin *ConsumerAdmin[T]
	supplierAdmin *SupplierAdmin[T]

	destroyed atomic.Bool
	// ctx scopes fan-out deliveries and is cancelled by Destroy.
	ctx     context.Context
	cancel  context.CancelFunc
	pollers *pollerGroup

	metrics *metrics
	cfg     config
}

// New creates an event channel.
func New[T any](options ...Option) (*Channel[T], error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	c := &Channel[T]{
		id:            uuidx.NewString(),
		name:          cfg.name,
		clock:         cfg.clock,
		pollInterval:  cfg.pollInterval,
		pushConsumers: registry.New[*ProxyPushConsumer[T]](),
		pushSuppliers: registry.New[*ProxyPushSupplier[T]](),
		pullConsumers: registry.New[*ProxyPullConsumer[T]](),
		pullSuppliers: registry.New[*ProxyPullSupplier[T]](),
		pollers:       newPollerGroup(),
		cfg:           cfg,
	}
	c.createdAt = c.clock.Now()
	c.queue = queue.New[T](c.clock)
	c.logger = cfg.logger.With(slogx.Channel(c.label()))
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.consumerAdmin = &ConsumerAdmin[T]{channel: c}
	c.supplierAdmin = &SupplierAdmin[T]{channel: c}

	c.metrics = newMetrics(c.label(), func() float64 { return float64(c.queue.Len()) })
	if cfg.registerer != nil {
		if err := c.metrics.register(cfg.registerer); err != nil {
			c.cancel()
			return nil, fmt.Errorf("register metrics for channel %s: %w", c.label(), err)
		}
	}

	c.logger.Debug("created event channel")
	return c, nil
}

func (c *Channel[T]) ID() string {
	return c.id
}

// Name returns the configured name, which may be empty.
func (c *Channel[T]) Name() string {
	return c.name
}

func (c *Channel[T]) label() string {
	if c.name != "" {
		return c.name
	}
	return c.id
}

// Destroyed reports whether Destroy has been called.
func (c *Channel[T]) Destroyed() bool {
	return c.destroyed.Load()
}

// ForConsumers returns the admin that hands out proxies to consumers.
func (c *Channel[T]) ForConsumers() (*ConsumerAdmin[T], error) {
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	return c.consumerAdmin, nil
}

// ForSuppliers returns the admin that hands out proxies to suppliers.
func (c *Channel[T]) ForSuppliers() (*SupplierAdmin[T], error) {
	if c.Destroyed() {
		return nil, events.ErrChannelDestroyed
	}
	return c.supplierAdmin, nil
}

// Destroy tears the channel down: polling tasks are told to stop, every live
// proxy is disconnected (notifying its peer), and the event queue is dropped.
// Blocked pulls return ErrDisconnected. Only the first call has an effect.
//
// Destroy does not wait for polling tasks to exit; use WaitForStop for that.
func (c *Channel[T]) Destroy() {
	if !c.destroyed.CompareAndSwap(false, true) {
		return
	}
	c.logger.Debug("destroying event channel")

	c.cancel()

	for _, p := range c.pullConsumers.Drain() {
		p.disconnect()
	}
	for _, p := range c.pushConsumers.Drain() {
		p.disconnect()
	}
	for _, p := range c.pushSuppliers.Drain() {
		p.disconnect()
	}
	for _, p := range c.pullSuppliers.Drain() {
		p.disconnect()
	}

	c.queue.Close()

	if c.cfg.registerer != nil {
		c.metrics.unregister(c.cfg.registerer)
	}
}

// WaitForStop blocks until every polling task started by this channel's
// pull-consumer proxies has exited, or ctx is done.
//
// Polling tasks started after the call do not extend the wait beyond the
// moment the running count first drops to zero.
func (c *Channel[T]) WaitForStop(ctx context.Context) error {
	select {
	case <-c.pollers.idle():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pollerGroup counts running polling tasks. Unlike a sync.WaitGroup it may be
// incremented while other goroutines are waiting on it.
type pollerGroup struct {
	mu      sync.Mutex
	running int
	idleCh  chan struct{}
}

func newPollerGroup() *pollerGroup {
	idleCh := make(chan struct{})
	close(idleCh)
	return &pollerGroup{idleCh: idleCh}
}

func (g *pollerGroup) add() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == 0 {
		g.idleCh = make(chan struct{})
	}
	g.running++
}

func (g *pollerGroup) done() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running--
	if g.running == 0 {
		close(g.idleCh)
	}
}

// idle returns a channel that is closed once no polling task is running.
func (g *pollerGroup) idle() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idleCh
}

// pushEvent buffers data for the pull side and schedules one independent
// delivery per registered push-supplier proxy.
func (c *Channel[T]) pushEvent(data T) error {
	if c.Destroyed() {
		return events.ErrChannelDestroyed
	}

	if err := c.queue.Push(data); err != nil {
		if errors.Is(err, queue.ErrClosed) {
			return events.ErrChannelDestroyed
		}
		return err
	}
	c.metrics.pushed.Inc()

	c.pushSuppliers.ForEach(func(_ string, proxy *ProxyPushSupplier[T]) bool {
		go proxy.deliver(c.ctx, data)
		return true
	})
	return nil
}

// pullEvent dequeues without blocking.
func (c *Channel[T]) pullEvent() (T, bool, error) {
	if c.Destroyed() {
		var zero T
		return zero, false, events.ErrChannelDestroyed
	}
	v, ok := c.queue.Poll()
	return v, ok, nil
}

// tryPullEvent waits at most timeout for an event.
func (c *Channel[T]) tryPullEvent(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T
	if c.Destroyed() {
		return zero, false, events.ErrChannelDestroyed
	}
	v, ok, err := c.queue.PollTimeout(ctx, timeout)
	if errors.Is(err, queue.ErrClosed) {
		return zero, false, events.ErrChannelDestroyed
	}
	return v, ok, err
}

// takeEvent blocks until an event is available.
func (c *Channel[T]) takeEvent(ctx context.Context) (T, error) {
	var zero T
	if c.Destroyed() {
		return zero, events.ErrChannelDestroyed
	}
	v, err := c.queue.Take(ctx)
	if errors.Is(err, queue.ErrClosed) {
		return zero, events.ErrChannelDestroyed
	}
	return v, err
}

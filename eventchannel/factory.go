package eventchannel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/casualjim/eventchannel/internal/registry"
	"github.com/casualjim/eventchannel/pkg/slogx"
)

// ErrEmptyName is returned when a channel is registered without a name.
var ErrEmptyName = errors.New("channel name must not be empty")

// Directory is the external name registry a Factory publishes channels to.
// The channel core never talks to it.
type Directory interface {
	Register(name string, channel any) error
	Lookup(name string) (any, bool)
	Unregister(name string) error
}

// Factory creates channels and keeps track of them. It replaces a process
// wide singleton: construct one and hand it to whoever needs channels.
type Factory[T any] struct {
	dir      Directory
	defaults []Option
	logger   *slog.Logger

	channels registry.Registry[*Channel[T]]
	names    registry.Registry[*Channel[T]]
}

// NewFactory creates a factory. dir may be nil, in which case names are only
// kept locally. defaults are applied to every channel before per-call options.
func NewFactory[T any](dir Directory, defaults ...Option) (*Factory[T], error) {
	cfg, err := newConfig(defaults)
	if err != nil {
		return nil, err
	}
	return &Factory[T]{
		dir:      dir,
		defaults: slices.Clone(defaults),
		logger:   cfg.logger.With(slog.String("component", "factory")),
		channels: registry.New[*Channel[T]](),
		names:    registry.New[*Channel[T]](),
	}, nil
}

// Create builds a new, unregistered channel.
func (f *Factory[T]) Create(options ...Option) (*Channel[T], error) {
	all := make([]Option, 0, len(f.defaults)+len(options))
	all = append(all, f.defaults...)
	all = append(all, options...)

	c, err := New[T](all...)
	if err != nil {
		return nil, err
	}
	f.channels.Add(c.ID(), c)
	return c, nil
}

// CreateNamed builds a channel called name and registers it under that name.
func (f *Factory[T]) CreateNamed(name string, options ...Option) (*Channel[T], error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	c, err := f.Create(append(slices.Clip(options), WithName(name))...)
	if err != nil {
		return nil, err
	}
	if err := f.Register(name, c); err != nil {
		c.Destroy()
		f.channels.Del(c.ID())
		return nil, err
	}
	return c, nil
}

// Register makes ch findable by name, replacing any previous registration.
// The directory is best-effort: its failures are logged, not returned.
func (f *Factory[T]) Register(name string, ch *Channel[T]) error {
	if name == "" {
		return ErrEmptyName
	}
	f.names.Add(name, ch)
	f.channels.Add(ch.ID(), ch)

	if f.dir != nil {
		if err := f.dir.Register(name, ch); err != nil {
			f.logger.Warn("failed to publish channel to directory", slog.String("name", name), slogx.Channel(ch.label()), slogx.Error(err))
		}
	}
	return nil
}

// Lookup finds a channel by name, asking the directory when the name is not
// known locally.
func (f *Factory[T]) Lookup(name string) (*Channel[T], bool) {
	if c, ok := f.names.Get(name); ok {
		return c, true
	}
	if f.dir == nil {
		return nil, false
	}
	v, ok := f.dir.Lookup(name)
	if !ok {
		return nil, false
	}
	c, ok := v.(*Channel[T])
	return c, ok
}

// Unregister forgets a name. The channel itself is left alone.
func (f *Factory[T]) Unregister(name string) {
	f.names.Del(name)
	if f.dir != nil {
		if err := f.dir.Unregister(name); err != nil {
			f.logger.Warn("failed to remove channel from directory", slog.String("name", name), slogx.Error(err))
		}
	}
}

// Names returns the locally registered names, sorted.
func (f *Factory[T]) Names() []string {
	return f.names.Keys()
}

// DestroyAll destroys every channel this factory created or registered and
// drops all names.
func (f *Factory[T]) DestroyAll() {
	f.destroyAll()
}

// Shutdown is DestroyAll followed by waiting for the polling tasks of every
// destroyed channel to exit.
func (f *Factory[T]) Shutdown(ctx context.Context) error {
	for _, c := range f.destroyAll() {
		if err := c.WaitForStop(ctx); err != nil {
			return fmt.Errorf("waiting for channel %s: %w", c.label(), err)
		}
	}
	return nil
}

func (f *Factory[T]) destroyAll() []*Channel[T] {
	for _, name := range f.names.Keys() {
		f.Unregister(name)
	}
	channels := f.channels.Drain()
	for _, c := range channels {
		c.Destroy()
	}
	if len(channels) > 0 {
		f.logger.Debug("destroyed channels", slog.Int("count", len(channels)))
	}
	return channels
}

package eventchannel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapDirectory struct {
	mu      sync.Mutex
	entries map[string]any
	failing bool
}

func newMapDirectory() *mapDirectory {
	return &mapDirectory{entries: make(map[string]any)}
}

func (d *mapDirectory) Register(name string, channel any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing {
		return errors.New("directory unavailable")
	}
	d.entries[name] = channel
	return nil
}

func (d *mapDirectory) Lookup(name string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.entries[name]
	return v, ok
}

func (d *mapDirectory) Unregister(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing {
		return errors.New("directory unavailable")
	}
	delete(d.entries, name)
	return nil
}

func TestFactory(t *testing.T) {
	t.Run("create applies defaults then overrides", func(t *testing.T) {
		f, err := NewFactory[string](nil, WithName("default"))
		require.NoError(t, err)
		t.Cleanup(f.DestroyAll)

		c, err := f.Create()
		require.NoError(t, err)
		assert.Equal(t, "default", c.Name())

		c2, err := f.Create(WithName("override"))
		require.NoError(t, err)
		assert.Equal(t, "override", c2.Name())
		assert.NotEqual(t, c.ID(), c2.ID())

		assert.Empty(t, f.Names(), "Create does not register")
	})

	t.Run("invalid defaults", func(t *testing.T) {
		_, err := NewFactory[string](nil, WithPollInterval(-1))
		require.Error(t, err)
	})

	t.Run("named channels are published", func(t *testing.T) {
		dir := newMapDirectory()
		f, err := NewFactory[string](dir)
		require.NoError(t, err)
		t.Cleanup(f.DestroyAll)

		c, err := f.CreateNamed("orders")
		require.NoError(t, err)
		assert.Equal(t, "orders", c.Name())

		got, ok := f.Lookup("orders")
		require.True(t, ok)
		assert.Same(t, c, got)

		published, ok := dir.Lookup("orders")
		require.True(t, ok)
		assert.Same(t, c, published)
		assert.Equal(t, []string{"orders"}, f.Names())

		f.Unregister("orders")
		_, ok = f.Lookup("orders")
		assert.False(t, ok)
		_, ok = dir.Lookup("orders")
		assert.False(t, ok)
		assert.False(t, c.Destroyed())
	})

	t.Run("empty names are rejected", func(t *testing.T) {
		f, err := NewFactory[string](nil)
		require.NoError(t, err)
		_, err = f.CreateNamed("")
		require.ErrorIs(t, err, ErrEmptyName)

		c, err := f.Create()
		require.NoError(t, err)
		require.ErrorIs(t, f.Register("", c), ErrEmptyName)
		f.DestroyAll()
	})

	t.Run("lookup falls back to the directory", func(t *testing.T) {
		dir := newMapDirectory()
		other, err := NewFactory[string](dir)
		require.NoError(t, err)
		c, err := other.CreateNamed("shared")
		require.NoError(t, err)
		t.Cleanup(other.DestroyAll)

		f, err := NewFactory[string](dir)
		require.NoError(t, err)
		got, ok := f.Lookup("shared")
		require.True(t, ok)
		assert.Same(t, c, got)

		// wrong payload type in the directory
		ints, err := NewFactory[int](dir)
		require.NoError(t, err)
		_, ok = ints.Lookup("shared")
		assert.False(t, ok)
	})

	t.Run("directory failures do not fail registration", func(t *testing.T) {
		dir := newMapDirectory()
		dir.failing = true
		f, err := NewFactory[string](dir)
		require.NoError(t, err)
		t.Cleanup(f.DestroyAll)

		c, err := f.CreateNamed("local-only")
		require.NoError(t, err)
		got, ok := f.Lookup("local-only")
		require.True(t, ok)
		assert.Same(t, c, got)
		assert.NotPanics(t, func() { f.Unregister("local-only") })
	})

	t.Run("destroy all", func(t *testing.T) {
		dir := newMapDirectory()
		f, err := NewFactory[string](dir)
		require.NoError(t, err)

		a, err := f.CreateNamed("a")
		require.NoError(t, err)
		b, err := f.Create()
		require.NoError(t, err)
		external, err := New[string]()
		require.NoError(t, err)
		require.NoError(t, f.Register("external", external))

		f.DestroyAll()

		assert.True(t, a.Destroyed())
		assert.True(t, b.Destroyed())
		assert.True(t, external.Destroyed())
		assert.Empty(t, f.Names())
		_, ok := dir.Lookup("a")
		assert.False(t, ok)
	})
}

func TestFactory_Shutdown(t *testing.T) {
	f, err := NewFactory[string](nil, WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	c, err := f.CreateNamed("polled")
	require.NoError(t, err)
	suppliers, err := c.ForSuppliers()
	require.NoError(t, err)
	p, err := suppliers.ObtainPullConsumer()
	require.NoError(t, err)
	require.NoError(t, p.ConnectPullSupplier(&scriptedSupplier{}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.Shutdown(ctx))
	assert.True(t, c.Destroyed())
	assert.Equal(t, StateDisconnected, p.State())
	assert.Empty(t, f.Names())
}

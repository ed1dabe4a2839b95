package eventchannel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/casualjim/eventchannel/events"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	mu           sync.Mutex
	received     []string
	err          error
	disconnected atomic.Int32
}

func (r *recordingConsumer) Push(_ context.Context, data string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.received = append(r.received, data)
	return nil
}

func (r *recordingConsumer) DisconnectPushConsumer() {
	r.disconnected.Add(1)
}

func (r *recordingConsumer) Received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.received))
	copy(out, r.received)
	return out
}

func (r *recordingConsumer) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

type countingSupplier struct {
	disconnected atomic.Int32
}

func (c *countingSupplier) DisconnectPushSupplier() { c.disconnected.Add(1) }

type countingPullConsumer struct {
	disconnected atomic.Int32
}

func (c *countingPullConsumer) DisconnectPullConsumer() { c.disconnected.Add(1) }

// scriptedSupplier hands out its events one TryPull at a time, then answers
// with err (or "nothing" when err is nil) forever.
type scriptedSupplier struct {
	mu           sync.Mutex
	events       []string
	err          error
	calls        atomic.Int32
	disconnected atomic.Int32
}

func (s *scriptedSupplier) Pull(ctx context.Context) (string, error) {
	return events.TryPullFunc[string](s.TryPull).Pull(ctx)
}

func (s *scriptedSupplier) TryPull() (string, bool, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) > 0 {
		v := s.events[0]
		s.events = s.events[1:]
		return v, true, nil
	}
	if s.err != nil {
		return "", false, s.err
	}
	return "", false, nil
}

func (s *scriptedSupplier) DisconnectPullSupplier() { s.disconnected.Add(1) }

func newTestChannel(t *testing.T, options ...Option) *Channel[string] {
	t.Helper()
	c, err := New[string](options...)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)
	return c
}

func obtainAll(t *testing.T, c *Channel[string]) (*ProxyPushConsumer[string], *ProxyPushSupplier[string], *ProxyPullConsumer[string], *ProxyPullSupplier[string]) {
	t.Helper()
	consumers, err := c.ForConsumers()
	require.NoError(t, err)
	suppliers, err := c.ForSuppliers()
	require.NoError(t, err)

	pushConsumer, err := suppliers.ObtainPushConsumer()
	require.NoError(t, err)
	pushSupplier, err := consumers.ObtainPushSupplier()
	require.NoError(t, err)
	pullConsumer, err := suppliers.ObtainPullConsumer()
	require.NoError(t, err)
	pullSupplier, err := consumers.ObtainPullSupplier()
	require.NoError(t, err)
	return pushConsumer, pushSupplier, pullConsumer, pullSupplier
}

func drain(t *testing.T, p *ProxyPullSupplier[string]) []string {
	t.Helper()
	var out []string
	for {
		v, ok, err := p.TryPull()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

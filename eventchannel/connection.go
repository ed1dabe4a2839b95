package eventchannel

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/casualjim/eventchannel/events"
)

// State is the connection state of a proxy.
type State int32

const (
	StateUnconnected State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// connection holds the state machine shared by all proxies. Both transitions
// are test-and-set under the mutex: of two racing connects exactly one wins,
// of two racing disconnects exactly one gets first == true.
type connection[P any] struct {
	mu      sync.Mutex
	state   State
	peer    P
	hasPeer bool
}

// connect moves unconnected -> connected and stores peer, which may be nil.
// A typed nil pointer counts as no peer.
// onConnected runs under the lock after a successful transition.
func (c *connection[P]) connect(peer P, onConnected func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDisconnected:
		return events.ErrDisconnected
	case StateConnected:
		return events.ErrAlreadyConnected
	}

	c.state = StateConnected
	c.peer = peer
	c.hasPeer = !isNilPeer(peer)
	if onConnected != nil {
		onConnected()
	}
	return nil
}

// disconnect moves any state to disconnected and hands back the peer that was
// stored. onDisconnected runs under the lock, only for the first call.
func (c *connection[P]) disconnect(onDisconnected func()) (peer P, hasPeer bool, first bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisconnected {
		return peer, false, false
	}

	peer, hasPeer = c.peer, c.hasPeer
	var zero P
	c.peer, c.hasPeer = zero, false
	c.state = StateDisconnected
	if onDisconnected != nil {
		onDisconnected()
	}
	return peer, hasPeer, true
}

func (c *connection[P]) current() (P, bool, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peer, c.hasPeer, c.state
}

func (c *connection[P]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func isNilPeer(peer any) bool {
	if peer == nil {
		return true
	}
	v := reflect.ValueOf(peer)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// notifyPeer runs a peer's disconnect notification. Notifications are best
// effort: a panicking peer is logged and otherwise ignored.
func notifyPeer(logger *slog.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("peer panicked on disconnect notification", slog.Any("panic", r))
		}
	}()
	fn()
}

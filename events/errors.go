package events

import "errors"

var (
	// ErrDisconnected signals that a proxy or peer has been torn down.
	ErrDisconnected = errors.New("disconnected")
	// ErrAlreadyConnected signals a second connect attempt on a proxy.
	ErrAlreadyConnected = errors.New("already connected")
	// ErrChannelDestroyed signals an operation on a destroyed event channel.
	ErrChannelDestroyed = errors.New("event channel has been destroyed")
	// ErrTypeMismatch signals a payload that does not have the expected type.
	// The channel core never raises it; adapters that convert payloads do.
	ErrTypeMismatch = errors.New("type mismatch")
)

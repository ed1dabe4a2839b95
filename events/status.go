package events

import (
	"errors"
	"fmt"
)

// Status is the outcome of an operation that crosses the channel boundary.
type Status uint8

const (
	StatusOK Status = iota
	StatusDisconnected
	StatusAlreadyConnected
	// StatusFault covers everything else, including a destroyed channel.
	StatusFault
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDisconnected:
		return "disconnected"
	case StatusAlreadyConnected:
		return "already_connected"
	case StatusFault:
		return "fault"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// StatusOf classifies an error returned by a channel, proxy or peer.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrDisconnected):
		return StatusDisconnected
	case errors.Is(err, ErrAlreadyConnected):
		return StatusAlreadyConnected
	default:
		return StatusFault
	}
}

// Result pairs a value with the status of the call that produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// ResultOf wraps a value and error pair.
func ResultOf[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

func (r Result[T]) Status() Status {
	return StatusOf(r.Err)
}

func (r Result[T]) IsOK() bool {
	return r.Err == nil
}

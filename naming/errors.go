package naming

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName   = errors.New("invalid name")
	ErrAlreadyBound  = errors.New("name already bound")
	ErrNotEmpty      = errors.New("namespace is not empty")
	ErrNotFound      = errors.New("name not found")
	ErrCannotProceed = errors.New("cannot proceed")
)

// NotFoundReason says why a lookup failed.
type NotFoundReason int

const (
	// MissingNode means a component is not bound.
	MissingNode NotFoundReason = iota
	// NotContext means an intermediate component is bound to an object.
	NotContext
	// NotObject means an object was expected where a namespace is bound.
	NotObject
)

func (r NotFoundReason) String() string {
	switch r {
	case MissingNode:
		return "missing node"
	case NotContext:
		return "not a namespace"
	case NotObject:
		return "not an object"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// NotFoundError reports the failing component and everything after it.
type NotFoundError struct {
	Reason     NotFoundReason
	RestOfName Name
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s at %q", ErrNotFound, e.Reason, e.RestOfName.String())
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CannotProceedError is returned when resolution reaches a destroyed
// namespace.
type CannotProceedError struct {
	RestOfName Name
}

func (e *CannotProceedError) Error() string {
	return fmt.Sprintf("%s: namespace destroyed before %q", ErrCannotProceed, e.RestOfName.String())
}

func (e *CannotProceedError) Unwrap() error {
	return ErrCannotProceed
}

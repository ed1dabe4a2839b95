// Package registry provides a concurrent, string-keyed set of live values.
package registry

import (
	"slices"

	"github.com/alphadose/haxmap"
)

type Registry[T any] interface {
	Get(name string) (T, bool)
	Add(name string, value T)
	GetOrAdd(name string, value func() T) (T, bool)
	Del(name string)
	Len() int
	// Keys returns the registered names in sorted order.
	Keys() []string
	// Values returns a point-in-time copy of the registered values.
	Values() []T
	ForEach(fn func(name string, value T) bool)
	// Drain removes every entry and returns the removed values.
	Drain() []T
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) Add(name string, value T) {
	r.values.Set(name, value)
}

func (r *registry[T]) GetOrAdd(name string, valueFn func() T) (T, bool) {
	return r.values.GetOrCompute(name, valueFn)
}

func (r *registry[T]) Del(name string) {
	r.values.Del(name)
}

func (r *registry[T]) Len() int {
	return int(r.values.Len())
}

func (r *registry[T]) Keys() []string {
	keys := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		keys = append(keys, name)
		return true
	})
	slices.Sort(keys)
	return keys
}

func (r *registry[T]) Values() []T {
	values := make([]T, 0, r.values.Len())
	r.values.ForEach(func(_ string, value T) bool {
		values = append(values, value)
		return true
	})
	return values
}

func (r *registry[T]) ForEach(fn func(name string, value T) bool) {
	r.values.ForEach(fn)
}

func (r *registry[T]) Drain() []T {
	var (
		keys   []string
		values []T
	)
	r.values.ForEach(func(name string, value T) bool {
		keys = append(keys, name)
		values = append(values, value)
		return true
	})
	if len(keys) > 0 {
		r.values.Del(keys...)
	}
	return values
}

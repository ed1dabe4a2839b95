package naming

import (
	"fmt"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// BindingType tells objects and namespaces apart.
type BindingType int

const (
	BindingObject BindingType = iota
	BindingNamespace
)

func (t BindingType) String() string {
	if t == BindingNamespace {
		return "namespace"
	}
	return "object"
}

// Binding describes one entry of a namespace.
type Binding struct {
	Name NameComponent `json:"name"`
	Type BindingType   `json:"type"`
}

type entry struct {
	value any
	typ   BindingType
}

// Namespace is a set of bindings from name components to objects or nested
// namespaces. Listing returns bindings in the order they were first bound.
type Namespace struct {
	mu        sync.RWMutex
	bindings  *orderedmap.OrderedMap[NameComponent, entry]
	destroyed bool
}

// NewNamespace creates an empty, unbound namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		bindings: orderedmap.New[NameComponent, entry](),
	}
}

// Bind binds obj to n. All but the last component of n must resolve to
// namespaces.
func (ns *Namespace) Bind(n Name, obj any) error {
	if obj == nil {
		return fmt.Errorf("%w: nil object for %q", ErrInvalidName, n.String())
	}
	return ns.bind(n, entry{value: obj, typ: BindingObject})
}

// BindNamespace binds a namespace to n so resolution can continue through it.
func (ns *Namespace) BindNamespace(n Name, child *Namespace) error {
	if child == nil {
		return fmt.Errorf("%w: nil namespace for %q", ErrInvalidName, n.String())
	}
	return ns.bind(n, entry{value: child, typ: BindingNamespace})
}

// Rebind binds obj to n, replacing an existing object binding. It fails with
// NotObject when n is bound to a namespace.
func (ns *Namespace) Rebind(n Name, obj any) error {
	if obj == nil {
		return fmt.Errorf("%w: nil object for %q", ErrInvalidName, n.String())
	}
	return ns.rebind(n, entry{value: obj, typ: BindingObject})
}

// RebindNamespace binds child to n, replacing an existing namespace binding.
// It fails with NotContext when n is bound to an object.
func (ns *Namespace) RebindNamespace(n Name, child *Namespace) error {
	if child == nil {
		return fmt.Errorf("%w: nil namespace for %q", ErrInvalidName, n.String())
	}
	return ns.rebind(n, entry{value: child, typ: BindingNamespace})
}

// BindNewNamespace creates a namespace and binds it to n.
func (ns *Namespace) BindNewNamespace(n Name) (*Namespace, error) {
	child := NewNamespace()
	if err := ns.BindNamespace(n, child); err != nil {
		return nil, err
	}
	return child, nil
}

// Resolve returns whatever is bound to n, object or namespace.
func (ns *Namespace) Resolve(n Name) (any, error) {
	parent, last, err := ns.walk(n)
	if err != nil {
		return nil, err
	}

	parent.mu.RLock()
	defer parent.mu.RUnlock()
	if parent.destroyed {
		return nil, &CannotProceedError{RestOfName: n[len(n)-1:]}
	}
	e, ok := parent.bindings.Get(last)
	if !ok {
		return nil, &NotFoundError{Reason: MissingNode, RestOfName: n[len(n)-1:]}
	}
	return e.value, nil
}

// Unbind removes the binding for n. A namespace that gets unbound is not
// destroyed.
func (ns *Namespace) Unbind(n Name) error {
	parent, last, err := ns.walk(n)
	if err != nil {
		return err
	}

	parent.mu.Lock()
	defer parent.mu.Unlock()
	if parent.destroyed {
		return &CannotProceedError{RestOfName: n[len(n)-1:]}
	}
	if _, ok := parent.bindings.Delete(last); !ok {
		return &NotFoundError{Reason: MissingNode, RestOfName: n[len(n)-1:]}
	}
	return nil
}

// List returns at most howMany bindings. When more exist the rest is
// available through the returned iterator, which is nil otherwise.
func (ns *Namespace) List(howMany int) ([]Binding, *BindingIterator) {
	ns.mu.RLock()
	all := make([]Binding, 0, ns.bindings.Len())
	for pair := ns.bindings.Oldest(); pair != nil; pair = pair.Next() {
		all = append(all, Binding{Name: pair.Key, Type: pair.Value.typ})
	}
	ns.mu.RUnlock()

	if howMany < 0 {
		howMany = 0
	}
	if howMany >= len(all) {
		return all, nil
	}
	return all[:howMany:howMany], newBindingIterator(all[howMany:])
}

// Len reports the number of direct bindings.
func (ns *Namespace) Len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return ns.bindings.Len()
}

// Destroy marks an empty namespace as unusable. Resolution that reaches a
// destroyed namespace fails with CannotProceed.
func (ns *Namespace) Destroy() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if ns.bindings.Len() > 0 {
		return fmt.Errorf("%w: %d bindings left", ErrNotEmpty, ns.bindings.Len())
	}
	ns.destroyed = true
	return nil
}

func (ns *Namespace) bind(n Name, e entry) error {
	parent, last, err := ns.walk(n)
	if err != nil {
		return err
	}

	parent.mu.Lock()
	defer parent.mu.Unlock()
	if parent.destroyed {
		return &CannotProceedError{RestOfName: n[len(n)-1:]}
	}
	if _, ok := parent.bindings.Get(last); ok {
		return fmt.Errorf("%w: %q", ErrAlreadyBound, n.String())
	}
	parent.bindings.Set(last, e)
	return nil
}

func (ns *Namespace) rebind(n Name, e entry) error {
	parent, last, err := ns.walk(n)
	if err != nil {
		return err
	}

	parent.mu.Lock()
	defer parent.mu.Unlock()
	if parent.destroyed {
		return &CannotProceedError{RestOfName: n[len(n)-1:]}
	}
	if existing, ok := parent.bindings.Get(last); ok && existing.typ != e.typ {
		reason := NotObject
		if e.typ == BindingNamespace {
			reason = NotContext
		}
		return &NotFoundError{Reason: reason, RestOfName: n[len(n)-1:]}
	}
	parent.bindings.Set(last, e)
	return nil
}

// walk follows every component but the last and returns the namespace the
// last one lives in. Each namespace is locked only while it is consulted.
func (ns *Namespace) walk(n Name) (*Namespace, NameComponent, error) {
	if err := n.validate(); err != nil {
		return nil, NameComponent{}, err
	}

	current := ns
	for i, c := range n[:len(n)-1] {
		next, err := current.child(c, n[i:])
		if err != nil {
			return nil, NameComponent{}, err
		}
		current = next
	}
	return current, n[len(n)-1], nil
}

func (ns *Namespace) child(c NameComponent, rest Name) (*Namespace, error) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	if ns.destroyed {
		return nil, &CannotProceedError{RestOfName: rest}
	}
	e, ok := ns.bindings.Get(c)
	if !ok {
		return nil, &NotFoundError{Reason: MissingNode, RestOfName: rest}
	}
	if e.typ != BindingNamespace {
		return nil, &NotFoundError{Reason: NotContext, RestOfName: rest}
	}
	return e.value.(*Namespace), nil
}

// BindingIterator hands out the bindings a List call did not return.
type BindingIterator struct {
	mu       sync.Mutex
	bindings []Binding
}

func newBindingIterator(bindings []Binding) *BindingIterator {
	return &BindingIterator{bindings: append([]Binding(nil), bindings...)}
}

// NextOne returns the next binding, or false when none are left.
func (it *BindingIterator) NextOne() (Binding, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if len(it.bindings) == 0 {
		return Binding{}, false
	}
	b := it.bindings[0]
	it.bindings = it.bindings[1:]
	return b, true
}

// NextN returns up to howMany bindings, or false when none are left.
func (it *BindingIterator) NextN(howMany int) ([]Binding, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if len(it.bindings) == 0 || howMany <= 0 {
		return nil, false
	}
	howMany = min(howMany, len(it.bindings))
	out := append([]Binding(nil), it.bindings[:howMany]...)
	it.bindings = it.bindings[howMany:]
	return out, true
}

// Destroy drops the remaining bindings.
func (it *BindingIterator) Destroy() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.bindings = nil
}

package interop

import "github.com/casualjim/eventchannel/naming"

// LegacyNameComponent is the id/kind pair legacy naming clients exchange.
type LegacyNameComponent struct {
	ID   string
	Kind string
}

// NameFromLegacy converts a legacy name. A nil slice yields a nil Name.
func NameFromLegacy(components []LegacyNameComponent) naming.Name {
	if components == nil {
		return nil
	}
	n := make(naming.Name, len(components))
	for i, c := range components {
		n[i] = naming.NameComponent{ID: c.ID, Kind: c.Kind}
	}
	return n
}

// NameToLegacy converts a name for legacy clients. A nil Name yields nil.
func NameToLegacy(n naming.Name) []LegacyNameComponent {
	if n == nil {
		return nil
	}
	out := make([]LegacyNameComponent, len(n))
	for i, c := range n {
		out[i] = LegacyNameComponent{ID: c.ID, Kind: c.Kind}
	}
	return out
}

// LegacyNotFoundReason mirrors the legacy wire values of naming.NotFoundReason.
type LegacyNotFoundReason int32

const (
	LegacyMissingNode LegacyNotFoundReason = iota
	LegacyNotContext
	LegacyNotObject
)

// ReasonFromLegacy maps unknown values to naming.MissingNode.
func ReasonFromLegacy(r LegacyNotFoundReason) naming.NotFoundReason {
	switch r {
	case LegacyNotContext:
		return naming.NotContext
	case LegacyNotObject:
		return naming.NotObject
	default:
		return naming.MissingNode
	}
}

// LegacyBindingType mirrors the legacy wire values of naming.BindingType.
type LegacyBindingType int32

const (
	LegacyObject LegacyBindingType = iota
	LegacyContext
)

// BindingFromLegacy converts one legacy binding. Unknown types map to objects.
func BindingFromLegacy(name []LegacyNameComponent, typ LegacyBindingType) (naming.Name, naming.BindingType) {
	bt := naming.BindingObject
	if typ == LegacyContext {
		bt = naming.BindingNamespace
	}
	return NameFromLegacy(name), bt
}

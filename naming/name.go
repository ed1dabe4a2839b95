package naming

import (
	"fmt"
	"strings"
)

// NameComponent is one step of a Name. Kind is an optional, free form tag.
type NameComponent struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
}

// String renders the component as "id" or "id.kind".
func (c NameComponent) String() string {
	if c.Kind == "" {
		return c.ID
	}
	return c.ID + "." + c.Kind
}

func (c NameComponent) empty() bool {
	return c.ID == "" && c.Kind == ""
}

// Name is a path through nested namespaces.
type Name []NameComponent

// NewName builds a name from its components.
func NewName(components ...NameComponent) Name {
	return Name(components)
}

// ParseName parses "a/b.kind/c". Empty segments are skipped and a segment is
// split into id and kind at its first dot.
func ParseName(s string) (Name, error) {
	var n Name
	for _, segment := range strings.Split(s, "/") {
		if segment == "" {
			continue
		}
		id, kind, _ := strings.Cut(segment, ".")
		n = append(n, NameComponent{ID: id, Kind: kind})
	}
	if len(n) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return n, nil
}

// MustParseName is ParseName that panics on error.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	parts := make([]string, len(n))
	for i, c := range n {
		parts[i] = c.String()
	}
	return strings.Join(parts, "/")
}

// Prefix returns the first length components.
func (n Name) Prefix(length int) (Name, error) {
	if length < 0 || length > len(n) {
		return nil, fmt.Errorf("invalid prefix length %d for a name of %d components", length, len(n))
	}
	return append(Name(nil), n[:length]...), nil
}

// Suffix returns the components from start on.
func (n Name) Suffix(start int) (Name, error) {
	if start < 0 || start > len(n) {
		return nil, fmt.Errorf("invalid suffix start %d for a name of %d components", start, len(n))
	}
	return append(Name(nil), n[start:]...), nil
}

func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

func (n Name) validate() error {
	if len(n) == 0 {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for i, c := range n {
		if c.empty() {
			return fmt.Errorf("%w: component %d of %q is empty", ErrInvalidName, i, n.String())
		}
	}
	return nil
}

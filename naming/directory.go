package naming

import (
	"errors"
	"fmt"
)

// ChannelKind is the component kind channels are bound under.
const ChannelKind = "EventChannel"

// ChannelDirectory publishes event channels in a namespace as
// "<name>.EventChannel". It satisfies eventchannel.Directory.
type ChannelDirectory struct {
	ns *Namespace
}

// NewChannelDirectory binds channels directly in ns.
func NewChannelDirectory(ns *Namespace) *ChannelDirectory {
	return &ChannelDirectory{ns: ns}
}

// ChannelName is the naming entry a channel called name is bound to.
func ChannelName(name string) Name {
	return Name{{ID: name, Kind: ChannelKind}}
}

func (d *ChannelDirectory) Register(name string, channel any) error {
	if name == "" {
		return fmt.Errorf("%w: empty channel name", ErrInvalidName)
	}
	return d.ns.Rebind(ChannelName(name), channel)
}

func (d *ChannelDirectory) Lookup(name string) (any, bool) {
	if name == "" {
		return nil, false
	}
	v, err := d.ns.Resolve(ChannelName(name))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Unregister removes the binding. A name that is not bound is not an error.
func (d *ChannelDirectory) Unregister(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty channel name", ErrInvalidName)
	}
	err := d.ns.Unbind(ChannelName(name))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Names lists the channels bound in the directory's namespace.
func (d *ChannelDirectory) Names() []string {
	bindings, _ := d.ns.List(d.ns.Len())
	var names []string
	for _, b := range bindings {
		if b.Type == BindingObject && b.Name.Kind == ChannelKind {
			names = append(names, b.Name.ID)
		}
	}
	return names
}

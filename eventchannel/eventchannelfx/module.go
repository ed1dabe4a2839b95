// Package eventchannelfx wires event channel factories and the naming
// service into a go.uber.org/fx application.
package eventchannelfx

import (
	"context"
	"log/slog"

	"github.com/casualjim/eventchannel/eventchannel"
	"github.com/casualjim/eventchannel/naming"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var _ eventchannel.Directory = (*naming.ChannelDirectory)(nil)

// NamingParams are the optional dependencies of the naming service.
type NamingParams struct {
	fx.In

	Logger *slog.Logger `optional:"true"`
}

// Naming provides a *naming.Service and an eventchannel.Directory that binds
// channels in its root namespace. Include it once per application.
var Naming = fx.Module("naming",
	fx.Provide(
		NewNamingService,
		fx.Annotate(
			NewChannelDirectory,
			fx.As(new(eventchannel.Directory)),
		),
	),
)

func NewNamingService(p NamingParams) *naming.Service {
	return naming.NewService(p.Logger)
}

func NewChannelDirectory(svc *naming.Service) *naming.ChannelDirectory {
	return naming.NewChannelDirectory(svc.Root())
}

// FactoryParams are the dependencies of a channel factory. Everything is
// optional: without a Directory channels are only named locally.
type FactoryParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Directory  eventchannel.Directory `optional:"true"`
	Logger     *slog.Logger           `optional:"true"`
	Registerer prometheus.Registerer  `optional:"true"`
}

// Module provides an *eventchannel.Factory[T]. Channels it creates get
// options, plus the logger and registerer found in the container. Every
// channel is destroyed when the application stops.
func Module[T any](options ...eventchannel.Option) fx.Option {
	return fx.Module("eventchannel",
		fx.Provide(func(p FactoryParams) (*eventchannel.Factory[T], error) {
			return NewFactory[T](p, options...)
		}),
	)
}

// NewFactory builds a factory from p and ties it to the lifecycle.
func NewFactory[T any](p FactoryParams, options ...eventchannel.Option) (*eventchannel.Factory[T], error) {
	var defaults []eventchannel.Option
	if p.Logger != nil {
		defaults = append(defaults, eventchannel.WithLogger(p.Logger))
	}
	if p.Registerer != nil {
		defaults = append(defaults, eventchannel.WithRegisterer(p.Registerer))
	}
	defaults = append(defaults, options...)

	f, err := eventchannel.NewFactory[T](p.Directory, defaults...)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return f.Shutdown(ctx)
		},
	})
	return f, nil
}

package eventchannel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/casualjim/eventchannel/pkg/slogx"
	"github.com/fogfish/opts"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultPollInterval is the pause between two polls of a pull supplier.
const DefaultPollInterval = 100 * time.Millisecond

type config struct {
	name         string
	pollInterval time.Duration
	logger       *slog.Logger
	clock        clock.Clock
	registerer   prometheus.Registerer
}

// Option configures a Channel or the defaults of a Factory.
type Option = opts.Option[config]

// WithName sets the human readable channel name used in logs, metrics and
// snapshots. Factory.CreateNamed sets it for you.
var WithName = opts.ForName[config, string]("name")

// WithPollInterval sets how long a pull-consumer proxy sleeps between two
// polls of its supplier. The interval must be positive.
func WithPollInterval(interval time.Duration) Option {
	return opts.Type[config](func(c *config) error {
		if interval <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", interval)
		}
		c.pollInterval = interval
		return nil
	})
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return opts.Type[config](func(c *config) error {
		c.logger = logger
		return nil
	})
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clk clock.Clock) Option {
	return opts.Type[config](func(c *config) error {
		c.clock = clk
		return nil
	})
}

// WithRegisterer registers the channel metrics with reg. Without it the
// metrics are collected but never exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return opts.Type[config](func(c *config) error {
		c.registerer = reg
		return nil
	})
}

func newConfig(options []Option) (config, error) {
	cfg := config{
		pollInterval: DefaultPollInterval,
	}
	if err := opts.Apply(&cfg, options); err != nil {
		return config{}, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	cfg.logger = cfg.logger.With(slogx.LoggerName("eventchannel"))
	if cfg.clock == nil {
		cfg.clock = clock.New()
	}
	return cfg, nil
}

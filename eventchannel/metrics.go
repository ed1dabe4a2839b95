package eventchannel

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "eventchannel"

type metrics struct {
	pushed           prometheus.Counter
	delivered        prometheus.Counter
	deliveryFailures prometheus.Counter
	polled           prometheus.Counter
	pollFailures     prometheus.Counter
	proxies          *prometheus.GaugeVec
	queueDepth       prometheus.GaugeFunc
}

func newMetrics(channel string, queueDepth func() float64) *metrics {
	labels := prometheus.Labels{"channel": channel}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	return &metrics{
		pushed:           counter("events_pushed_total", "Events accepted by the channel."),
		delivered:        counter("events_delivered_total", "Events delivered to push consumers."),
		deliveryFailures: counter("delivery_failures_total", "Push deliveries that failed with an error other than disconnected."),
		polled:           counter("events_polled_total", "Events retrieved from pull suppliers."),
		pollFailures:     counter("poll_failures_total", "Polls of a pull supplier that failed with an error other than disconnected."),
		proxies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "proxies",
			Help:        "Live proxies by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		queueDepth: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "queue_depth",
			Help:        "Events buffered for pull consumers.",
			ConstLabels: labels,
		}, queueDepth),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.pushed,
		m.delivered,
		m.deliveryFailures,
		m.polled,
		m.pollFailures,
		m.proxies,
		m.queueDepth,
	}
}

// register registers every collector or none of them.
func (m *metrics) register(reg prometheus.Registerer) error {
	var registered []prometheus.Collector
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				return fmt.Errorf("metrics already registered: %w", err)
			}
			return err
		}
		registered = append(registered, c)
	}
	return nil
}

func (m *metrics) unregister(reg prometheus.Registerer) {
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}

package jdwp

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the per-connection Prometheus instruments. Each Connection
// owns its own registry-free instruments (not registered with the global
// default registry) so opening many connections in a test never collides
// on duplicate metric registration; callers that want them exported should
// register the ones they care about via Connection.Collectors().
type metrics struct {
	requestsInflight   prometheus.Gauge
	requestsTotal      *prometheus.CounterVec
	eventQueueDepth    prometheus.Gauge
	eventsDroppedTotal prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		requestsInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jdwp",
			Name:      "requests_inflight",
			Help:      "Number of JDWP commands awaiting a reply.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jdwp",
			Name:      "requests_total",
			Help:      "Total JDWP commands sent, by outcome.",
		}, []string{"outcome"}),
		eventQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jdwp",
			Name:      "event_queue_depth",
			Help:      "Number of composite event sets currently buffered.",
		}),
		eventsDroppedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jdwp",
			Name:      "events_dropped_total",
			Help:      "Total composite event sets dropped because the event queue was full.",
		}),
	}
}

// Collectors returns every Prometheus collector backing this connection's
// metrics, for a caller to register with its own registry.
func (c *Connection) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.metrics.requestsInflight,
		c.metrics.requestsTotal,
		c.metrics.eventQueueDepth,
		c.metrics.eventsDroppedTotal,
	}
}

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the collector. All methods are nil-safe
// so tests can run without a registry.
type Metrics struct {
	ConnectionsAccepted prometheus.Counter
	ActiveHandlers      prometheus.Gauge
	EventsReceived      prometheus.Counter
	EventsWritten       prometheus.Counter
	MalformedDropped    prometheus.Counter
	ConnectionErrors    prometheus.Counter
	QueueDepth          prometheus.Gauge
	WriteFailures       prometheus.Counter
	SinkErrors          *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all collector metrics registered
// on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		ConnectionsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_connections_accepted_total",
			Help: "Total number of client connections accepted",
		}),
		ActiveHandlers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scribe_active_handlers",
			Help: "Number of connection handlers currently running",
		}),
		EventsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_events_received_total",
			Help: "Total number of well-formed events parsed from client lines",
		}),
		EventsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_events_written_total",
			Help: "Total number of events appended to the session log file",
		}),
		MalformedDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_malformed_lines_dropped_total",
			Help: "Total number of client lines dropped for failing structural parsing",
		}),
		ConnectionErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_connection_errors_total",
			Help: "Total number of connections terminated by a read error",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scribe_queue_depth",
			Help: "Number of events buffered between handlers and the writer",
		}),
		WriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_write_failures_total",
			Help: "Total number of failed appends to the session log file",
		}),
		SinkErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_sink_errors_total",
			Help: "Total number of mirror sink append failures by sink",
		}, []string{"sink"}),
	}
}

func (m *Metrics) IncConnectionsAccepted() {
	if m != nil {
		m.ConnectionsAccepted.Inc()
	}
}

func (m *Metrics) HandlerStarted() {
	if m != nil {
		m.ActiveHandlers.Inc()
	}
}

func (m *Metrics) HandlerFinished() {
	if m != nil {
		m.ActiveHandlers.Dec()
	}
}

func (m *Metrics) IncEventsReceived() {
	if m != nil {
		m.EventsReceived.Inc()
	}
}

func (m *Metrics) IncEventsWritten() {
	if m != nil {
		m.EventsWritten.Inc()
	}
}

func (m *Metrics) IncMalformedDropped() {
	if m != nil {
		m.MalformedDropped.Inc()
	}
}

func (m *Metrics) IncConnectionErrors() {
	if m != nil {
		m.ConnectionErrors.Inc()
	}
}

func (m *Metrics) SetQueueDepth(n int) {
	if m != nil {
		m.QueueDepth.Set(float64(n))
	}
}

func (m *Metrics) IncWriteFailures() {
	if m != nil {
		m.WriteFailures.Inc()
	}
}

func (m *Metrics) IncSinkErrors(sink string) {
	if m != nil {
		m.SinkErrors.WithLabelValues(sink).Inc()
	}
}

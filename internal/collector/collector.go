// Package collector implements the audit-event collector: a local service
// that accepts newline-delimited JSON events from concurrent clients over a
// unix socket and appends them, per-connection order preserved, to a
// per-session JSONL log file.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"scribe/internal/platform/logger"
)

// Collector owns the full pipeline: listener lifecycle, accept loop,
// per-connection handlers, the event queue, and the single log writer.
type Collector struct {
	socketPath string
	session    Session

	fs     FileSystem
	socket SocketProvider
	sink   Sink

	queue    *Queue
	handlers sync.WaitGroup

	logger  *slog.Logger
	metrics *Metrics
	stats   counters
}

// Option configures the Collector.
type Option func(*Collector)

// WithLogger sets the operator-facing logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Collector) { c.logger = log }
}

// WithMetrics sets the prometheus metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(c *Collector) { c.metrics = m }
}

// WithSink attaches a mirror sink that receives every durably written event.
func WithSink(s Sink) Option {
	return func(c *Collector) { c.sink = s }
}

// New creates a collector bound to the given session. The file-system and
// socket capabilities are injected so tests can substitute in-memory doubles.
func New(socketPath string, session Session, fs FileSystem, socket SocketProvider, opts ...Option) *Collector {
	c := &Collector{
		socketPath: socketPath,
		session:    session,
		fs:         fs,
		socket:     socket,
		queue:      NewQueue(),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session identity this collector writes under.
func (c *Collector) Session() Session {
	return c.session
}

// Run serves until ctx is canceled or the writer fails. The bound socket
// artifact is removed on every exit path. A bind or log-open failure is fatal
// and surfaces as the returned error; per-connection failures never do.
func (c *Collector) Run(ctx context.Context) error {
	ln, err := c.bind()
	if err != nil {
		return err
	}
	defer ln.Close()

	g, ctx := errgroup.WithContext(ctx)

	// Cancellation unblocks the pending accept by releasing the listener.
	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		c.acceptLoop(ctx, ln)
		// Queue completion waits for every in-flight handler, so the writer's
		// drain sees all events that made it out of a read.
		c.handlers.Wait()
		c.queue.Close()
		return nil
	})

	g.Go(func() error {
		if err := c.runWriter(); err != nil {
			c.logger.Error("log writer failed", "error", err, "path", c.session.LogFilePath)
			return err
		}
		return nil
	})

	return g.Wait()
}

// bind prepares the endpoint: parent directory created, any stale artifact
// from an unclean prior shutdown removed, then the socket bound. Failure here
// is fatal to the whole service.
func (c *Collector) bind() (Listener, error) {
	if err := c.fs.CreateDir(filepath.Dir(c.socketPath), 0o755); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	exists, err := c.fs.FileExists(c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("check socket path: %w", err)
	}
	if exists {
		if err := c.fs.Remove(c.socketPath); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}
	ln, err := c.socket.Bind(c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", c.socketPath, err)
	}
	c.logger.Info("listening", "socket", c.socketPath, "session", c.session.ID, "log", c.session.LogFilePath)
	return ln, nil
}

// counters backs the cheap /stats snapshot, separate from prometheus.
type counters struct {
	connectionsAccepted atomic.Uint64
	activeHandlers      atomic.Int64
	eventsReceived      atomic.Uint64
	eventsWritten       atomic.Uint64
	malformedDropped    atomic.Uint64
}

// Stats is a point-in-time snapshot of collector activity.
type Stats struct {
	SessionID           string `json:"session_id"`
	LogFilePath         string `json:"log_file_path"`
	ConnectionsAccepted uint64 `json:"connections_accepted"`
	ActiveHandlers      int64  `json:"active_handlers"`
	EventsReceived      uint64 `json:"events_received"`
	EventsWritten       uint64 `json:"events_written"`
	MalformedDropped    uint64 `json:"malformed_dropped"`
	QueueDepth          int    `json:"queue_depth"`
}

// Stats returns a snapshot for the admin surface.
func (c *Collector) Stats() Stats {
	return Stats{
		SessionID:           c.session.ID,
		LogFilePath:         c.session.LogFilePath,
		ConnectionsAccepted: c.stats.connectionsAccepted.Load(),
		ActiveHandlers:      c.stats.activeHandlers.Load(),
		EventsReceived:      c.stats.eventsReceived.Load(),
		EventsWritten:       c.stats.eventsWritten.Load(),
		MalformedDropped:    c.stats.malformedDropped.Load(),
		QueueDepth:          c.queue.Len(),
	}
}

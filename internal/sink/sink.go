// Package sink provides optional mirror destinations for audit events. The
// session log file is always the source of truth; sinks receive best-effort
// copies and their failures are observable but never fatal.
package sink

import (
	"errors"
	"log/slog"

	"scribe/internal/collector"
)

// Named is a mirror sink with a stable name for logs and metrics.
type Named interface {
	collector.Sink
	Name() string
}

// Fanout delivers each event to every configured sink. Append never returns
// an error; individual failures are logged and counted per sink.
type Fanout struct {
	sinks   []Named
	logger  *slog.Logger
	metrics *collector.Metrics
}

func NewFanout(logger *slog.Logger, metrics *collector.Metrics, sinks ...Named) *Fanout {
	return &Fanout{sinks: sinks, logger: logger, metrics: metrics}
}

// Len reports how many sinks are configured.
func (f *Fanout) Len() int {
	return len(f.sinks)
}

func (f *Fanout) Append(evt collector.Event) error {
	for _, s := range f.sinks {
		if err := s.Append(evt); err != nil {
			f.logger.Warn("sink append failed", "sink", s.Name(), "error", err)
			f.metrics.IncSinkErrors(s.Name())
		}
	}
	return nil
}

func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

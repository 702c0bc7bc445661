package collector

import (
	"fmt"
	"path/filepath"
)

// runWriter opens the session log file once and then drains the queue,
// appending one JSON line per event. It is the exclusive owner of the file
// handle. The writer only returns early on a file I/O failure; on shutdown it
// keeps draining until the queue reports completion, so events that reached
// the queue are not lost.
func (c *Collector) runWriter() error {
	if err := c.fs.CreateDir(filepath.Dir(c.session.LogFilePath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	file, err := c.fs.OpenAppend(c.session.LogFilePath)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	for {
		evt, ok := c.queue.Dequeue()
		if !ok {
			return nil
		}
		c.metrics.SetQueueDepth(c.queue.Len())

		// Encoding cannot fail for an event that parsed; treat a failure as
		// the writer-fatal condition it would be.
		line, err := evt.Encode()
		if err != nil {
			c.metrics.IncWriteFailures()
			return err
		}
		if _, err := file.Write(line); err != nil {
			c.metrics.IncWriteFailures()
			return fmt.Errorf("append event: %w", err)
		}
		c.metrics.IncEventsWritten()
		c.stats.eventsWritten.Add(1)

		if c.sink != nil {
			if err := c.sink.Append(evt); err != nil {
				// Mirrors are best-effort; the file write already succeeded.
				c.logger.Warn("mirror sink append failed", "error", err)
			}
		}
	}
}

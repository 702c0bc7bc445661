package collector

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// maxLineBytes bounds a single wire line. Anything longer is treated as a
// connection-level error, not a malformed line.
const maxLineBytes = 1 << 20

// handleConn reads one client stream line by line until end-of-stream,
// cancellation, or an unrecoverable read error. Failures here terminate only
// this connection; the acceptor and other handlers are unaffected.
func (c *Collector) handleConn(ctx context.Context, conn io.ReadCloser) {
	defer conn.Close()

	// Cancellation must interrupt a blocking read; closing the connection is
	// the only way to unblock it.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		evt, err := ParseEvent(line)
		if err != nil {
			// Malformed lines are dropped silently; the connection survives.
			c.logger.Debug("dropping malformed line", "error", err)
			c.metrics.IncMalformedDropped()
			c.stats.malformedDropped.Add(1)
			continue
		}
		c.queue.Enqueue(evt)
		c.metrics.IncEventsReceived()
		c.stats.eventsReceived.Add(1)
		c.metrics.SetQueueDepth(c.queue.Len())
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		c.logger.Error("connection read failed", "error", err)
		c.metrics.IncConnectionErrors()
	}
}

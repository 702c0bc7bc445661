package collector

import (
	"context"
	"errors"
	"time"

	"scribe/pkg/platform/sentinel"
)

// acceptRetryDelay keeps a transient accept failure from spinning hot.
const acceptRetryDelay = 50 * time.Millisecond

// acceptLoop accepts client connections and spawns one handler per
// connection. Handlers are fire-and-forget with respect to the loop; there is
// no bound on how many run concurrently. Transient accept failures are logged
// and the loop continues; only cancellation or a released listener ends it,
// and neither is an error.
func (c *Collector) acceptLoop(ctx context.Context, ln Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, sentinel.ErrClosed) {
				return
			}
			c.logger.Error("accept failed", "error", err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		c.metrics.IncConnectionsAccepted()
		c.stats.connectionsAccepted.Add(1)
		c.handlers.Add(1)
		c.metrics.HandlerStarted()
		c.stats.activeHandlers.Add(1)
		go func() {
			defer func() {
				c.metrics.HandlerFinished()
				c.stats.activeHandlers.Add(-1)
				c.handlers.Done()
			}()
			c.handleConn(ctx, conn)
		}()
	}
}

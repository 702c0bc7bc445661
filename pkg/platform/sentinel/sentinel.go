package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Capability implementations and the
// queue return these (optionally wrapped) so callers can distinguish orderly
// teardown from genuine failures.
//
// These represent factual states about resources, not validation failures:
// - ErrClosed: the resource (listener, queue, sink) has been released
// - ErrUnavailable: a configured backing service cannot be reached
var (
	ErrClosed      = errors.New("closed")
	ErrUnavailable = errors.New("unavailable")
)

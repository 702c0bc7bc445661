package collector

import (
	"io"
	"os"
)

// Capability interfaces consumed by the collector. The platform adapters under
// internal/platform provide the os/net-backed implementations; tests substitute
// in-memory fakes without touching the core logic.

// FileSystem is the file-system capability: directory creation, existence
// checks, deletion, and append-mode opening.
type FileSystem interface {
	CreateDir(path string, perm os.FileMode) error
	FileExists(path string) (bool, error)
	Remove(path string) error
	OpenAppend(path string) (io.WriteCloser, error)
}

// Listener is one bound local endpoint. Close is idempotent, unblocks any
// pending Accept, and removes the bound artifact.
type Listener interface {
	// Accept blocks until a client connects. After Close it returns
	// sentinel.ErrClosed.
	Accept() (io.ReadCloser, error)
	Close() error
}

// SocketProvider is the transport capability: bind a listening endpoint at a
// file-system path. Parent directories and stale-artifact removal are the
// caller's concern (see Collector.bind).
type SocketProvider interface {
	Bind(path string) (Listener, error)
}

// Sink receives a copy of every durably written event. Mirror sinks are
// fire-and-forget from the writer's point of view; the session log file stays
// the source of truth.
type Sink interface {
	Append(evt Event) error
	Close() error
}

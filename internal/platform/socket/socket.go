// Package socket provides the unix-domain-socket implementation of the
// collector's transport capability.
package socket

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"scribe/internal/collector"
	"scribe/pkg/platform/sentinel"
)

// Provider binds unix stream sockets.
type Provider struct{}

func NewProvider() Provider {
	return Provider{}
}

// Bind listens on a unix socket at path. The socket file is restricted to the
// owning user; that permission bit is the trust boundary for clients.
func (Provider) Bind(path string) (collector.Listener, error) {
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen unix: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	return &listener{ln: ln, path: path}, nil
}

// listener wraps a net.Listener with idempotent release and sentinel error
// mapping so the collector never sees net internals.
type listener struct {
	ln        net.Listener
	path      string
	closeOnce sync.Once
	closeErr  error
}

func (l *listener) Accept() (io.ReadCloser, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, sentinel.ErrClosed
		}
		return nil, err
	}
	return conn, nil
}

// Close releases the endpoint and removes the socket file. Safe to call more
// than once; the artifact removal runs exactly once.
func (l *listener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.ln.Close()
		// The net package unlinks unix sockets on close; this covers
		// implementations and platforms where it does not.
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) && l.closeErr == nil {
			l.closeErr = err
		}
	})
	return l.closeErr
}

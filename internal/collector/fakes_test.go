package collector_test

import (
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"

	"scribe/internal/collector"
	"scribe/pkg/platform/sentinel"
)

// In-memory implementations of the collector's capability interfaces, per the
// injection seam the core is built around.

type memFS struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string]*bytes.Buffer

	// writeErr, when set, fails every file write with this error.
	writeErr error
	// openErr, when set, fails OpenAppend.
	openErr error
}

func newMemFS() *memFS {
	return &memFS{
		dirs:  make(map[string]bool),
		files: make(map[string]*bytes.Buffer),
	}
}

func (f *memFS) CreateDir(path string, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs[path] = true
	return nil
}

func (f *memFS) FileExists(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok, nil
}

func (f *memFS) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(f.files, path)
	return nil
}

func (f *memFS) OpenAppend(path string) (io.WriteCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}
	buf, ok := f.files[path]
	if !ok {
		buf = &bytes.Buffer{}
		f.files[path] = buf
	}
	return &memFile{fs: f, buf: buf}, nil
}

// touch plants a file, for stale-artifact scenarios.
func (f *memFS) touch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = &bytes.Buffer{}
}

func (f *memFS) contents(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf, ok := f.files[path]
	if !ok {
		return ""
	}
	return buf.String()
}

type memFile struct {
	fs  *memFS
	buf *bytes.Buffer
}

func (m *memFile) Write(p []byte) (int, error) {
	m.fs.mu.Lock()
	defer m.fs.mu.Unlock()
	if m.fs.writeErr != nil {
		return 0, m.fs.writeErr
	}
	return m.buf.Write(p)
}

func (m *memFile) Close() error { return nil }

type fakeProvider struct {
	fs      *memFS
	bindErr error

	mu sync.Mutex
	ln *fakeListener
}

func newFakeProvider(fs *memFS) *fakeProvider {
	return &fakeProvider{fs: fs}
}

func (p *fakeProvider) Bind(path string) (collector.Listener, error) {
	if p.bindErr != nil {
		return nil, p.bindErr
	}
	ln := &fakeListener{
		fs:    p.fs,
		path:  path,
		conns: make(chan io.ReadCloser),
		done:  make(chan struct{}),
	}
	p.fs.touch(path)
	p.mu.Lock()
	p.ln = ln
	p.mu.Unlock()
	return ln, nil
}

// dial hands the collector one end of a pipe and returns the client end.
// It blocks until the acceptor picks the connection up.
func (p *fakeProvider) dial() (net.Conn, error) {
	p.mu.Lock()
	ln := p.ln
	p.mu.Unlock()
	if ln == nil {
		return nil, errors.New("not bound")
	}
	client, server := net.Pipe()
	select {
	case ln.conns <- server:
		return client, nil
	case <-ln.done:
		client.Close()
		server.Close()
		return nil, sentinel.ErrClosed
	}
}

type fakeListener struct {
	fs    *memFS
	path  string
	conns chan io.ReadCloser
	done  chan struct{}
	once  sync.Once
}

func (l *fakeListener) Accept() (io.ReadCloser, error) {
	select {
	case conn := <-l.conns:
		return conn, nil
	case <-l.done:
		return nil, sentinel.ErrClosed
	}
}

func (l *fakeListener) Close() error {
	l.once.Do(func() {
		close(l.done)
		_ = l.fs.Remove(l.path)
	})
	return nil
}

// captureSink records every event it is offered.
type captureSink struct {
	mu     sync.Mutex
	events []collector.Event
}

func (s *captureSink) Append(evt collector.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

func (s *captureSink) Close() error { return nil }

func (s *captureSink) snapshot() []collector.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]collector.Event{}, s.events...)
}

// socketPath keeps fake paths short and recognizable.
func socketPath() string {
	return filepath.Join("/run", "scribe", "scribe.sock")
}

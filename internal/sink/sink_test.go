package sink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/collector"
	"scribe/internal/platform/logger"
)

type stubSink struct {
	name      string
	appendErr error
	closeErr  error
	events    []collector.Event
	closed    bool
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Append(evt collector.Event) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.events = append(s.events, evt)
	return nil
}

func (s *stubSink) Close() error {
	s.closed = true
	return s.closeErr
}

func TestFanout_DeliversToAllSinks(t *testing.T) {
	a := &stubSink{name: "a"}
	b := &stubSink{name: "b"}
	f := NewFanout(logger.Nop(), nil, a, b)

	evt := collector.Event{Timestamp: "t1", Source: "s", EventType: "x"}
	require.NoError(t, f.Append(evt))

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, evt, a.events[0])
}

func TestFanout_OneFailingSinkDoesNotStopOthers(t *testing.T) {
	failing := &stubSink{name: "failing", appendErr: errors.New("down")}
	healthy := &stubSink{name: "healthy"}
	f := NewFanout(logger.Nop(), nil, failing, healthy)

	err := f.Append(collector.Event{Timestamp: "t1", Source: "s", EventType: "x"})
	assert.NoError(t, err, "mirror failures must not surface to the writer")
	assert.Len(t, healthy.events, 1)
}

func TestFanout_CloseClosesEverySink(t *testing.T) {
	a := &stubSink{name: "a", closeErr: errors.New("close a")}
	b := &stubSink{name: "b"}
	f := NewFanout(logger.Nop(), nil, a, b)

	err := f.Close()
	require.Error(t, err)
	assert.True(t, a.closed)
	assert.True(t, b.closed, "a failing close must not skip later sinks")
}

func TestFanout_Len(t *testing.T) {
	assert.Equal(t, 0, NewFanout(logger.Nop(), nil).Len())
	assert.Equal(t, 2, NewFanout(logger.Nop(), nil, &stubSink{name: "a"}, &stubSink{name: "b"}).Len())
}

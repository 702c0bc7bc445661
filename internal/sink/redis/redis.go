// Package redis mirrors audit events onto a Redis stream so operators can
// tail a live session with XREAD without touching the log file.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scribe/internal/collector"
)

const appendTimeout = 5 * time.Second

// Sink appends events to a Redis stream.
type Sink struct {
	client *redis.Client
	stream string
}

// New creates a Redis sink from a redis:// URL and verifies connectivity.
func New(url, stream string) (*Sink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Sink{client: client, stream: stream}, nil
}

func (s *Sink) Name() string { return "redis" }

// Append adds the event to the stream as a single JSON payload. The sink uses
// its own short timeout so a slow Redis cannot stall the writer's drain.
func (s *Sink) Append(evt collector.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"source":     evt.Source,
			"event_type": evt.EventType,
			"event":      data,
		},
	}).Err()
}

func (s *Sink) Close() error {
	return s.client.Close()
}

// Package kafka mirrors audit events onto a Kafka topic, keyed by source so
// per-source ordering survives partitioning.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"scribe/internal/collector"
)

const produceTimeout = 5 * time.Second

// Sink produces events to a Kafka topic.
type Sink struct {
	client *kgo.Client
}

// New creates a Kafka sink producing to topic via the given seed brokers.
func New(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Sink{client: client}, nil
}

func (s *Sink) Name() string { return "kafka" }

// Append produces the event synchronously under the sink's own timeout so a
// slow broker cannot stall the writer's drain.
func (s *Sink) Append(evt collector.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	defer cancel()
	record := &kgo.Record{
		Key:   []byte(evt.Source),
		Value: data,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	s.client.Close()
	return nil
}

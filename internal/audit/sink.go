package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Sink persists audit events. It is append-only; sinks must tolerate
// concurrent appends from a single worker goroutine plus Close.
type Sink interface {
	Append(ctx context.Context, e Event) error
}

// LogSink writes events to the structured log. It is the fallback when no
// broker is configured.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink returns a sink logging every event at warn level.
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Append(ctx context.Context, e Event) error {
	s.log.WarnContext(ctx, "authorization denied",
		"kind", e.Kind,
		"method", e.Method,
		"path", e.Path,
		"client_ip", e.ClientIP,
		"user_id", e.UserID,
		"subscription_id", e.SubscriptionID,
		"request_id", e.RequestID,
		"detail", e.Detail,
	)
	return nil
}

// KafkaSink publishes events as JSON records, keyed by subscription so one
// caller's denials land in one partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the brokers and ensures the topic exists.
func NewKafkaSink(ctx context.Context, brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure audit topic %s: %w", topic, err)
	}

	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(e.SubscriptionID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (s *KafkaSink) Close() {
	s.client.Close()
}

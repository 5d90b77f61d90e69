package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes JSON-encoded messages to a single topic.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, opts ...ProducerOption) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	cfg := &ProducerConfig{
		BatchSize:    100,
		BatchTimeout: 100 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		Async:        false,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: cfg.RequiredAcks,
		Compression:  cfg.Compression,
		Async:        cfg.Async,
	}

	return &Producer{writer: writer, topic: topic}, nil
}

// Publish marshals value and writes it keyed by key.
func (p *Producer) Publish(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// PublishBatch marshals and writes a batch of messages sharing one key.
func (p *Producer) PublishBatch(ctx context.Context, key string, values []any) error {
	if len(values) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(values))
	now := time.Now()
	for _, v := range values {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload, Time: now})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

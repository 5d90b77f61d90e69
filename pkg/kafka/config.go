package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerConfig holds writer tuning knobs.
type ProducerConfig struct {
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks kafka.RequiredAcks
	Compression  kafka.Compression
	Async        bool
}

// ProducerOption configures a Producer.
type ProducerOption func(*ProducerConfig)

func WithBatch(size int, timeout time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		c.BatchSize = size
		c.BatchTimeout = timeout
	}
}

func WithWriteTimeout(d time.Duration) ProducerOption {
	return func(c *ProducerConfig) { c.WriteTimeout = d }
}

func WithRequiredAcks(acks kafka.RequiredAcks) ProducerOption {
	return func(c *ProducerConfig) { c.RequiredAcks = acks }
}

func WithCompression(codec kafka.Compression) ProducerOption {
	return func(c *ProducerConfig) { c.Compression = codec }
}

func WithAsync() ProducerOption {
	return func(c *ProducerConfig) { c.Async = true }
}

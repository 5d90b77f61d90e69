// Package queue is a Redis-backed job queue with retries and a dead letter
// list. Producers enqueue typed JSON messages; consumer workers dispatch them
// to registered jobs.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Job handles one message type pulled from the queue.
type Job interface {
	Name() string
	Type() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// Config tunes the consumer side.
type Config struct {
	Workers    int
	RetryLimit int
	RetryDelay time.Duration
}

// Message is the wire form of a queued item.
type Message struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	Timestamp time.Time       `json:"timestamp"`
}

// ParsePayload decodes a raw payload into T.
func ParsePayload[T any](payload json.RawMessage) (*T, error) {
	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &result, nil
}

package repository

import (
	"context"
	"time"

	"QuantCore/internal/domain/models"
)

// RowPublisher streams labeled training rows to a message backend.
type RowPublisher interface {
	Publish(ctx context.Context, row *models.TrainingRow) error
	PublishBatch(ctx context.Context, rows []*models.TrainingRow) error
	Close() error
}

// RowStore persists labeled training rows for batch training jobs.
type RowStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreBatch(ctx context.Context, rows []*models.TrainingRow) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TrainingRow, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records engine observability counters and timings.
type Metrics interface {
	RecordCompute(mode, symbol string)
	RecordError(kind string)
	RecordCacheLookup(hit bool)
	RecordRowsBuilt(symbol string, n int)
	RecordLatency(op string, seconds float64)
}

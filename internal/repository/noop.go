package repository

import (
	"context"
	"time"

	"QuantCore/internal/domain/models"
)

// NoopRowStore satisfies RowStore when ClickHouse is disabled.
type NoopRowStore struct{}

func (NoopRowStore) Init(context.Context) error                              { return nil }
func (NoopRowStore) StoreBatch(context.Context, []*models.TrainingRow) error { return nil }
func (NoopRowStore) Query(context.Context, string, time.Time, time.Time, int) ([]*models.TrainingRow, error) {
	return nil, nil
}
func (NoopRowStore) Health(context.Context) error { return nil }
func (NoopRowStore) Close() error                 { return nil }

// NoopRowPublisher satisfies RowPublisher when Kafka is disabled.
type NoopRowPublisher struct{}

func (NoopRowPublisher) Publish(context.Context, *models.TrainingRow) error        { return nil }
func (NoopRowPublisher) PublishBatch(context.Context, []*models.TrainingRow) error { return nil }
func (NoopRowPublisher) Close() error                                              { return nil }

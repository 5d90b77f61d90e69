package repository

import (
	"context"
	"fmt"

	"QuantCore/internal/domain/models"
	pkgkafka "QuantCore/pkg/kafka"
	applogger "QuantCore/pkg/logger"
)

// KafkaRowPublisher streams training rows to a Kafka topic, keyed by
// symbol so rows for one symbol stay ordered within a partition.
type KafkaRowPublisher struct {
	producer *pkgkafka.Producer
	logger   *applogger.Logger
}

func NewKafkaRowPublisher(producer *pkgkafka.Producer, logger *applogger.Logger) *KafkaRowPublisher {
	return &KafkaRowPublisher{producer: producer, logger: logger}
}

func (p *KafkaRowPublisher) Publish(ctx context.Context, row *models.TrainingRow) error {
	if row == nil {
		return nil
	}
	if err := p.producer.Publish(ctx, row.Symbol, row); err != nil {
		return fmt.Errorf("publish row: %w", err)
	}
	return nil
}

func (p *KafkaRowPublisher) PublishBatch(ctx context.Context, rows []*models.TrainingRow) error {
	if len(rows) == 0 {
		return nil
	}
	// Group by symbol so each batch keeps its partition key.
	bySymbol := make(map[string][]any)
	for _, r := range rows {
		if r == nil {
			continue
		}
		bySymbol[r.Symbol] = append(bySymbol[r.Symbol], r)
	}
	for symbol, batch := range bySymbol {
		if err := p.producer.PublishBatch(ctx, symbol, batch); err != nil {
			p.logger.Error("publish row batch failed",
				applogger.String("symbol", symbol),
				applogger.Int("rows", len(batch)),
				applogger.Error(err),
			)
			return fmt.Errorf("publish batch for %s: %w", symbol, err)
		}
	}
	return nil
}

func (p *KafkaRowPublisher) Close() error {
	return p.producer.Close()
}

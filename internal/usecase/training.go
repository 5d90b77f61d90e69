package usecase

import (
	"context"
	"errors"
	"time"

	"QuantCore/internal/domain/models"
	domrepo "QuantCore/internal/domain/repository"
	"QuantCore/internal/services/align"
	applogger "QuantCore/pkg/logger"
)

// TrainingBuilder walks historical dates across a series, computes features at
// each, and labels every row from the verification block. Rows where history
// is still too short are skipped, not errored.
type TrainingBuilder struct {
	svc     *FeatureService
	store   domrepo.RowStore
	pub     domrepo.RowPublisher
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewTrainingBuilder(svc *FeatureService, store domrepo.RowStore, pub domrepo.RowPublisher, metrics domrepo.Metrics, logger *applogger.Logger) *TrainingBuilder {
	return &TrainingBuilder{svc: svc, store: store, pub: pub, metrics: metrics, logger: logger}
}

// BuildRows produces one labeled row per bar whose date falls inside
// [from, to]. neutralBandPct widens the neutral band: |changePct| at or below
// it labels neutral, above it up or down by sign. When persist is set the
// rows also flow through the configured store and publisher.
func (b *TrainingBuilder) BuildRows(ctx context.Context, symbol string, series models.PriceSeries, from, to time.Time, neutralBandPct float64, persist bool) ([]*models.TrainingRow, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	rows := make([]*models.TrainingRow, 0, len(series))
	for _, bar := range series {
		if bar.Date.Before(from) || bar.Date.After(to) {
			continue
		}
		fv, err := b.svc.ComputeHistorical(symbol, series, bar.Date)
		if err != nil {
			var insufficient *align.InsufficientHistoryError
			if errors.As(err, &insufficient) {
				continue
			}
			return nil, err
		}
		if fv.Actual == nil {
			// Future projection for the newest bar; nothing to label.
			continue
		}
		rows = append(rows, &models.TrainingRow{
			Symbol:     symbol,
			BasisDate:  fv.BasisDate,
			TargetDate: fv.TargetDate,
			Label:      Label(fv.Actual.ChangePct, neutralBandPct),
			ChangePct:  fv.Actual.ChangePct,
			Features:   fv.Features,
		})
	}

	if b.metrics != nil {
		b.metrics.RecordRowsBuilt(symbol, len(rows))
	}
	if b.logger != nil {
		b.logger.Info("training rows built",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(rows)),
		)
	}

	if persist && len(rows) > 0 {
		if err := b.persist(ctx, rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (b *TrainingBuilder) persist(ctx context.Context, rows []*models.TrainingRow) error {
	if b.store != nil {
		if err := b.store.StoreBatch(ctx, rows); err != nil {
			if b.metrics != nil {
				b.metrics.RecordError("store")
			}
			return err
		}
	}
	if b.pub != nil {
		if err := b.pub.PublishBatch(ctx, rows); err != nil {
			if b.metrics != nil {
				b.metrics.RecordError("publish")
			}
			return err
		}
	}
	return nil
}

// Label maps a realized percent change to its outcome class.
func Label(changePct, neutralBandPct float64) string {
	switch {
	case changePct > neutralBandPct:
		return models.LabelUp
	case changePct < -neutralBandPct:
		return models.LabelDown
	default:
		return models.LabelNeutral
	}
}

package usecase

import (
	"fmt"
	"time"

	"QuantCore/internal/domain/models"
	domrepo "QuantCore/internal/domain/repository"
	icache "QuantCore/internal/service/cache"
	"QuantCore/internal/services/align"
	"QuantCore/internal/services/features"
	"QuantCore/internal/services/indicators"
	applogger "QuantCore/pkg/logger"
)

// FeatureService exposes the three feature entry points. The computation
// itself is pure; the service adds the per-symbol snapshot cache, metrics,
// and logging around it. Safe for concurrent use.
type FeatureService struct {
	params  indicators.Params
	snaps   *icache.SnapshotCache
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewFeatureService(params indicators.Params, snaps *icache.SnapshotCache, metrics domrepo.Metrics, logger *applogger.Logger) *FeatureService {
	return &FeatureService{params: params, snaps: snaps, metrics: metrics, logger: logger}
}

// ComputeHistorical builds the feature vector as of the trading day strictly
// before targetDate's bar. A date beyond the last bar degrades to a future
// projection automatically, matching the resolver's mode selection.
func (s *FeatureService) ComputeHistorical(symbol string, series models.PriceSeries, targetDate time.Time) (*models.FeatureVector, error) {
	anchors, err := align.Resolve(series, targetDate)
	if err != nil {
		s.recordError("resolve")
		return nil, err
	}
	return s.assemble(symbol, series, anchors)
}

// ComputeFutureProjection builds the feature vector for a next-day prediction
// from the last finalized bar.
func (s *FeatureService) ComputeFutureProjection(symbol string, series models.PriceSeries) (*models.FeatureVector, error) {
	anchors, err := align.ResolveFuture(series)
	if err != nil {
		s.recordError("resolve")
		return nil, err
	}
	return s.assemble(symbol, series, anchors)
}

// ComputeIntraday builds the feature vector from today's partial bar, with
// deltas against yesterday's finalized values.
func (s *FeatureService) ComputeIntraday(symbol string, series models.PriceSeries) (*models.FeatureVector, error) {
	anchors, err := align.ResolveIntraday(series)
	if err != nil {
		s.recordError("resolve")
		return nil, err
	}
	return s.assemble(symbol, series, anchors)
}

func (s *FeatureService) assemble(symbol string, series models.PriceSeries, anchors models.AnchorSet) (*models.FeatureVector, error) {
	if err := series.Validate(); err != nil {
		s.recordError("validate")
		return nil, fmt.Errorf("invalid price series: %w", err)
	}

	start := time.Now()
	set := s.indicatorSet(symbol, series)
	fv := features.Assemble(series, set, s.params, anchors)
	fv.Symbol = symbol

	if s.metrics != nil {
		s.metrics.RecordCompute(string(anchors.Mode), symbol)
		s.metrics.RecordLatency("assemble", time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.Debug("feature vector assembled",
			applogger.String("symbol", symbol),
			applogger.String("mode", string(anchors.Mode)),
			applogger.String("basis", fv.BasisDate),
			applogger.Int("fields", len(fv.Features)),
		)
	}
	return fv, nil
}

// indicatorSet returns the cached per-symbol set when the series identity
// still matches, otherwise recomputes and repopulates.
func (s *FeatureService) indicatorSet(symbol string, series models.PriceSeries) *models.IndicatorSet {
	if s.snaps == nil || symbol == "" {
		return indicators.ComputeSet(series, s.params)
	}
	version := icache.Version(series)
	if set, ok := s.snaps.Get(symbol, version); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(true)
		}
		return set
	}
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(false)
	}
	set := indicators.ComputeSet(series, s.params)
	s.snaps.Put(symbol, version, set)
	return set
}

func (s *FeatureService) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
}

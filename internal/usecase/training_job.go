package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"QuantCore/internal/domain/models"
	applogger "QuantCore/pkg/logger"
	"QuantCore/pkg/queue"
	"QuantCore/pkg/util"
)

// TrainingJobType is the queue message type for background row builds.
const TrainingJobType = "training.build_rows"

// TrainingJobPayload carries everything a background build needs. Bars travel
// in the payload because the engine never fetches market data itself.
type TrainingJobPayload struct {
	Symbol         string             `json:"symbol"`
	Bars           models.PriceSeries `json:"bars"`
	FromDate       string             `json:"fromDate"`
	ToDate         string             `json:"toDate"`
	NeutralBandPct float64            `json:"neutralBandPct"`
}

// TrainingJob builds and persists labeled rows off the request path. Large
// date ranges run here so the HTTP handler can return immediately.
type TrainingJob struct {
	builder *TrainingBuilder
	logger  *applogger.Logger
}

func NewTrainingJob(builder *TrainingBuilder, logger *applogger.Logger) *TrainingJob {
	return &TrainingJob{builder: builder, logger: logger}
}

func (j *TrainingJob) Name() string { return "training-row-builder" }
func (j *TrainingJob) Type() string { return TrainingJobType }

func (j *TrainingJob) Handle(ctx context.Context, payload json.RawMessage) error {
	p, err := queue.ParsePayload[TrainingJobPayload](payload)
	if err != nil {
		return err
	}
	from, ok := util.ParseDate(p.FromDate)
	if !ok {
		return fmt.Errorf("invalid fromDate %q", p.FromDate)
	}
	to, ok := util.ParseDate(p.ToDate)
	if !ok {
		return fmt.Errorf("invalid toDate %q", p.ToDate)
	}

	rows, err := j.builder.BuildRows(ctx, p.Symbol, p.Bars, from, to, p.NeutralBandPct, true)
	if err != nil {
		return err
	}
	j.logger.Info("background training build done",
		applogger.String("symbol", p.Symbol),
		applogger.Int("rows", len(rows)),
	)
	return nil
}

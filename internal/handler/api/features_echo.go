package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"QuantCore/internal/domain/models"
	icache "QuantCore/internal/service/cache"
	"QuantCore/internal/services/align"
	"QuantCore/internal/services/screener"
	"QuantCore/internal/usecase"
	pkgcache "QuantCore/pkg/cache"
	xhttp "QuantCore/pkg/http"
	applogger "QuantCore/pkg/logger"
	"QuantCore/pkg/util"

	"github.com/labstack/echo/v4"
)

const vectorCacheTTL = 5 * time.Minute

// Enqueuer pushes background jobs; nil when no queue backend is configured.
type Enqueuer interface {
	Enqueue(ctx context.Context, msgType string, payload any) error
}

// FeaturesHandler exposes the feature engine over HTTP. Bars always arrive in
// the request body; the handler never fetches market data itself.
type FeaturesHandler struct {
	logger  *applogger.Logger
	svc     *usecase.FeatureService
	builder *usecase.TrainingBuilder
	vectors pkgcache.Service
	jobs    Enqueuer
}

func NewFeaturesHandler(logger *applogger.Logger, svc *usecase.FeatureService, builder *usecase.TrainingBuilder, vectors pkgcache.Service, jobs Enqueuer) *FeaturesHandler {
	return &FeaturesHandler{logger: logger, svc: svc, builder: builder, vectors: vectors, jobs: jobs}
}

func (h *FeaturesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/features/historical", h.Historical)
	g.POST("/features/future", h.Future)
	g.POST("/features/intraday", h.Intraday)
	g.POST("/screen", h.Screen)
	g.POST("/training/rows", h.TrainingRows)
	g.POST("/training/jobs", h.TrainingJob)
	g.GET("/health", h.Health)
}

func (h *FeaturesHandler) Historical(c echo.Context) error {
	req := &models.HistoricalFeaturesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	target, ok := util.ParseDate(req.TargetDate)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid targetDate %q", req.TargetDate))
	}

	// Historical vectors are deterministic per (symbol, date, series), so a
	// short cache absorbs repeated lookups for the same day. The series
	// identity keys the entry; an amended last bar must miss.
	key := fmt.Sprintf("fv:%s:%s:%s", req.Symbol, req.TargetDate, icache.Version(req.Bars))
	if h.vectors != nil {
		var cached models.FeatureVector
		if err := h.vectors.Get(c.Request().Context(), key, &cached); err == nil {
			return xhttp.SuccessResponse(c, &cached)
		}
	}

	fv, err := h.svc.ComputeHistorical(req.Symbol, req.Bars, target)
	if err != nil {
		return h.computeError(c, "historical", err)
	}
	if h.vectors != nil {
		if err := h.vectors.Set(c.Request().Context(), key, fv, vectorCacheTTL); err != nil {
			h.logger.Warn("vector cache set failed", applogger.Error(err))
		}
	}
	return xhttp.SuccessResponse(c, fv)
}

func (h *FeaturesHandler) Future(c echo.Context) error {
	req := &models.FutureFeaturesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fv, err := h.svc.ComputeFutureProjection(req.Symbol, req.Bars)
	if err != nil {
		return h.computeError(c, "future", err)
	}
	return xhttp.SuccessResponse(c, fv)
}

func (h *FeaturesHandler) Intraday(c echo.Context) error {
	req := &models.IntradayFeaturesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fv, err := h.svc.ComputeIntraday(req.Symbol, req.Bars)
	if err != nil {
		return h.computeError(c, "intraday", err)
	}
	return xhttp.SuccessResponse(c, fv)
}

func (h *FeaturesHandler) Screen(c echo.Context) error {
	req := &models.ScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fv, err := h.svc.ComputeFutureProjection(req.Symbol, req.Bars)
	if err != nil {
		return h.computeError(c, "screen", err)
	}
	return xhttp.SuccessResponse(c, screener.Evaluate(fv, req.Rules))
}

func (h *FeaturesHandler) TrainingRows(c echo.Context) error {
	req := &models.TrainingRowsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, ok := util.ParseDate(req.FromDate)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid fromDate %q", req.FromDate))
	}
	to, ok := util.ParseDate(req.ToDate)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid toDate %q", req.ToDate))
	}
	if to.Before(from) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("toDate is before fromDate"))
	}

	rows, err := h.builder.BuildRows(c.Request().Context(), req.Symbol, req.Bars, from, to, req.NeutralBandPct, req.Persist)
	if err != nil {
		return h.computeError(c, "training", err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// TrainingJob enqueues a background build and returns immediately. Large date
// ranges belong here rather than on the synchronous endpoint.
func (h *FeaturesHandler) TrainingJob(c echo.Context) error {
	if h.jobs == nil {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_NO_QUEUE", "job queue is not configured", http.StatusServiceUnavailable))
	}
	req := &models.TrainingRowsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	payload := usecase.TrainingJobPayload{
		Symbol:         req.Symbol,
		Bars:           req.Bars,
		FromDate:       req.FromDate,
		ToDate:         req.ToDate,
		NeutralBandPct: req.NeutralBandPct,
	}
	if err := h.jobs.Enqueue(c.Request().Context(), usecase.TrainingJobType, payload); err != nil {
		h.logger.Error("enqueue training job failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("enqueue failed").WithError(err))
	}
	return xhttp.DataResponse(c, http.StatusAccepted, map[string]string{
		"symbol": req.Symbol,
		"status": "queued",
	})
}

func (h *FeaturesHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *FeaturesHandler) computeError(c echo.Context, op string, err error) error {
	var insufficient *align.InsufficientHistoryError
	if errors.As(err, &insufficient) {
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError(insufficient.Error()).WithError(err))
	}
	h.logger.Error("compute failed",
		applogger.String("op", op),
		applogger.Error(err),
	)
	return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
}

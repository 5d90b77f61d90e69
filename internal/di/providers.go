package di

import (
	"fmt"
	"time"

	"QuantCore/internal/domain/repository"
	"QuantCore/internal/handler/api"
	internalrepo "QuantCore/internal/repository"
	icache "QuantCore/internal/service/cache"
	"QuantCore/internal/services/indicators"
	"QuantCore/internal/usecase"
	pkgcache "QuantCore/pkg/cache"
	pkgch "QuantCore/pkg/clickhouse"
	"QuantCore/pkg/config"
	xhttp "QuantCore/pkg/http"
	pkgkafka "QuantCore/pkg/kafka"
	applogger "QuantCore/pkg/logger"
	"QuantCore/pkg/metrics"
	"QuantCore/pkg/queue"
	"QuantCore/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideParams maps engine config onto indicator parameters, falling back to
// the classic daily-bar defaults for anything left unset.
func ProvideParams(cfg *config.Config) indicators.Params {
	p := indicators.DefaultParams()
	e := cfg.Engine
	if len(e.SMAWindows) > 0 {
		p.SMAWindows = e.SMAWindows
	}
	if len(e.EMAWindows) > 0 {
		p.EMAWindows = e.EMAWindows
	}
	if e.RSIWindow > 0 {
		p.RSIWindow = e.RSIWindow
	}
	if e.MACDFast > 0 && e.MACDSlow > 0 && e.MACDSignal > 0 {
		p.MACDFast, p.MACDSlow, p.MACDSignal = e.MACDFast, e.MACDSlow, e.MACDSignal
	}
	if e.BollWindow > 0 {
		p.BollWindow = e.BollWindow
	}
	if e.BollMult > 0 {
		p.BollMult = e.BollMult
	}
	if e.StochK > 0 {
		p.StochK = e.StochK
	}
	if e.StochD > 0 {
		p.StochD = e.StochD
	}
	if e.DirWindow > 0 {
		p.DirWindow = e.DirWindow
	}
	if e.ATRWindow > 0 {
		p.ATRWindow = e.ATRWindow
	}
	if e.VolumeSMA > 0 {
		p.VolumeSMA = e.VolumeSMA
	}
	return p
}

// ProvideSnapshotCache creates the per-symbol indicator snapshot cache.
func ProvideSnapshotCache(cfg *config.Config) *icache.SnapshotCache {
	return icache.NewSnapshotCache(cfg.Engine.SnapshotTTL)
}

// ProvideFeatureService assembles the feature computation service.
func ProvideFeatureService(
	params indicators.Params,
	snaps *icache.SnapshotCache,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.FeatureService {
	return usecase.NewFeatureService(params, snaps, m, logger)
}

// ProvideRowStore creates the ClickHouse training-row store, or a noop when
// ClickHouse is disabled.
func ProvideRowStore(cfg *config.Config, logger *applogger.Logger) (repository.RowStore, error) {
	if !cfg.ClickHouse.Enabled {
		return internalrepo.NoopRowStore{}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithAddr(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return internalrepo.NewCHRowStore(client, logger), nil
}

// ProvideRowPublisher creates the Kafka training-row publisher, or a noop
// when Kafka is disabled.
func ProvideRowPublisher(cfg *config.Config, logger *applogger.Logger) (repository.RowPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopRowPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic,
		pkgkafka.WithBatch(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.Producer.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaRowPublisher(producer, logger), nil
}

// ProvideVectorCache picks Redis when enabled, else an in-process cache.
func ProvideVectorCache(cfg *config.Config, logger *applogger.Logger) (pkgcache.Service, error) {
	if cfg.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		logger.Info("vector cache: redis", applogger.String("addr", cfg.Redis.Addr))
		return rc, nil
	}
	return pkgcache.NewMemoryCache(10_000), nil
}

// ProvideJobQueue creates the Redis job queue with the training-row job
// registered, or nil when Redis is disabled.
func ProvideJobQueue(cfg *config.Config, logger *applogger.Logger, builder *usecase.TrainingBuilder) *queue.RedisQueue {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	q := queue.NewRedisQueue(logger, &queue.Config{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, client)
	q.RegisterJob(usecase.NewTrainingJob(builder, logger))
	return q
}

// ProvideTrainingBuilder assembles the labeled-row builder.
func ProvideTrainingBuilder(
	svc *usecase.FeatureService,
	store repository.RowStore,
	pub repository.RowPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.TrainingBuilder {
	return usecase.NewTrainingBuilder(svc, store, pub, m, logger)
}

// ProvideHandler builds the HTTP route handler.
func ProvideHandler(
	logger *applogger.Logger,
	svc *usecase.FeatureService,
	builder *usecase.TrainingBuilder,
	vectors pkgcache.Service,
	jobQueue *queue.RedisQueue,
) xhttp.Handler {
	var jobs api.Enqueuer
	if jobQueue != nil {
		jobs = jobQueue
	}
	return api.NewFeaturesHandler(logger, svc, builder, vectors, jobs)
}

// ProvideApp builds the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store repository.RowStore,
	pub repository.RowPublisher,
	vectors pkgcache.Service,
	jobQueue *queue.RedisQueue,
) *server.App {
	return server.New(cfg, logger, handler, store, pub, vectors, jobQueue)
}

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "QuantCore/internal/domain/repository"
	pkgcache "QuantCore/pkg/cache"
	"QuantCore/pkg/config"
	xhttp "QuantCore/pkg/http"
	applogger "QuantCore/pkg/logger"
	"QuantCore/pkg/queue"
)

// App owns the process lifecycle: it starts the HTTP server, blocks until a
// shutdown signal, then drains and closes every backend in order.
type App struct {
	cfg     *config.Config
	logger  *applogger.Logger
	server  *xhttp.Server
	store   domrepo.RowStore
	pub     domrepo.RowPublisher
	vectors pkgcache.Service
	jobs    *queue.RedisQueue
}

func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store domrepo.RowStore,
	pub domrepo.RowPublisher,
	vectors pkgcache.Service,
	jobs *queue.RedisQueue,
) *App {
	srv := xhttp.NewServer(handler, logger,
		xhttp.WithAddr("0.0.0.0", cfg.Server.Port),
		xhttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		xhttp.WithRateLimit(cfg.Server.RateLimitBurst, cfg.Server.RateLimitRPS),
	)
	return &App{
		cfg:     cfg,
		logger:  logger,
		server:  srv,
		store:   store,
		pub:     pub,
		vectors: vectors,
		jobs:    jobs,
	}
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		err := a.store.Init(ctx)
		cancel()
		if err != nil {
			return err
		}
	}

	if a.jobs != nil {
		if err := a.jobs.Start(); err != nil {
			return err
		}
	}

	if err := a.server.Start(); err != nil {
		return err
	}
	a.logger.Info("app started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	if a.jobs != nil {
		if err := a.jobs.Stop(ctx); err != nil {
			a.logger.Warn("job queue stop error", applogger.Error(err))
		}
	}
	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("row store close error", applogger.Error(err))
		}
	}
	if a.vectors != nil {
		if err := a.vectors.Close(); err != nil {
			a.logger.Warn("vector cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"IndexBoard/internal/domain/repository"
	"IndexBoard/internal/scheduler"
	pkgcache "IndexBoard/pkg/cache"
	pkgch "IndexBoard/pkg/clickhouse"
	"IndexBoard/pkg/config"
	xhttp "IndexBoard/pkg/http"
	applogger "IndexBoard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	l         *applogger.Logger
	handler   xhttp.Handler
	sched     *scheduler.Scheduler
	cache     pkgcache.Service
	chClient  *pkgch.Client
	publisher repository.BarPublisher

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. chClient and
// publisher are nil when their subsystems are disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	cacheSvc pkgcache.Service,
	chClient *pkgch.Client,
	publisher repository.BarPublisher,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		handler:   handler,
		sched:     sched,
		cache:     cacheSvc,
		chClient:  chClient,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := a.sched.Register(a.cfg.Refresh.IntradayCron, a.cfg.Refresh.DailyCron); err != nil {
		return err
	}
	a.sched.Start()
	if a.cfg.Refresh.RunOnStart {
		go a.sched.RunNow()
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("symbol", a.cfg.Market.Symbol),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("feed publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}

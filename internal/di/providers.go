package di

import (
	"context"
	"fmt"
	"time"

	"IndexBoard/internal/domain/repository"
	"IndexBoard/internal/handler/api"
	"IndexBoard/internal/handler/web"
	"IndexBoard/internal/handler/ws"
	internalrepo "IndexBoard/internal/repository"
	"IndexBoard/internal/scheduler"
	"IndexBoard/internal/service/yahoo"
	"IndexBoard/internal/usecase"
	pkgcache "IndexBoard/pkg/cache"
	pkgch "IndexBoard/pkg/clickhouse"
	"IndexBoard/pkg/config"
	xhttp "IndexBoard/pkg/http"
	pkgkafka "IndexBoard/pkg/kafka"
	applogger "IndexBoard/pkg/logger"
	"IndexBoard/pkg/metrics"
	"IndexBoard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideLocation resolves the market timezone.
func ProvideLocation(cfg *config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		return nil, fmt.Errorf("market timezone %q: %w", cfg.Market.Timezone, err)
	}
	return loc, nil
}

// ProvideCache builds the cache service: layered with Redis when configured,
// in-process otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
}

// ProvideClickHouseClient creates a ClickHouse client and runs the schema,
// or nil when the history store is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.History.Host),
		pkgch.WithPort(cfg.History.Port),
		pkgch.WithDatabase(cfg.History.Database),
		pkgch.WithCredentials(cfg.History.User, cfg.History.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.History.UseHTTP),
		pkgch.WithTimeouts(cfg.History.DialTimeout, cfg.History.ReadTimeout, cfg.History.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.History.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideBarStore creates the ClickHouse-backed bar store, or nil when
// history is disabled.
func ProvideBarStore(chClient *pkgch.Client, l *applogger.Logger) repository.BarStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the feed is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Feed.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Feed.Brokers),
		pkgkafka.WithCompression(cfg.Feed.Compression),
		pkgkafka.WithRequiredAcks(cfg.Feed.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Feed.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Feed.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Feed.Linger),
		pkgkafka.WithTimeouts(cfg.Feed.WriteTimeout, cfg.Feed.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Feed.MaxAttempts),
		pkgkafka.WithAsync(cfg.Feed.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideBarPublisher creates the bar feed publisher, or nil when the feed
// is disabled.
func ProvideBarPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.BarPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaBarPublisher(producer, cfg.Feed.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketSource creates the Yahoo Finance chart client.
func ProvideMarketSource(cfg *config.Config, loc *time.Location) repository.MarketDataSource {
	return yahoo.New(
		yahoo.WithBaseURL(cfg.Market.BaseURL),
		yahoo.WithUserAgent(cfg.Market.UserAgent),
		yahoo.WithLocation(loc),
		yahoo.WithMaxRPS(cfg.Market.MaxRPS),
		yahoo.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Market.RequestTimeout))),
	)
}

// ProvideChartUseCase creates the chart use case.
func ProvideChartUseCase(
	cfg *config.Config,
	loc *time.Location,
	source repository.MarketDataSource,
	store repository.BarStore,
	cacheSvc pkgcache.Service,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(usecase.ChartConfig{
		Symbol:      cfg.Market.Symbol,
		Name:        cfg.Market.DisplayName,
		Currency:    cfg.Market.Currency,
		IntradayTTL: cfg.Cache.IntradayTTL,
		DailyTTL:    cfg.Cache.DailyTTL,
		Location:    loc,
	}, source, store, cacheSvc, m, l)
}

// ProvideReturnsUseCase creates the yearly returns use case.
func ProvideReturnsUseCase(chart *usecase.ChartUseCase, loc *time.Location) *usecase.ReturnsUseCase {
	return usecase.NewReturnsUseCase(chart, loc)
}

// ProvideProjectionUseCase creates the investment projection use case.
func ProvideProjectionUseCase(cfg *config.Config) *usecase.ProjectionUseCase {
	return usecase.NewProjectionUseCase(
		cfg.Projection.LowTaxRate,
		cfg.Projection.HighTaxRate,
		cfg.Projection.TaxThreshold,
		cfg.Market.Currency,
	)
}

// ProvideClockUseCase creates the market clock use case.
func ProvideClockUseCase(cfg *config.Config, loc *time.Location) *usecase.ClockUseCase {
	return usecase.NewClockUseCase(cfg.Market.Timezone, loc)
}

// ProvideRefresher creates the cache/history refresher.
func ProvideRefresher(
	chart *usecase.ChartUseCase,
	store repository.BarStore,
	publisher repository.BarPublisher,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.Refresher {
	return usecase.NewRefresher(chart, store, publisher, cfg.Market.Symbol, cfg.Refresh.WarmPeriods, l)
}

// ProvideScheduler creates the cron scheduler.
func ProvideScheduler(refresher *usecase.Refresher, l *applogger.Logger) *scheduler.Scheduler {
	return scheduler.New(context.Background(), refresher, l)
}

// ProvideHandler groups the API, WebSocket and web handlers.
func ProvideHandler(
	l *applogger.Logger,
	chart *usecase.ChartUseCase,
	returns *usecase.ReturnsUseCase,
	projection *usecase.ProjectionUseCase,
	clock *usecase.ClockUseCase,
	store repository.BarStore,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewDashboardEchoHandler(l, chart, returns, projection, clock, store),
		ws.NewLiveHandler(l, chart, clock),
		web.NewIndexHandler(),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	cacheSvc pkgcache.Service,
	chClient *pkgch.Client,
	publisher repository.BarPublisher,
) *server.App {
	return server.New(cfg, l, handler, sched, cacheSvc, chClient, publisher)
}

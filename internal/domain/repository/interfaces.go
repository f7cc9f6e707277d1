package repository

import (
	"context"
	"time"

	"IndexBoard/internal/domain/models"
)

// MarketDataSource fetches index bars from an upstream provider.
type MarketDataSource interface {
	FetchBars(ctx context.Context, symbol string, period Period) ([]models.Bar, error)
}

// BarStore persists daily bars and serves them back when the upstream
// feed is unavailable.
type BarStore interface {
	UpsertDailyBars(ctx context.Context, symbol string, bars []models.Bar) error
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error)
	GetLatestClose(ctx context.Context, symbol string) (models.Bar, error)
	Health(ctx context.Context) error
}

// BarPublisher emits refreshed daily bars to downstream consumers.
type BarPublisher interface {
	PublishBars(ctx context.Context, symbol string, bars []models.Bar) error
	Close() error
}

// Metrics abstracts operational counters so use cases stay vendor-neutral.
type Metrics interface {
	RecordFetch(period, result string)
	RecordCache(period, outcome string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}

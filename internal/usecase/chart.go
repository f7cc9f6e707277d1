package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
	pkgcache "IndexBoard/pkg/cache"
	applogger "IndexBoard/pkg/logger"
	"IndexBoard/pkg/util"
)

// ChartConfig carries the display identity and cache tuning of the series.
type ChartConfig struct {
	Symbol      string
	Name        string
	Currency    string
	IntradayTTL time.Duration
	DailyTTL    time.Duration
	Location    *time.Location
}

// ChartUseCase serves the dashboard's main graph: close series per period
// with the headline change numbers. Fetches go cache -> upstream -> history
// fallback for daily periods.
type ChartUseCase struct {
	cfg     ChartConfig
	source  drepo.MarketDataSource
	store   drepo.BarStore // optional
	cache   pkgcache.Service
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewChartUseCase(
	cfg ChartConfig,
	source drepo.MarketDataSource,
	store drepo.BarStore,
	cacheSvc pkgcache.Service,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *ChartUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.IntradayTTL <= 0 {
		cfg.IntradayTTL = time.Minute
	}
	if cfg.DailyTTL <= 0 {
		cfg.DailyTTL = time.Hour
	}
	return &ChartUseCase{
		cfg:     cfg,
		source:  source,
		store:   store,
		cache:   cacheSvc,
		metrics: metrics,
		l:       l,
	}
}

// GetChart returns the chart series for a period.
func (uc *ChartUseCase) GetChart(ctx context.Context, period drepo.Period) (*models.ChartSeries, error) {
	start := time.Now()
	period = drepo.NormalizePeriod(string(period))
	key := uc.cacheKey(period)

	var cached models.ChartSeries
	if uc.cache != nil {
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			uc.recordCache(period, "hit")
			return &cached, nil
		}
		uc.recordCache(period, "miss")
	}

	bars, err := uc.BarsForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	series := uc.buildSeries(period, bars)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, series, uc.ttlFor(period)); err != nil && uc.l != nil {
			uc.l.Warn("chart cache set failed", applogger.Error(err))
		}
	}
	if uc.metrics != nil {
		uc.metrics.RecordLastPrice(uc.cfg.Symbol, series.CurrentPrice)
		uc.metrics.RecordLatency("chart", time.Since(start).Seconds())
	}
	return series, nil
}

// GetQuote returns the latest observed price, preferring the intraday series.
func (uc *ChartUseCase) GetQuote(ctx context.Context) (*models.Quote, error) {
	series, err := uc.GetChart(ctx, drepo.P1D)
	if err == nil && series.Count > 0 {
		last := series.Points[series.Count-1]
		return &models.Quote{
			Symbol: uc.cfg.Symbol,
			Name:   uc.cfg.Name,
			Price:  last.Close,
			AsOf:   last.Time,
		}, nil
	}

	if uc.store != nil {
		bar, serr := uc.store.GetLatestClose(ctx, uc.cfg.Symbol)
		if serr == nil {
			return &models.Quote{
				Symbol: uc.cfg.Symbol,
				Name:   uc.cfg.Name,
				Price:  bar.Close,
				AsOf:   bar.Time,
			}, nil
		}
	}
	if err == nil {
		err = errors.New("empty intraday series")
	}
	return nil, fmt.Errorf("quote unavailable: %w", err)
}

// BarsForPeriod fetches bars from upstream with history fallback for daily
// periods. The result is strictly ascending by time.
func (uc *ChartUseCase) BarsForPeriod(ctx context.Context, period drepo.Period) ([]models.Bar, error) {
	bars, err := uc.source.FetchBars(ctx, uc.cfg.Symbol, period)
	if err == nil {
		uc.recordFetch(period, "ok")
		return bars, nil
	}
	uc.recordFetch(period, "error")
	if uc.l != nil {
		uc.l.Warn("upstream fetch failed",
			applogger.String("period", string(period)),
			applogger.Error(err),
		)
	}

	if uc.store == nil || period.Intraday() {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	from := uc.periodStart(period, time.Now().In(uc.cfg.Location))
	stored, serr := uc.store.GetDailyBars(ctx, uc.cfg.Symbol, from, time.Now())
	if serr != nil || len(stored) == 0 {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if uc.l != nil {
		uc.l.Info("served chart from history store",
			applogger.String("period", string(period)),
			applogger.Int("rows", len(stored)),
		)
	}
	return stored, nil
}

// InvalidatePeriod drops the cached series so the next read refetches.
func (uc *ChartUseCase) InvalidatePeriod(ctx context.Context, period drepo.Period) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, uc.cacheKey(period))
}

func (uc *ChartUseCase) buildSeries(period drepo.Period, bars []models.Bar) *models.ChartSeries {
	points := make([]models.ChartPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, models.ChartPoint{Time: b.Time, Close: b.Close})
	}

	series := &models.ChartSeries{
		Symbol:   uc.cfg.Symbol,
		Name:     uc.cfg.Name,
		Period:   string(period),
		Currency: uc.cfg.Currency,
		Points:   points,
		Count:    len(points),
	}
	if len(points) > 0 {
		series.StartPrice = points[0].Close
		series.CurrentPrice = points[len(points)-1].Close
		if series.StartPrice != 0 {
			series.PercentChange = (series.CurrentPrice - series.StartPrice) / series.StartPrice * 100
		}
	}
	return series
}

func (uc *ChartUseCase) cacheKey(period drepo.Period) string {
	return pkgcache.GenerateKeyWithParams("chart", uc.cfg.Symbol, string(period))
}

func (uc *ChartUseCase) ttlFor(period drepo.Period) time.Duration {
	if period.Intraday() {
		return uc.cfg.IntradayTTL
	}
	return uc.cfg.DailyTTL
}

func (uc *ChartUseCase) periodStart(period drepo.Period, now time.Time) time.Time {
	switch period {
	case drepo.P1Mo:
		return now.AddDate(0, -1, 0)
	case drepo.P3Mo:
		return now.AddDate(0, -3, 0)
	case drepo.P6Mo:
		return now.AddDate(0, -6, 0)
	case drepo.P1Y:
		return now.AddDate(-1, 0, 0)
	case drepo.P5Y:
		return now.AddDate(-5, 0, 0)
	case drepo.PYTD:
		return util.StartOfYear(now)
	default:
		return time.Time{}
	}
}

func (uc *ChartUseCase) recordCache(period drepo.Period, outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordCache(string(period), outcome)
	}
}

func (uc *ChartUseCase) recordFetch(period drepo.Period, result string) {
	if uc.metrics != nil {
		uc.metrics.RecordFetch(string(period), result)
	}
}

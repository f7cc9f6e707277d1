package usecase

import (
	"context"
	"fmt"
	"time"

	drepo "IndexBoard/internal/domain/repository"
	applogger "IndexBoard/pkg/logger"
)

// Refresher keeps the cached series warm and the daily history synced.
// The scheduler drives it; both jobs are safe to run ad hoc.
type Refresher struct {
	chart       *ChartUseCase
	store       drepo.BarStore     // optional
	publisher   drepo.BarPublisher // optional
	symbol      string
	warmPeriods []drepo.Period
	l           *applogger.Logger
}

func NewRefresher(
	chart *ChartUseCase,
	store drepo.BarStore,
	publisher drepo.BarPublisher,
	symbol string,
	warmPeriods []string,
	l *applogger.Logger,
) *Refresher {
	periods := make([]drepo.Period, 0, len(warmPeriods))
	for _, p := range warmPeriods {
		periods = append(periods, drepo.NormalizePeriod(p))
	}
	if len(periods) == 0 {
		periods = []drepo.Period{drepo.P1D, drepo.DefaultPeriod()}
	}
	return &Refresher{
		chart:       chart,
		store:       store,
		publisher:   publisher,
		symbol:      symbol,
		warmPeriods: periods,
		l:           l,
	}
}

// RefreshCharts drops and re-fetches the warm periods so dashboard reads
// stay hot. Failures on one period do not stop the rest.
func (r *Refresher) RefreshCharts(ctx context.Context) error {
	var firstErr error
	for _, period := range r.warmPeriods {
		r.chart.InvalidatePeriod(ctx, period)
		if _, err := r.chart.GetChart(ctx, period); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("warm %s: %w", period, err)
			}
			if r.l != nil {
				r.l.Warn("chart warm failed",
					applogger.String("period", string(period)),
					applogger.Error(err),
				)
			}
		}
	}
	return firstErr
}

// SyncDailyHistory upserts recent daily bars into the history store and
// publishes them to the feed. A full backfill runs when the store is empty.
func (r *Refresher) SyncDailyHistory(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	start := time.Now()

	period := drepo.P1Mo
	if _, err := r.store.GetLatestClose(ctx, r.symbol); err != nil {
		period = drepo.PMax
		if r.l != nil {
			r.l.Info("history store empty, running full backfill")
		}
	}

	bars, err := r.chart.BarsForPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("sync history: %w", err)
	}
	if err := r.store.UpsertDailyBars(ctx, r.symbol, bars); err != nil {
		return fmt.Errorf("sync history: %w", err)
	}

	if r.publisher != nil {
		if err := r.publisher.PublishBars(ctx, r.symbol, bars); err != nil && r.l != nil {
			r.l.Warn("bar feed publish failed", applogger.Error(err))
		}
	}

	if r.l != nil {
		r.l.Info("daily history synced",
			applogger.String("period", string(period)),
			applogger.Int("rows", len(bars)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

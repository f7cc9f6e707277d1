package usecase

import (
	"context"
	"fmt"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
	icache "IndexBoard/internal/service/cache"
)

// BarProvider abstracts the cached fetch path so returns can be computed
// over the same series the chart uses.
type BarProvider interface {
	BarsForPeriod(ctx context.Context, period drepo.Period) ([]models.Bar, error)
}

// ReturnsUseCase computes calendar-year returns over the full history.
// Computed rows are held in a decoded-value cache; the underlying series
// only moves once a trading day.
type ReturnsUseCase struct {
	bars BarProvider
	loc  *time.Location
	hot  *icache.TTLCache
	ttl  time.Duration
}

func NewReturnsUseCase(bars BarProvider, loc *time.Location) *ReturnsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReturnsUseCase{
		bars: bars,
		loc:  loc,
		hot:  icache.NewTTLCache(),
		ttl:  10 * time.Minute,
	}
}

const yearlyReturnsKey = "yearly_returns"

// YearlyReturns returns one entry per calendar year with the year-over-year
// change of the last close. The earliest year has no predecessor and is
// omitted.
func (uc *ReturnsUseCase) YearlyReturns(ctx context.Context) ([]models.YearlyReturn, error) {
	if v, ok := uc.hot.Get(yearlyReturnsKey); ok {
		return v.([]models.YearlyReturn), nil
	}

	bars, err := uc.bars.BarsForPeriod(ctx, drepo.PMax)
	if err != nil {
		return nil, fmt.Errorf("yearly returns: %w", err)
	}
	out := ComputeYearlyReturns(bars, uc.loc)
	uc.hot.Set(yearlyReturnsKey, out, uc.ttl)
	return out, nil
}

// ComputeYearlyReturns reduces an ascending bar series to the last close of
// each calendar year and the percent change against the prior year.
func ComputeYearlyReturns(bars []models.Bar, loc *time.Location) []models.YearlyReturn {
	if loc == nil {
		loc = time.UTC
	}

	years := make([]int, 0, 64)
	lastClose := make(map[int]float64, 64)
	for _, b := range bars {
		y := b.Time.In(loc).Year()
		if _, seen := lastClose[y]; !seen {
			years = append(years, y)
		}
		lastClose[y] = b.Close
	}

	out := make([]models.YearlyReturn, 0, len(years))
	for i := 1; i < len(years); i++ {
		prev := lastClose[years[i-1]]
		cur := lastClose[years[i]]
		var pct float64
		if prev != 0 {
			pct = (cur - prev) / prev * 100
		}
		out = append(out, models.YearlyReturn{
			Year:          years[i],
			Close:         cur,
			PercentChange: pct,
		})
	}
	return out
}

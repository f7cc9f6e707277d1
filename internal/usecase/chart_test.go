package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
	pkgcache "IndexBoard/pkg/cache"
)

type fakeSource struct {
	bars  []models.Bar
	err   error
	calls int
}

func (f *fakeSource) FetchBars(_ context.Context, _ string, _ drepo.Period) ([]models.Bar, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

type fakeStore struct {
	bars []models.Bar
}

func (f *fakeStore) UpsertDailyBars(context.Context, string, []models.Bar) error { return nil }

func (f *fakeStore) GetDailyBars(context.Context, string, time.Time, time.Time) ([]models.Bar, error) {
	return f.bars, nil
}

func (f *fakeStore) GetLatestClose(context.Context, string) (models.Bar, error) {
	if len(f.bars) == 0 {
		return models.Bar{}, errors.New("no history")
	}
	return f.bars[len(f.bars)-1], nil
}

func (f *fakeStore) Health(context.Context) error { return nil }

func testChartConfig() ChartConfig {
	return ChartConfig{
		Symbol:   "^GSPC",
		Name:     "S&P 500",
		Currency: "USD",
	}
}

func testBars() []models.Bar {
	base := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	return []models.Bar{
		{Time: base, Close: 100},
		{Time: base.AddDate(0, 0, 1), Close: 104},
		{Time: base.AddDate(0, 0, 2), Close: 110},
	}
}

func TestGetChartComputesChange(t *testing.T) {
	src := &fakeSource{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, nil, pkgcache.NewMemoryCache(), nil, nil)

	series, err := uc.GetChart(context.Background(), drepo.P1Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Count != 3 {
		t.Fatalf("count = %d, want 3", series.Count)
	}
	if series.StartPrice != 100 || series.CurrentPrice != 110 {
		t.Errorf("prices = %v/%v, want 100/110", series.StartPrice, series.CurrentPrice)
	}
	if series.PercentChange != 10 {
		t.Errorf("percent change = %v, want 10", series.PercentChange)
	}
}

func TestGetChartUsesCache(t *testing.T) {
	src := &fakeSource{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, nil, pkgcache.NewMemoryCache(), nil, nil)

	ctx := context.Background()
	if _, err := uc.GetChart(ctx, drepo.P1Y); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := uc.GetChart(ctx, drepo.P1Y); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (second read served from cache)", src.calls)
	}
}

func TestGetChartFallsBackToStore(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	store := &fakeStore{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, store, pkgcache.NewMemoryCache(), nil, nil)

	series, err := uc.GetChart(context.Background(), drepo.P1Y)
	if err != nil {
		t.Fatalf("expected store fallback, got error: %v", err)
	}
	if series.Count != 3 {
		t.Errorf("count = %d, want 3 from store", series.Count)
	}
}

func TestGetChartIntradayNoFallback(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	store := &fakeStore{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, store, pkgcache.NewMemoryCache(), nil, nil)

	if _, err := uc.GetChart(context.Background(), drepo.P1D); err == nil {
		t.Error("expected error for intraday period, daily history is no substitute")
	}
}

func TestGetQuotePrefersIntraday(t *testing.T) {
	src := &fakeSource{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, nil, pkgcache.NewMemoryCache(), nil, nil)

	q, err := uc.GetQuote(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 110 {
		t.Errorf("price = %v, want 110", q.Price)
	}
	if q.Symbol != "^GSPC" {
		t.Errorf("symbol = %q, want ^GSPC", q.Symbol)
	}
}

func TestGetQuoteStoreFallback(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	store := &fakeStore{bars: testBars()}
	uc := NewChartUseCase(testChartConfig(), src, store, pkgcache.NewMemoryCache(), nil, nil)

	q, err := uc.GetQuote(context.Background())
	if err != nil {
		t.Fatalf("expected latest close from store, got error: %v", err)
	}
	if q.Price != 110 {
		t.Errorf("price = %v, want 110", q.Price)
	}
}

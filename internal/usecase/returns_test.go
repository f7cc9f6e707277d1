package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
)

func dayBar(y int, m time.Month, d int, close float64) models.Bar {
	return models.Bar{
		Time:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Close: close,
	}
}

func TestComputeYearlyReturns(t *testing.T) {
	bars := []models.Bar{
		dayBar(2020, time.March, 2, 100),
		dayBar(2020, time.December, 30, 110),
		dayBar(2021, time.June, 15, 105),
		dayBar(2021, time.December, 31, 121),
		dayBar(2022, time.December, 29, 150),
	}

	got := ComputeYearlyReturns(bars, time.UTC)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	if got[0].Year != 2021 || got[0].Close != 121 {
		t.Errorf("entry 0 = %+v, want year 2021 close 121", got[0])
	}
	if math.Abs(got[0].PercentChange-10) > 1e-9 {
		t.Errorf("2021 change = %v, want 10", got[0].PercentChange)
	}

	if got[1].Year != 2022 {
		t.Errorf("entry 1 year = %d, want 2022", got[1].Year)
	}
	want := (150.0 - 121.0) / 121.0 * 100
	if math.Abs(got[1].PercentChange-want) > 1e-9 {
		t.Errorf("2022 change = %v, want %v", got[1].PercentChange, want)
	}
}

type countingProvider struct {
	bars  []models.Bar
	calls int
}

func (p *countingProvider) BarsForPeriod(context.Context, drepo.Period) ([]models.Bar, error) {
	p.calls++
	return p.bars, nil
}

func TestYearlyReturnsCachesResult(t *testing.T) {
	p := &countingProvider{bars: []models.Bar{
		dayBar(2023, time.December, 29, 100),
		dayBar(2024, time.December, 30, 110),
	}}
	uc := NewReturnsUseCase(p, time.UTC)

	ctx := context.Background()
	first, err := uc.YearlyReturns(ctx)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := uc.YearlyReturns(ctx)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (second read cached)", p.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Year != 2024 {
		t.Errorf("rows = %v / %v, want single 2024 entry", first, second)
	}
}

func TestComputeYearlyReturnsShortSeries(t *testing.T) {
	if got := ComputeYearlyReturns(nil, time.UTC); len(got) != 0 {
		t.Errorf("expected no entries for empty series, got %d", len(got))
	}
	one := []models.Bar{dayBar(2024, time.May, 1, 100)}
	if got := ComputeYearlyReturns(one, time.UTC); len(got) != 0 {
		t.Errorf("expected no entries for a single year, got %d", len(got))
	}
}

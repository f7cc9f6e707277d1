package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
)

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1735776000, 1735862400, 1735948800],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 104.0],
          "high":   [101.0, null, 106.0],
          "low":    [99.0,  null, 103.0],
          "close":  [100.5, null, 105.5],
          "volume": [1000,  null, 1200]
        }]
      }
    }],
    "error": null
  }
}`

func newStub(t *testing.T, status int, body string) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") == "" || r.URL.Query().Get("range") == "" {
			t.Errorf("missing interval/range query params: %s", r.URL.RawQuery)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	c := New(WithBaseURL(srv.URL), WithMaxRPS(1000))
	return srv, c
}

func TestFetchBarsSkipsNullRows(t *testing.T) {
	_, c := newStub(t, http.StatusOK, chartBody)

	bars, err := c.FetchBars(context.Background(), "^GSPC", drepo.P1Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (null row skipped)", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 105.5 {
		t.Errorf("closes = %v/%v, want 100.5/105.5", bars[0].Close, bars[1].Close)
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("bars not sorted ascending")
	}
}

func TestFetchBarsRaggedArrays(t *testing.T) {
	// Partial data can leave open/high/low/volume shorter than the
	// timestamp and close arrays; short arrays must read as nulls, not
	// crash the decode.
	const ragged = `{
	  "chart": {
	    "result": [{
	      "timestamp": [1735776000, 1735862400, 1735948800],
	      "indicators": {
	        "quote": [{
	          "open":   [100.0],
	          "high":   [101.0, 105.0],
	          "low":    [],
	          "close":  [100.5, 103.5, 105.5],
	          "volume": [1000]
	        }]
	      }
	    }],
	    "error": null
	  }
	}`
	_, c := newStub(t, http.StatusOK, ragged)

	bars, err := c.FetchBars(context.Background(), "^GSPC", drepo.P1Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	if bars[1].Open != 0 || bars[1].Volume != 0 {
		t.Errorf("bar 1 = %+v, want zero open/volume for missing entries", bars[1])
	}
	if bars[2].Close != 105.5 {
		t.Errorf("bar 2 close = %v, want 105.5", bars[2].Close)
	}
}

func TestFetchBarsAPIError(t *testing.T) {
	_, c := newStub(t, http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)

	if _, err := c.FetchBars(context.Background(), "NOPE", drepo.P1Y); err == nil {
		t.Error("expected error from API error payload")
	}
}

func TestFetchBarsEmptyResult(t *testing.T) {
	_, c := newStub(t, http.StatusOK, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[]}}],"error":null}}`)

	if _, err := c.FetchBars(context.Background(), "^GSPC", drepo.P1Y); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestFetchBarsThrottled(t *testing.T) {
	_, c := newStub(t, http.StatusOK, chartBody)
	c.maxRPS = 1

	ctx := context.Background()
	if _, err := c.FetchBars(ctx, "^GSPC", drepo.P1Y); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	if _, err := c.FetchBars(ctx, "^GSPC", drepo.P1Y); err != ErrThrottled {
		t.Errorf("second immediate call: got %v, want ErrThrottled", err)
	}
}

func TestTrimBefore(t *testing.T) {
	mk := func(m time.Month, day int) models.Bar {
		return models.Bar{Time: time.Date(2024, m, day, 0, 0, 0, 0, time.UTC)}
	}
	bars := []models.Bar{
		mk(time.November, 1), mk(time.December, 15), mk(time.December, 31),
	}
	start := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	got := trimBefore(bars, start)
	if len(got) != 2 {
		t.Fatalf("got %d bars, want 2", len(got))
	}
	if got[0].Time.Before(start) {
		t.Errorf("first bar %v predates %v", got[0].Time, start)
	}

	if got := trimBefore(bars, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)); len(got) != 0 {
		t.Errorf("expected empty slice when start is after all bars, got %d", len(got))
	}
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
	"IndexBoard/internal/usecase"
	pkgcache "IndexBoard/pkg/cache"
	xlogger "IndexBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	bars []models.Bar
}

func (s *stubSource) FetchBars(context.Context, string, drepo.Period) ([]models.Bar, error) {
	return s.bars, nil
}

func testBars() []models.Bar {
	base := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	out := make([]models.Bar, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, models.Bar{
			Time:  base.AddDate(0, 0, i),
			Close: 100 + float64(i),
		})
	}
	return out
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	chart := usecase.NewChartUseCase(usecase.ChartConfig{
		Symbol:   "^GSPC",
		Name:     "S&P 500",
		Currency: "USD",
	}, &stubSource{bars: testBars()}, nil, pkgcache.NewMemoryCache(), nil, nil)
	returns := usecase.NewReturnsUseCase(chart, time.UTC)
	projection := usecase.NewProjectionUseCase(0.27, 0.42, 61000, "USD")
	clock := usecase.NewClockUseCase("UTC", time.UTC)

	e := echo.New()
	NewDashboardEchoHandler(l, chart, returns, projection, clock, nil).RegisterRoutes(e)
	return e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestChartEndpoint(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/chart?period=1y", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}

	var series models.ChartSeries
	if err := json.Unmarshal(env.Data, &series); err != nil {
		t.Fatalf("decode series: %v", err)
	}
	if series.Period != "1y" || series.Count != 10 {
		t.Errorf("series = period %q count %d, want 1y/10", series.Period, series.Count)
	}
	if series.CurrentPrice != 109 {
		t.Errorf("current price = %v, want 109", series.CurrentPrice)
	}
}

func TestChartEndpointDefaultPeriod(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/chart", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	var series models.ChartSeries
	if err := json.Unmarshal(env.Data, &series); err != nil {
		t.Fatalf("decode series: %v", err)
	}
	if series.Period != "ytd" {
		t.Errorf("period = %q, want ytd default", series.Period)
	}
}

func TestChartEndpointRejectsBadPeriod(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/chart?period=century", "")
	if env.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", env.Status)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/quote", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	var q models.Quote
	if err := json.Unmarshal(env.Data, &q); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if q.Price != 109 || q.Symbol != "^GSPC" {
		t.Errorf("quote = %+v", q)
	}
}

func TestReturnsEndpoint(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/returns", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	// The stub series covers a single year, so there is no prior year to
	// compare against.
	var rows []models.YearlyReturn
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode returns: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0 for single-year series", len(rows))
	}
}

func TestClockEndpoint(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/clock", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	var info models.ClockInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("decode clock: %v", err)
	}
	if info.Timezone != "UTC" || info.Unix == 0 {
		t.Errorf("clock = %+v", info)
	}
}

func TestProjectionEndpoint(t *testing.T) {
	e := newTestServer(t)

	body := `{"initial_investment":1000,"monthly_investment":100,"num_years":2,"annual_interest_rate":7,"ongoing_charges_rate":0.07}`
	_, env := doRequest(t, e, http.MethodPost, "/api/projection", body)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	var res models.ProjectionResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode projection: %v", err)
	}
	if len(res.Years) != 3 {
		t.Errorf("samples = %d, want 3", len(res.Years))
	}
	if res.MoneyInvested[2] != 3400 {
		t.Errorf("invested[2] = %v, want 3400", res.MoneyInvested[2])
	}
}

func TestProjectionEndpointValidation(t *testing.T) {
	e := newTestServer(t)

	_, env := doRequest(t, e, http.MethodPost, "/api/projection", `{"num_years":500}`)
	if env.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for out-of-range years", env.Status)
	}
}

func TestHealthzEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || env.Status != http.StatusOK {
		t.Errorf("healthz = http %d envelope %d, want 200/200", rec.Code, env.Status)
	}
}

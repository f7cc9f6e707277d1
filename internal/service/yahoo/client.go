package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"IndexBoard/internal/domain/models"
	drepo "IndexBoard/internal/domain/repository"
	"IndexBoard/internal/service/ratelimit"
	xhttp "IndexBoard/pkg/http"
	"IndexBoard/pkg/util"
)

// ErrThrottled is returned when the local rate limiter denies an upstream call.
var ErrThrottled = fmt.Errorf("yahoo: request throttled")

// Client implements MarketDataSource against the Yahoo Finance v8 chart API.
type Client struct {
	baseURL   string
	userAgent string
	loc       *time.Location
	http      *xhttp.Client
	limiter   *ratelimit.Limiter
	maxRPS    float64
}

// Option configures Client.
type Option func(*Client)

// New creates a new Yahoo Finance chart client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   "https://query1.finance.yahoo.com",
		userAgent: "Mozilla/5.0",
		loc:       time.UTC,
		limiter:   ratelimit.New(),
		maxRPS:    2,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(30 * time.Second))
	}
	return c
}

// WithBaseURL overrides the API base URL (tests point this at a stub).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLocation sets the location used for year-to-date trimming.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithHTTPClient injects the transport client.
func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMaxRPS caps upstream request rate.
func WithMaxRPS(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.maxRPS = rps
		}
	}
}

// chartResponse is the response structure from the Yahoo Finance chart API.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func valueAt(vs []interface{}, i int) interface{} {
	if i >= len(vs) {
		return nil
	}
	return vs[i]
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchBars fetches the bar series for a period. Year-to-date is fetched
// as the full history and trimmed to January 1st of the current year.
func (c *Client) FetchBars(ctx context.Context, symbol string, period drepo.Period) ([]models.Bar, error) {
	if !c.limiter.Allow("chart", c.maxRPS, c.maxRPS) {
		return nil, ErrThrottled
	}

	bars, err := c.fetchChart(ctx, symbol, period.Interval(), period.Range())
	if err != nil {
		return nil, err
	}

	if period == drepo.PYTD {
		start := util.StartOfYear(time.Now().In(c.loc))
		bars = trimBefore(bars, start)
	}
	return bars, nil
}

func (c *Client) fetchChart(ctx context.Context, symbol, interval, rng string) ([]models.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodGet,
		URL:    u,
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"interval": {interval},
			"range":    {rng},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// The API emits ragged arrays on partial data; treat short arrays
		// the same as null entries.
		o := toFloat(valueAt(quote.Open, i))
		h := toFloat(valueAt(quote.High, i))
		l := toFloat(valueAt(quote.Low, i))
		cl := toFloat(valueAt(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, models.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: toFloat(valueAt(quote.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func trimBefore(bars []models.Bar, start time.Time) []models.Bar {
	idx := sort.Search(len(bars), func(i int) bool {
		return !bars[i].Time.Before(start)
	})
	return bars[idx:]
}

package models

import "time"

// ChartPoint is a single (time, close) pair of a rendered series.
type ChartPoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// ChartSeries is the payload behind the dashboard's main graph: the close
// series for a period plus the headline numbers shown in the chart title.
type ChartSeries struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Period        string       `json:"period"`
	Currency      string       `json:"currency"`
	Points        []ChartPoint `json:"points"`
	StartPrice    float64      `json:"start_price"`
	CurrentPrice  float64      `json:"current_price"`
	PercentChange float64      `json:"percent_change"`
	Count         int          `json:"count"`
}

// YearlyReturn is the percentage change of the last close of a calendar
// year against the previous year's last close.
type YearlyReturn struct {
	Year          int     `json:"year"`
	Close         float64 `json:"close"`
	PercentChange float64 `json:"percent_change"`
}

// ClockInfo carries the dashboard clock and date in the market timezone.
type ClockInfo struct {
	Time     string `json:"time"` // HH:MM:SS
	Date     string `json:"date"` // DD-MM-YYYY
	Timezone string `json:"timezone"`
	Unix     int64  `json:"unix"`
}

package models

import "time"

// Bar represents a single OHLCV point of the index series.
// Series are kept strictly ascending by Time; bars with all-zero OHLC
// (upstream nulls for holidays and halts) are dropped at ingest.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is the latest observed price for a symbol.
type Quote struct {
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
	AsOf   time.Time `json:"as_of"`
}

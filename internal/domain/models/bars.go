package models

import (
	"fmt"
	"time"
)

// PriceBar is one trading-day OHLCV record. In intraday mode the last bar of a
// series may be today's partial bar; everywhere else bars are finalized days.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered run of daily bars, strictly ascending by date, one
// bar per trading day. It is owned by the caller; the engine never mutates it.
type PriceSeries []PriceBar

// Validate checks ordering and field sanity. Prices must be positive, volume
// non-negative, dates strictly ascending with no duplicates.
func (s PriceSeries) Validate() error {
	for i, b := range s {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): prices must be positive", i, b.Date.Format("2006-01-02"))
		}
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s): high below low", i, b.Date.Format("2006-01-02"))
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d (%s): negative volume", i, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !s[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): dates must be strictly ascending", i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// LastIndex returns the index of the newest bar, or -1 for an empty series.
func (s PriceSeries) LastIndex() int { return len(s) - 1 }

// Closes extracts the close column.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column.
func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column.
func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column as floats.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = float64(b.Volume)
	}
	return out
}

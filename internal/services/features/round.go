package features

import (
	"math"

	"github.com/shopspring/decimal"
)

// Rounding policy: price-scale and indicator values carry 2 decimals, ratios,
// percentages and deltas carry 4. Going through decimal keeps repeated
// computations and round-trip comparisons byte-stable.
const (
	pricePlaces = 2
	ratioPlaces = 4
)

func roundTo(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}

// num returns a rounded copy of v, or nil for anything non-finite so NaN and
// Inf can never reach a feature field.
func num(v float64, places int32) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := roundTo(v, places)
	return &r
}

func price(v float64) *float64 { return num(v, pricePlaces) }
func ratio(v float64) *float64 { return num(v, ratioPlaces) }

// flag encodes a boolean as the numeric 0/1 every consumer expects.
func flag(b bool) *float64 {
	v := 0.0
	if b {
		v = 1.0
	}
	return &v
}

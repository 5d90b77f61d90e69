package indicators

import (
	"math"

	"QuantCore/internal/domain/models"
)

// Bollinger computes the volatility band pair: an SMA middle line with upper
// and lower bands mult population standard deviations away.
func Bollinger(closes []float64, window int, mult float64) models.BandSeries {
	n := len(closes)
	upper := make(models.Series, n)
	lower := make(models.Series, n)
	middle := SMA(closes, window)
	for i := window - 1; i < n; i++ {
		m := middle.At(i)
		if m == nil {
			continue
		}
		sumSq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - *m
			sumSq += d * d
		}
		sd := math.Sqrt(sumSq / float64(window))
		upper[i] = fl(*m + mult*sd)
		lower[i] = fl(*m - mult*sd)
	}
	return models.BandSeries{Upper: upper, Middle: middle, Lower: lower}
}

// ATR computes Wilder-smoothed average true range. The first value appears at
// index window (true range needs a previous close).
func ATR(s models.PriceSeries, window int) models.Series {
	n := len(s)
	out := make(models.Series, n)
	if window <= 0 || n < window+1 {
		return out
	}
	tr := trueRanges(s)
	sum := 0.0
	for i := 1; i <= window; i++ {
		sum += tr[i]
	}
	prev := sum / float64(window)
	out[window] = fl(prev)
	for i := window + 1; i < n; i++ {
		prev = (prev*float64(window-1) + tr[i]) / float64(window)
		out[i] = fl(prev)
	}
	return out
}

// trueRanges returns the per-bar true range; index 0 is unused (no prior
// close) and left at zero.
func trueRanges(s models.PriceSeries) []float64 {
	tr := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		hl := s[i].High - s[i].Low
		hc := math.Abs(s[i].High - s[i-1].Close)
		lc := math.Abs(s[i].Low - s[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

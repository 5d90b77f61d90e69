package indicators

import "QuantCore/internal/domain/models"

// Moving averages over a value column. Every function returns a series of the
// same length as its input with nil entries through the warm-up period, so
// index k of the output always lines up with bar k of the source series.

func fl(v float64) *float64 { return &v }

// SMA computes a simple moving average. Entries before index window-1 are nil.
func SMA(values []float64, window int) models.Series {
	out := make(models.Series, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = fl(sum / float64(window))
		}
	}
	return out
}

// EMA computes an exponential moving average seeded with the SMA of the first
// window values, multiplier 2/(window+1). The seed appears at index window-1.
func EMA(values []float64, window int) models.Series {
	out := make(models.Series, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	seed := 0.0
	for i := 0; i < window; i++ {
		seed += values[i]
	}
	prev := seed / float64(window)
	out[window-1] = fl(prev)
	k := 2.0 / float64(window+1)
	for i := window; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = fl(prev)
	}
	return out
}

// emaOver runs the same seeded EMA over an already nil-padded series. The
// first window consecutive non-nil inputs form the seed.
func emaOver(values models.Series, window int) models.Series {
	out := make(models.Series, len(values))
	if window <= 0 {
		return out
	}
	start := -1
	for i, v := range values {
		if v != nil {
			start = i
			break
		}
	}
	if start < 0 || len(values)-start < window {
		return out
	}
	seed := 0.0
	for i := start; i < start+window; i++ {
		seed += *values[i]
	}
	prev := seed / float64(window)
	out[start+window-1] = fl(prev)
	k := 2.0 / float64(window+1)
	for i := start + window; i < len(values); i++ {
		prev = (*values[i]-prev)*k + prev
		out[i] = fl(prev)
	}
	return out
}

package indicators

import "QuantCore/internal/domain/models"

// OBV computes cumulative on-balance volume: a single forward pass starting at
// zero, adding volume when the close rises versus the previous bar, subtracting
// when it falls, unchanged on equal closes. Zero-volume bars change nothing.
// There is no warm-up; every index is defined.
func OBV(s models.PriceSeries) models.Series {
	out := make(models.Series, len(s))
	if len(s) == 0 {
		return out
	}
	cum := 0.0
	out[0] = fl(0)
	for i := 1; i < len(s); i++ {
		switch {
		case s[i].Close > s[i-1].Close:
			cum += float64(s[i].Volume)
		case s[i].Close < s[i-1].Close:
			cum -= float64(s[i].Volume)
		}
		out[i] = fl(cum)
	}
	return out
}

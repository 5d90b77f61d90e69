package indicators

import (
	"math"

	"QuantCore/internal/domain/models"
)

// DirectionalIndex computes the trend-strength triple: +DI and -DI from
// Wilder-smoothed directional movement versus true range, and ADX as the
// Wilder average of the DX spread. DI lines appear at index window, ADX at
// index 2*window.
func DirectionalIndex(s models.PriceSeries, window int) models.DirectionalSeries {
	n := len(s)
	adx := make(models.Series, n)
	plus := make(models.Series, n)
	minus := make(models.Series, n)
	if window <= 0 || n < window+1 {
		return models.DirectionalSeries{ADX: adx, PlusDI: plus, MinusDI: minus}
	}

	tr := trueRanges(s)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := s[i].High - s[i-1].High
		down := s[i-1].Low - s[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	// Wilder running sums, seeded over the first window changes.
	smTR, smPlus, smMinus := 0.0, 0.0, 0.0
	for i := 1; i <= window; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dx := make([]float64, n)
	di := func(i int) (float64, float64) {
		if smTR == 0 {
			return 0, 0
		}
		return 100 * smPlus / smTR, 100 * smMinus / smTR
	}
	p, m := di(window)
	plus[window] = fl(p)
	minus[window] = fl(m)
	dx[window] = dxValue(p, m)

	for i := window + 1; i < n; i++ {
		smTR = smTR - smTR/float64(window) + tr[i]
		smPlus = smPlus - smPlus/float64(window) + plusDM[i]
		smMinus = smMinus - smMinus/float64(window) + minusDM[i]
		p, m = di(i)
		plus[i] = fl(p)
		minus[i] = fl(m)
		dx[i] = dxValue(p, m)
	}

	// ADX: average of the window DX values ending at index 2*window,
	// Wilder-smoothed after. The seed skips dx[window], whose DI pair is
	// still settling.
	if n >= 2*window+1 {
		sum := 0.0
		for i := window + 1; i <= 2*window; i++ {
			sum += dx[i]
		}
		prev := sum / float64(window)
		adx[2*window] = fl(prev)
		for i := 2*window + 1; i < n; i++ {
			prev = (prev*float64(window-1) + dx[i]) / float64(window)
			adx[i] = fl(prev)
		}
	}
	return models.DirectionalSeries{ADX: adx, PlusDI: plus, MinusDI: minus}
}

func dxValue(plusDI, minusDI float64) float64 {
	sum := plusDI + minusDI
	if sum == 0 {
		return 0
	}
	return 100 * math.Abs(plusDI-minusDI) / sum
}

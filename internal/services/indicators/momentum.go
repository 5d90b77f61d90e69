package indicators

import "QuantCore/internal/domain/models"

// RSI computes the bounded 0-100 oscillator from Wilder-smoothed average gains
// and losses. The first value appears at index window (it needs window price
// changes). A series with no losses in the window reads 100.
func RSI(closes []float64, window int) models.Series {
	out := make(models.Series, len(closes))
	if window <= 0 || len(closes) < window+1 {
		return out
	}
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = fl(rsiValue(avgGain, avgLoss))

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = fl(rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// MACD computes the trend oscillator: fast EMA minus slow EMA, a signal EMA of
// that difference, and their histogram. The line starts at index slow-1, the
// signal and histogram once signal-1 further values accumulate.
func MACD(closes []float64, fast, slow, signal int) models.MACDSeries {
	n := len(closes)
	line := make(models.Series, n)
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	for i := 0; i < n; i++ {
		f, s := fastEMA.At(i), slowEMA.At(i)
		if f != nil && s != nil {
			line[i] = fl(*f - *s)
		}
	}
	sig := emaOver(line, signal)
	hist := make(models.Series, n)
	for i := 0; i < n; i++ {
		l, s := line.At(i), sig.At(i)
		if l != nil && s != nil {
			hist[i] = fl(*l - *s)
		}
	}
	return models.MACDSeries{Line: line, Signal: sig, Hist: hist}
}

// Stochastic computes raw %K over a rolling high/low window and %D as an SMA
// of %K. A flat window (high == low) reads the neutral 50.
func Stochastic(s models.PriceSeries, kWindow, dWindow int) models.StochSeries {
	n := len(s)
	k := make(models.Series, n)
	d := make(models.Series, n)
	if kWindow <= 0 || dWindow <= 0 || n < kWindow {
		return models.StochSeries{K: k, D: d}
	}
	for i := kWindow - 1; i < n; i++ {
		hh, ll := s[i].High, s[i].Low
		for j := i - kWindow + 1; j < i; j++ {
			if s[j].High > hh {
				hh = s[j].High
			}
			if s[j].Low < ll {
				ll = s[j].Low
			}
		}
		if hh == ll {
			k[i] = fl(50)
			continue
		}
		k[i] = fl((s[i].Close - ll) / (hh - ll) * 100)
	}
	// %D: simple average of the last dWindow defined %K values.
	for i := kWindow - 1 + dWindow - 1; i < n; i++ {
		sum := 0.0
		for j := i - dWindow + 1; j <= i; j++ {
			sum += *k[j]
		}
		d[i] = fl(sum / float64(dWindow))
	}
	return models.StochSeries{K: k, D: d}
}

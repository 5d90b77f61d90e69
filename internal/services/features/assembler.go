// Package features turns raw bars and indicator series into the named feature
// vector. One assembler serves all three alignment modes; the AnchorSet alone
// decides which indices are read, so a field added here exists in every mode.
package features

import (
	"fmt"
	"sort"

	"QuantCore/internal/domain/models"
	"QuantCore/internal/services/indicators"
)

// Fixed oscillator thresholds. Flags are emitted against these, not against
// anything configurable, so rule presets stay comparable across deployments.
const (
	rsiOversold    = 30.0
	rsiOverbought  = 70.0
	rsiNeutralLow  = 40.0
	rsiNeutralHigh = 60.0

	stochOversold   = 20.0
	stochOverbought = 80.0

	adxStrongTrend = 25.0

	highVolumeRatio = 1.5
)

// Assemble produces the complete feature vector for a resolved AnchorSet. It
// is total: every field resolves to a value or nil, never an error or a NaN.
// The anchors must come from the resolver; Assemble trusts their bounds.
func Assemble(s models.PriceSeries, set *models.IndicatorSet, p indicators.Params, a models.AnchorSet) *models.FeatureVector {
	b := a.BasisIndex
	prev := a.BasisPrevIndex
	bar := s[b]
	f := make(map[string]*float64, 96)

	// Basis price fields.
	f["open"] = price(bar.Open)
	f["high"] = price(bar.High)
	f["low"] = price(bar.Low)
	f["close"] = price(bar.Close)
	vol := float64(bar.Volume)
	f["volume"] = &vol

	// Candle geometry. Flat bars resolve to the documented neutral values.
	barRange := bar.High - bar.Low
	if barRange == 0 {
		f["closePosition"] = ratio(0.5)
		f["bodyRangeRatio"] = ratio(0)
		f["upperWickRatio"] = ratio(0)
		f["lowerWickRatio"] = ratio(0)
	} else {
		body := bar.Close - bar.Open
		if body < 0 {
			body = -body
		}
		upperWick := bar.High - maxF(bar.Open, bar.Close)
		lowerWick := minF(bar.Open, bar.Close) - bar.Low
		f["closePosition"] = ratio((bar.Close - bar.Low) / barRange)
		f["bodyRangeRatio"] = ratio(body / barRange)
		f["upperWickRatio"] = ratio(upperWick / barRange)
		f["lowerWickRatio"] = ratio(lowerWick / barRange)
	}

	// Change versus the preceding close.
	prevClose := s[b-1].Close
	f["priceChange"] = price(bar.Close - prevClose)
	f["priceChangePct"] = ratio((bar.Close - prevClose) / prevClose * 100)

	// Moving-average family.
	smaWindows := append([]int(nil), p.SMAWindows...)
	sort.Ints(smaWindows)
	for _, w := range smaWindows {
		addMA(f, fmt.Sprintf("sma%d", w), set.SMA[w].At(b), bar.Close)
	}
	for _, w := range p.EMAWindows {
		addMA(f, fmt.Sprintf("ema%d", w), set.EMA[w].At(b), bar.Close)
	}
	for i := 0; i+1 < len(smaWindows); i++ {
		short, long := smaWindows[i], smaWindows[i+1]
		f[fmt.Sprintf("sma%dAboveSma%d", short, long)] =
			aboveFlag(set.SMA[short].At(b), set.SMA[long].At(b))
	}
	f[fmt.Sprintf("ema%dAboveEma%d", p.MACDFast, p.MACDSlow)] =
		aboveFlag(set.EMA[p.MACDFast].At(b), set.EMA[p.MACDSlow].At(b))

	// Oscillator family.
	rsi := set.RSI.At(b)
	f["rsi"] = roundP(rsi)
	f["rsiOversold"] = thresholdFlag(rsi, func(v float64) bool { return v < rsiOversold })
	f["rsiOverbought"] = thresholdFlag(rsi, func(v float64) bool { return v > rsiOverbought })
	f["rsiNeutral"] = thresholdFlag(rsi, func(v float64) bool { return v >= rsiNeutralLow && v <= rsiNeutralHigh })
	f["rsiDelta"] = delta(set.RSI, b, prev)

	// Trend-oscillator family.
	line, sig, hist := set.MACD.Line.At(b), set.MACD.Signal.At(b), set.MACD.Hist.At(b)
	f["macdLine"] = roundP(line)
	f["macdSignal"] = roundP(sig)
	f["macdHist"] = roundP(hist)
	f["macdBullish"] = aboveFlag(line, sig)
	f["macdPositive"] = thresholdFlag(line, func(v float64) bool { return v > 0 })
	f["macdHistDelta"] = delta(set.MACD.Hist, b, prev)

	// Volatility-band family.
	upper, middle, lower := set.Bands.Upper.At(b), set.Bands.Middle.At(b), set.Bands.Lower.At(b)
	f["bbUpper"] = roundP(upper)
	f["bbMiddle"] = roundP(middle)
	f["bbLower"] = roundP(lower)
	if upper != nil && middle != nil && lower != nil && *middle != 0 {
		f["bbWidthPct"] = ratio((*upper - *lower) / *middle * 100)
	} else {
		f["bbWidthPct"] = nil
	}
	f["closeAboveUpperBand"] = thresholdFlag(upper, func(v float64) bool { return bar.Close > v })
	f["closeBelowLowerBand"] = thresholdFlag(lower, func(v float64) bool { return bar.Close < v })

	// Stochastic family.
	k, d := set.Stoch.K.At(b), set.Stoch.D.At(b)
	f["stochK"] = roundP(k)
	f["stochD"] = roundP(d)
	f["stochOversold"] = thresholdFlag(k, func(v float64) bool { return v < stochOversold })
	f["stochOverbought"] = thresholdFlag(k, func(v float64) bool { return v > stochOverbought })
	f["stochBullishCross"] = aboveFlag(k, d)
	f["stochKDelta"] = delta(set.Stoch.K, b, prev)

	// Trend-strength family.
	adx, plusDI, minusDI := set.Dir.ADX.At(b), set.Dir.PlusDI.At(b), set.Dir.MinusDI.At(b)
	f["adx"] = roundP(adx)
	f["plusDi"] = roundP(plusDI)
	f["minusDi"] = roundP(minusDI)
	f["adxStrongTrend"] = thresholdFlag(adx, func(v float64) bool { return v > adxStrongTrend })
	f["adxBullishDi"] = aboveFlag(plusDI, minusDI)
	f["adxDelta"] = delta(set.Dir.ADX, b, prev)

	// Volatility-range family.
	atr := set.ATR.At(b)
	f["atr"] = roundP(atr)
	if atr != nil {
		f["atrPct"] = ratio(*atr / bar.Close * 100)
	} else {
		f["atrPct"] = nil
	}

	// Volume-flow family. OBV has no warm-up, both values always exist.
	obv, obvPrev := set.OBV.At(b), set.OBV.At(prev)
	f["obv"] = roundP(obv)
	f["obvTrendUp"] = aboveFlag(obv, obvPrev)

	// Volume-average family.
	volSMA := set.VolumeSMA.At(b)
	f["volumeSma"] = roundP(volSMA)
	if volSMA != nil && *volSMA > 0 {
		r := vol / *volSMA
		f["volumeRatio"] = ratio(r)
		f["highVolume"] = flag(r > highVolumeRatio)
	} else {
		f["volumeRatio"] = nil
		f["highVolume"] = nil
	}

	// Gap family: the basis open against the close of the bar immediately
	// preceding the basis, in every mode.
	f["gapUp"] = flag(bar.Open > prevClose)
	f["gapDown"] = flag(bar.Open < prevClose)
	f["gapPct"] = ratio((bar.Open - prevClose) / prevClose * 100)

	// Returns strictly from bars at or before the basis.
	for _, days := range []int{1, 3, 5} {
		name := fmt.Sprintf("return%dd", days)
		if b-days < 0 {
			f[name] = nil
			continue
		}
		base := s[b-days].Close
		f[name] = ratio((bar.Close - base) / base * 100)
	}

	fv := &models.FeatureVector{
		Mode:      a.Mode,
		BasisDate: s[b].Date.Format("2006-01-02"),
		Features:  f,
	}
	if a.Mode == models.ModeHistorical {
		t := s[a.TargetIndex]
		fv.TargetDate = t.Date.Format("2006-01-02")
		fv.Actual = &models.ActualData{
			Date:      t.Date.Format("2006-01-02"),
			Open:      roundTo(t.Open, pricePlaces),
			High:      roundTo(t.High, pricePlaces),
			Low:       roundTo(t.Low, pricePlaces),
			Close:     roundTo(t.Close, pricePlaces),
			Volume:    t.Volume,
			Change:    roundTo(t.Close-bar.Close, pricePlaces),
			ChangePct: roundTo((t.Close-bar.Close)/bar.Close*100, ratioPlaces),
		}
	}
	return fv
}

// addMA emits the value, price-above flag, and percent distance for one
// moving average. All three are nil while the average is warming up.
func addMA(f map[string]*float64, name string, ma *float64, close float64) {
	title := upperFirst(name)
	if ma == nil {
		f[name] = nil
		f["priceAbove"+title] = nil
		f["distFrom"+title] = nil
		return
	}
	f[name] = price(*ma)
	f["priceAbove"+title] = flag(close > *ma)
	f["distFrom"+title] = ratio((close - *ma) / *ma * 100)
}

// delta is X[basis]-X[prev], nil when either side is still warming up.
func delta(x models.Series, basis, prev int) *float64 {
	a, b := x.At(basis), x.At(prev)
	if a == nil || b == nil {
		return nil
	}
	return ratio(*a - *b)
}

// aboveFlag is 1 when a > b, nil when either operand is nil.
func aboveFlag(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return flag(*a > *b)
}

// thresholdFlag applies a predicate to a possibly-nil value.
func thresholdFlag(v *float64, pred func(float64) bool) *float64 {
	if v == nil {
		return nil
	}
	return flag(pred(*v))
}

// roundP rounds a possibly-nil indicator value to price precision.
func roundP(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return price(*v)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

package models

// Series is an index-aligned indicator output: entry k corresponds to bar k of
// the PriceSeries it was computed from, nil until the warm-up period passes.
type Series []*float64

// At returns the value at index i, or nil when i is out of range or the value
// is still inside the warm-up period.
func (s Series) At(i int) *float64 {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// MACDSeries is the trend oscillator triple: fast/slow EMA difference, its
// signal EMA, and their histogram.
type MACDSeries struct {
	Line   Series
	Signal Series
	Hist   Series
}

// BandSeries is a volatility channel around a moving average.
type BandSeries struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// StochSeries holds raw %K and its smoothed %D line.
type StochSeries struct {
	K Series
	D Series
}

// DirectionalSeries is the trend-strength triple.
type DirectionalSeries struct {
	ADX     Series
	PlusDI  Series
	MinusDI Series
}

// IndicatorSet is everything the assembler reads. Each member is index-aligned
// with the source series, so reading any member at the basis index only ever
// sees data from bars at or before it.
type IndicatorSet struct {
	SMA       map[int]Series // keyed by window
	EMA       map[int]Series
	RSI       Series
	MACD      MACDSeries
	Bands     BandSeries
	Stoch     StochSeries
	Dir       DirectionalSeries
	ATR       Series
	OBV       Series
	VolumeSMA Series
}

package indicators

import "QuantCore/internal/domain/models"

// Params carries every window and multiplier the engine computes with. The
// defaults match the classic daily-bar settings; configuration can override
// them without touching any computation.
type Params struct {
	SMAWindows []int
	EMAWindows []int
	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BollWindow int
	BollMult   float64
	StochK     int
	StochD     int
	DirWindow  int
	ATRWindow  int
	VolumeSMA  int
}

// DefaultParams returns the standard daily-bar parameter set.
func DefaultParams() Params {
	return Params{
		SMAWindows: []int{5, 10, 20, 50, 100, 200},
		EMAWindows: []int{9, 12, 26},
		RSIWindow:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BollWindow: 20,
		BollMult:   2.0,
		StochK:     14,
		StochD:     3,
		DirWindow:  14,
		ATRWindow:  14,
		VolumeSMA:  20,
	}
}

// ComputeSet runs every indicator family once over the series. All outputs are
// index-aligned with the input; reading them at any index k uses only bars
// 0..k, so a set computed over the full history is safe to read at a historical
// basis index.
func ComputeSet(s models.PriceSeries, p Params) *models.IndicatorSet {
	closes := s.Closes()
	volumes := s.Volumes()

	set := &models.IndicatorSet{
		SMA: make(map[int]models.Series, len(p.SMAWindows)),
		EMA: make(map[int]models.Series, len(p.EMAWindows)),
	}
	for _, w := range p.SMAWindows {
		set.SMA[w] = SMA(closes, w)
	}
	for _, w := range p.EMAWindows {
		set.EMA[w] = EMA(closes, w)
	}
	set.RSI = RSI(closes, p.RSIWindow)
	set.MACD = MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	set.Bands = Bollinger(closes, p.BollWindow, p.BollMult)
	set.Stoch = Stochastic(s, p.StochK, p.StochD)
	set.Dir = DirectionalIndex(s, p.DirWindow)
	set.ATR = ATR(s, p.ATRWindow)
	set.OBV = OBV(s)
	set.VolumeSMA = SMA(volumes, p.VolumeSMA)
	return set
}

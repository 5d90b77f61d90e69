package indicators

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"QuantCore/internal/domain/models"

	talib "github.com/markcheno/go-talib"
)

func syntheticSeries(closes []float64) models.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: int64(1000 + 10*i),
		}
	}
	return s
}

func randomWalk(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	price := 100.0
	for i := range closes {
		price += r.Float64()*4 - 2
		if price < 10 {
			price = 10
		}
		closes[i] = price
	}
	return closes
}

func rising(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func TestSMARisingSeries(t *testing.T) {
	out := SMA(rising(60), 5)
	for i := 0; i < 4; i++ {
		if out[i] != nil {
			t.Fatalf("index %d: expected nil during warm-up, got %v", i, *out[i])
		}
	}
	last := out[59]
	if last == nil {
		t.Fatal("expected value at last index")
	}
	if *last != 157 {
		t.Fatalf("sma5 at last index = %v, want 157", *last)
	}
}

func TestSMAShortInput(t *testing.T) {
	out := SMA(rising(30), 50)
	for i, v := range out {
		if v != nil {
			t.Fatalf("index %d: expected nil for window longer than series", i)
		}
	}
}

func TestEMASeedAndRecursion(t *testing.T) {
	values := []float64{10, 11, 12, 13, 14}
	out := EMA(values, 3)
	if out[0] != nil || out[1] != nil {
		t.Fatal("expected nil before seed index")
	}
	if out[2] == nil || *out[2] != 11 {
		t.Fatalf("seed = %v, want 11", out[2])
	}
	// multiplier 2/(3+1) = 0.5: 11 + 0.5*(13-11) = 12, then 12 + 0.5*(14-12) = 13
	if *out[3] != 12 || *out[4] != 13 {
		t.Fatalf("ema tail = %v, %v, want 12, 13", *out[3], *out[4])
	}
}

func TestRSIMonotonicSeries(t *testing.T) {
	out := RSI(rising(60), 14)
	for i := 0; i < 14; i++ {
		if out[i] != nil {
			t.Fatalf("index %d: expected nil during warm-up", i)
		}
	}
	last := out[59]
	if last == nil {
		t.Fatal("expected value at last index")
	}
	if *last != 100 {
		t.Fatalf("rsi with no losses = %v, want 100", *last)
	}
}

func TestRSIBounded(t *testing.T) {
	out := RSI(randomWalk(200, 7), 14)
	for i, v := range out {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 100 {
			t.Fatalf("index %d: rsi %v outside [0,100]", i, *v)
		}
	}
}

func TestMACDWarmup(t *testing.T) {
	closes := randomWalk(80, 11)
	m := MACD(closes, 12, 26, 9)
	if m.Line[24] != nil {
		t.Fatal("macd line defined before slow warm-up")
	}
	if m.Line[25] == nil {
		t.Fatal("macd line missing at slow warm-up index")
	}
	if m.Signal[32] != nil {
		t.Fatal("signal defined before its warm-up")
	}
	if m.Signal[33] == nil {
		t.Fatal("signal missing after warm-up")
	}
	for i := range closes {
		l, s, h := m.Line.At(i), m.Signal.At(i), m.Hist.At(i)
		if l != nil && s != nil {
			if h == nil {
				t.Fatalf("index %d: hist nil while line and signal exist", i)
			}
			if diff := *h - (*l - *s); math.Abs(diff) > 1e-12 {
				t.Fatalf("index %d: hist != line-signal (%v)", i, diff)
			}
		}
	}
}

func TestBollingerFlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	bands := Bollinger(closes, 20, 2)
	u, m, l := bands.Upper.At(29), bands.Middle.At(29), bands.Lower.At(29)
	if u == nil || m == nil || l == nil {
		t.Fatal("expected defined bands")
	}
	if *u != 50 || *m != 50 || *l != 50 {
		t.Fatalf("flat series bands = %v/%v/%v, want 50/50/50", *u, *m, *l)
	}
}

func TestStochasticFlatWindow(t *testing.T) {
	s := syntheticSeries(make([]float64, 20))
	for i := range s {
		s[i].Open, s[i].High, s[i].Low, s[i].Close = 50, 50, 50, 50
	}
	st := Stochastic(s, 14, 3)
	k := st.K.At(19)
	if k == nil || *k != 50 {
		t.Fatalf("flat window %%K = %v, want 50", k)
	}
}

func TestStochasticBounds(t *testing.T) {
	s := syntheticSeries(randomWalk(120, 3))
	st := Stochastic(s, 14, 3)
	for i := range s {
		if v := st.K.At(i); v != nil && (*v < 0 || *v > 100) {
			t.Fatalf("index %d: %%K %v outside [0,100]", i, *v)
		}
		if v := st.D.At(i); v != nil && (*v < 0 || *v > 100) {
			t.Fatalf("index %d: %%D %v outside [0,100]", i, *v)
		}
	}
	if st.K.At(12) != nil {
		t.Fatal("%K defined before warm-up")
	}
	if st.K.At(13) == nil {
		t.Fatal("%K missing at warm-up index")
	}
	if st.D.At(14) != nil {
		t.Fatal("%D defined before warm-up")
	}
	if st.D.At(15) == nil {
		t.Fatal("%D missing at warm-up index")
	}
}

func TestATRWarmupAndPositive(t *testing.T) {
	s := syntheticSeries(randomWalk(60, 9))
	out := ATR(s, 14)
	for i := 0; i <= 13; i++ {
		if out[i] != nil {
			t.Fatalf("index %d: expected nil during warm-up", i)
		}
	}
	for i := 14; i < len(s); i++ {
		if out[i] == nil {
			t.Fatalf("index %d: expected value", i)
		}
		if *out[i] <= 0 {
			t.Fatalf("index %d: atr %v not positive", i, *out[i])
		}
	}
}

func TestOBVStartsAtZero(t *testing.T) {
	s := syntheticSeries([]float64{100, 101, 100, 100, 102})
	out := OBV(s)
	want := []float64{0, 1010, 1010 - 1020, 1010 - 1020, 1010 - 1020 + 1040}
	for i, w := range want {
		if out[i] == nil {
			t.Fatalf("index %d: obv nil", i)
		}
		if *out[i] != w {
			t.Fatalf("index %d: obv = %v, want %v", i, *out[i], w)
		}
	}
}

func TestDirectionalIndexWarmup(t *testing.T) {
	// DI needs window+1 bars, ADX needs 2*window+1. A 28-bar series has the
	// DI lines from index 14 but never an ADX value.
	short := syntheticSeries(randomWalk(28, 5))
	dir := DirectionalIndex(short, 14)
	for i := range short {
		if dir.ADX[i] != nil {
			t.Fatalf("index %d: adx defined below 2*window+1 bars", i)
		}
		defined := dir.PlusDI[i] != nil && dir.MinusDI[i] != nil
		if i < 14 && defined {
			t.Fatalf("index %d: DI defined before warm-up", i)
		}
		if i >= 14 && !defined {
			t.Fatalf("index %d: DI missing after warm-up", i)
		}
	}

	s := syntheticSeries(rising(80))
	dir = DirectionalIndex(s, 14)
	if dir.PlusDI.At(13) != nil {
		t.Fatal("+DI defined before warm-up")
	}
	if dir.PlusDI.At(14) == nil {
		t.Fatal("+DI missing at warm-up index")
	}
	if dir.ADX.At(27) != nil {
		t.Fatal("adx defined before warm-up")
	}
	adx := dir.ADX.At(28)
	if adx == nil {
		t.Fatal("adx missing at warm-up index")
	}
	if *adx < 0 || *adx > 100 {
		t.Fatalf("adx %v outside [0,100]", *adx)
	}
	p, m := dir.PlusDI.At(79), dir.MinusDI.At(79)
	if *p <= *m {
		t.Fatalf("ascending series: +DI %v should exceed -DI %v", *p, *m)
	}
}

func TestSMAAgainstTalib(t *testing.T) {
	closes := randomWalk(250, 21)
	ours := SMA(closes, 20)
	ref := talib.Sma(closes, 20)
	for i := 19; i < len(closes); i++ {
		if ours[i] == nil {
			t.Fatalf("index %d: nil after warm-up", i)
		}
		if math.Abs(*ours[i]-ref[i]) > 1e-6 {
			t.Fatalf("index %d: sma %v vs talib %v", i, *ours[i], ref[i])
		}
	}
}

func TestATRAgainstTalib(t *testing.T) {
	s := syntheticSeries(randomWalk(250, 22))
	ours := ATR(s, 14)
	ref := talib.Atr(s.Highs(), s.Lows(), s.Closes(), 14)
	for i := 14; i < len(s); i++ {
		if ours[i] == nil {
			t.Fatalf("index %d: nil after warm-up", i)
		}
		if math.Abs(*ours[i]-ref[i]) > 1e-6 {
			t.Fatalf("index %d: atr %v vs talib %v", i, *ours[i], ref[i])
		}
	}
}

func TestComputeSetShortSeries(t *testing.T) {
	s := syntheticSeries(randomWalk(25, 13))
	set := ComputeSet(s, DefaultParams())
	for i := range s {
		if set.SMA[50].At(i) != nil {
			t.Fatalf("index %d: sma50 defined on 25 bars", i)
		}
		if set.SMA[200].At(i) != nil {
			t.Fatalf("index %d: sma200 defined on 25 bars", i)
		}
		if set.Dir.ADX.At(i) != nil {
			t.Fatalf("index %d: adx defined on 25 bars", i)
		}
	}
	if set.Dir.PlusDI.At(14) == nil || set.Dir.MinusDI.At(14) == nil {
		t.Fatal("DI lines missing at their warm-up index on a short series")
	}
}

// Computing over the full series and reading index k must equal computing
// over only the first k+1 bars. Truncating the future may never change the
// past.
func TestNoLookahead(t *testing.T) {
	s := syntheticSeries(randomWalk(260, 17))
	p := DefaultParams()
	full := ComputeSet(s, p)

	for _, k := range []int{20, 29, 60, 120, 201, 259} {
		prefix := ComputeSet(s[:k+1], p)

		eq := func(name string, a, b *float64) {
			t.Helper()
			if (a == nil) != (b == nil) {
				t.Fatalf("k=%d %s: nil mismatch (full=%v prefix=%v)", k, name, a, b)
			}
			if a != nil && math.Abs(*a-*b) > 1e-9 {
				t.Fatalf("k=%d %s: %v != %v", k, name, *a, *b)
			}
		}

		for _, w := range p.SMAWindows {
			eq("sma", full.SMA[w].At(k), prefix.SMA[w].At(k))
		}
		for _, w := range p.EMAWindows {
			eq("ema", full.EMA[w].At(k), prefix.EMA[w].At(k))
		}
		eq("rsi", full.RSI.At(k), prefix.RSI.At(k))
		eq("macdLine", full.MACD.Line.At(k), prefix.MACD.Line.At(k))
		eq("macdSignal", full.MACD.Signal.At(k), prefix.MACD.Signal.At(k))
		eq("macdHist", full.MACD.Hist.At(k), prefix.MACD.Hist.At(k))
		eq("bbUpper", full.Bands.Upper.At(k), prefix.Bands.Upper.At(k))
		eq("bbMiddle", full.Bands.Middle.At(k), prefix.Bands.Middle.At(k))
		eq("bbLower", full.Bands.Lower.At(k), prefix.Bands.Lower.At(k))
		eq("stochK", full.Stoch.K.At(k), prefix.Stoch.K.At(k))
		eq("stochD", full.Stoch.D.At(k), prefix.Stoch.D.At(k))
		eq("adx", full.Dir.ADX.At(k), prefix.Dir.ADX.At(k))
		eq("plusDI", full.Dir.PlusDI.At(k), prefix.Dir.PlusDI.At(k))
		eq("minusDI", full.Dir.MinusDI.At(k), prefix.Dir.MinusDI.At(k))
		eq("atr", full.ATR.At(k), prefix.ATR.At(k))
		eq("obv", full.OBV.At(k), prefix.OBV.At(k))
		eq("volumeSma", full.VolumeSMA.At(k), prefix.VolumeSMA.At(k))
	}
}

package features

import (
	"math/rand"
	"testing"
	"time"

	"QuantCore/internal/domain/models"
	"QuantCore/internal/services/indicators"
)

func series(closes []float64) models.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = models.PriceBar{
			Date: start.AddDate(0, 0, i),
			Open: c - 0.5, High: c + 1, Low: c - 1, Close: c,
			Volume: int64(1000 + 10*i),
		}
	}
	return s
}

func walk(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += r.Float64()*4 - 2
		if price < 10 {
			price = 10
		}
		out[i] = price
	}
	return out
}

func assembleAt(t *testing.T, s models.PriceSeries, a models.AnchorSet) *models.FeatureVector {
	t.Helper()
	p := indicators.DefaultParams()
	return Assemble(s, indicators.ComputeSet(s, p), p, a)
}

func historicalAnchors(target int) models.AnchorSet {
	return models.AnchorSet{
		TargetIndex: target, BasisIndex: target - 1, BasisPrevIndex: target - 2,
		Mode: models.ModeHistorical,
	}
}

func futureAnchors(last int) models.AnchorSet {
	return models.AnchorSet{
		TargetIndex: last, BasisIndex: last, BasisPrevIndex: last - 1,
		Mode: models.ModeFutureProjection,
	}
}

func val(t *testing.T, fv *models.FeatureVector, name string) float64 {
	t.Helper()
	v, ok := fv.Features[name]
	if !ok {
		t.Fatalf("field %q absent", name)
	}
	if v == nil {
		t.Fatalf("field %q nil", name)
	}
	return *v
}

func TestAssembleGapFlags(t *testing.T) {
	s := series(walk(60, 1))
	b := 40
	s[b].Open = 110
	s[b-1].Close = 105
	fv := assembleAt(t, s, historicalAnchors(b+1))
	if got := val(t, fv, "gapUp"); got != 1 {
		t.Fatalf("gapUp = %v, want 1", got)
	}
	if got := val(t, fv, "gapDown"); got != 0 {
		t.Fatalf("gapDown = %v, want 0", got)
	}

	s[b].Open = 100
	fv = assembleAt(t, s, historicalAnchors(b+1))
	if got := val(t, fv, "gapUp"); got != 0 {
		t.Fatalf("gapUp = %v, want 0", got)
	}
	if got := val(t, fv, "gapDown"); got != 1 {
		t.Fatalf("gapDown = %v, want 1", got)
	}
}

func TestAssembleCandleGeometryBounded(t *testing.T) {
	s := series(walk(80, 2))
	fv := assembleAt(t, s, futureAnchors(79))
	cp := val(t, fv, "closePosition")
	if cp < 0 || cp > 1 {
		t.Fatalf("closePosition %v outside [0,1]", cp)
	}
	for _, name := range []string{"bodyRangeRatio", "upperWickRatio", "lowerWickRatio"} {
		if v := val(t, fv, name); v < 0 || v > 1 {
			t.Fatalf("%s = %v outside [0,1]", name, v)
		}
	}
}

func TestAssembleFlatBarDefaults(t *testing.T) {
	s := series(walk(60, 3))
	last := len(s) - 1
	s[last].Open, s[last].High, s[last].Low, s[last].Close = 100, 100, 100, 100
	fv := assembleAt(t, s, futureAnchors(last))
	if got := val(t, fv, "closePosition"); got != 0.5 {
		t.Fatalf("flat bar closePosition = %v, want 0.5", got)
	}
	for _, name := range []string{"bodyRangeRatio", "upperWickRatio", "lowerWickRatio"} {
		if got := val(t, fv, name); got != 0 {
			t.Fatalf("flat bar %s = %v, want 0", name, got)
		}
	}
}

func TestAssembleVerificationBlock(t *testing.T) {
	s := series(walk(70, 4))
	target := 50
	fv := assembleAt(t, s, historicalAnchors(target))
	if fv.Actual == nil {
		t.Fatal("historical mode must carry the verification block")
	}
	if fv.Actual.Date != s[target].Date.Format("2006-01-02") {
		t.Fatalf("actual date = %s", fv.Actual.Date)
	}
	if fv.BasisDate != s[target-1].Date.Format("2006-01-02") {
		t.Fatalf("basis date = %s", fv.BasisDate)
	}

	// Basis fields must describe the basis bar, never the target bar.
	if got := val(t, fv, "close"); got != roundTo(s[target-1].Close, pricePlaces) {
		t.Fatalf("close = %v, want basis close %v", got, s[target-1].Close)
	}
}

func TestAssembleFutureProjectionOmitsActual(t *testing.T) {
	s := series(walk(70, 5))
	fv := assembleAt(t, s, futureAnchors(69))
	if fv.Actual != nil {
		t.Fatal("future projection must not carry a verification block")
	}
	if fv.BasisDate != s[69].Date.Format("2006-01-02") {
		t.Fatalf("basis date = %s, want last bar", fv.BasisDate)
	}
}

func TestAssembleShortHistoryStillComplete(t *testing.T) {
	s := series(walk(25, 6))
	fv := assembleAt(t, s, futureAnchors(24))

	// Long windows cannot warm up on 25 bars; the fields exist but are nil.
	for _, name := range []string{"sma50", "sma100", "sma200", "adx"} {
		v, ok := fv.Features[name]
		if !ok {
			t.Fatalf("field %q absent from short-history vector", name)
		}
		if v != nil {
			t.Fatalf("field %q = %v, want nil on 25 bars", name, *v)
		}
	}
	// Short windows are fine, and the DI lines only need window+1 bars.
	for _, name := range []string{"sma5", "sma20", "plusDi", "minusDi"} {
		if fv.Features[name] == nil {
			t.Fatalf("field %q should be defined on 25 bars", name)
		}
	}
}

func TestAssembleIdempotent(t *testing.T) {
	s := series(walk(120, 7))
	a := historicalAnchors(100)
	first := assembleAt(t, s, a)
	second := assembleAt(t, s, a)
	if len(first.Features) != len(second.Features) {
		t.Fatalf("field counts differ: %d vs %d", len(first.Features), len(second.Features))
	}
	for name, v1 := range first.Features {
		v2, ok := second.Features[name]
		if !ok {
			t.Fatalf("field %q missing on second run", name)
		}
		if (v1 == nil) != (v2 == nil) {
			t.Fatalf("field %q nil mismatch", name)
		}
		if v1 != nil && *v1 != *v2 {
			t.Fatalf("field %q: %v != %v", name, *v1, *v2)
		}
	}
}

func TestAssembleDeltaConsistency(t *testing.T) {
	s := series(walk(120, 8))
	b := 100
	setFull := indicators.ComputeSet(s, indicators.DefaultParams())
	fv := assembleAt(t, s, historicalAnchors(b+1))

	rsiNow, rsiPrev := setFull.RSI.At(b), setFull.RSI.At(b-1)
	want := roundTo(*rsiNow-*rsiPrev, ratioPlaces)
	if got := val(t, fv, "rsiDelta"); got != want {
		t.Fatalf("rsiDelta = %v, want %v", got, want)
	}
}

func TestAssembleReturnFields(t *testing.T) {
	s := series(walk(60, 9))
	b := 40
	fv := assembleAt(t, s, historicalAnchors(b+1))
	base := s[b-3].Close
	want := roundTo((s[b].Close-base)/base*100, ratioPlaces)
	if got := val(t, fv, "return3d"); got != want {
		t.Fatalf("return3d = %v, want %v", got, want)
	}

	// A basis too close to the start leaves the longer returns nil.
	early := assembleAt(t, s, historicalAnchors(4))
	if early.Features["return5d"] != nil {
		t.Fatal("return5d should be nil when the basis has fewer than 5 prior bars")
	}
	if early.Features["return1d"] == nil {
		t.Fatal("return1d should be defined at basis index 3")
	}
}

func TestAssembleVolumeFields(t *testing.T) {
	s := series(walk(60, 10))
	fv := assembleAt(t, s, futureAnchors(59))
	ratio := val(t, fv, "volumeRatio")
	high := val(t, fv, "highVolume")
	if ratio > 1.5 && high != 1 {
		t.Fatalf("highVolume = %v with ratio %v", high, ratio)
	}
	if ratio <= 1.5 && high != 0 {
		t.Fatalf("highVolume = %v with ratio %v", high, ratio)
	}
}

func TestAssembleModeLabel(t *testing.T) {
	s := series(walk(60, 11))
	last := len(s) - 1
	intraday := models.AnchorSet{
		TargetIndex: last, BasisIndex: last, BasisPrevIndex: last - 1,
		Mode: models.ModeIntraday,
	}
	fv := assembleAt(t, s, intraday)
	if fv.Mode != models.ModeIntraday {
		t.Fatalf("mode = %s", fv.Mode)
	}
	if fv.Actual != nil {
		t.Fatal("intraday mode must not carry a verification block")
	}
}

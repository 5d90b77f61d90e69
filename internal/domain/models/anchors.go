package models

// Mode identifies which temporal alignment produced an AnchorSet.
type Mode string

const (
	// ModeHistorical predicts a day that already has a finalized bar; the basis
	// is the strictly preceding trading day and the target bar is kept aside
	// for verification only.
	ModeHistorical Mode = "historical"

	// ModeFutureProjection predicts a day beyond the last available bar; the
	// last finalized bar is the basis and there is no target bar.
	ModeFutureProjection Mode = "future_projection"

	// ModeIntraday reads today's partial bar as the live basis while deltas
	// compare against yesterday's finalized values.
	ModeIntraday Mode = "intraday"
)

// AnchorSet pins the indices the assembler may read. BasisIndex is the bar
// whose values feed every predictive field, BasisPrevIndex supplies delta
// baselines, TargetIndex is the day being predicted (equal to BasisIndex
// outside historical mode).
type AnchorSet struct {
	TargetIndex    int
	BasisIndex     int
	BasisPrevIndex int
	Mode           Mode
}

// Valid reports whether the anchors satisfy the ordering and bounds invariants
// for a series of n bars.
func (a AnchorSet) Valid(n int) bool {
	return a.BasisIndex >= 2 &&
		a.BasisPrevIndex >= 0 &&
		a.BasisPrevIndex < a.BasisIndex &&
		a.BasisIndex <= a.TargetIndex &&
		a.TargetIndex < n
}

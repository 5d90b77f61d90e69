// Package align selects which bars of a price series are authoritative for a
// feature computation: the basis bar feeding predictive fields, the prior bar
// feeding delta baselines, and (historical mode) the target bar being
// predicted. Nothing downstream may read an index the resolver did not pin.
package align

import (
	"fmt"
	"time"

	"QuantCore/internal/domain/models"
)

// InsufficientHistoryError is the only failure the engine surfaces: the
// anchors could not be resolved because the series is too short or the
// requested date lies before it.
type InsufficientHistoryError struct {
	Reason string
}

func (e *InsufficientHistoryError) Error() string {
	return "insufficient history: " + e.Reason
}

// minBasisIndex guarantees delta baselines and multi-day returns have at least
// two finalized bars behind the basis.
const minBasisIndex = 2

// Resolve picks anchors for a requested target date.
//
// A date beyond the last bar selects future-projection mode: the last bar
// doubles as basis and target, and no verification block will exist. A date
// with a bar at or after it (the next trading day absorbs weekends and
// holidays; a deliberate policy, not an approximation) selects historical
// mode with the strictly preceding trading day as basis.
func Resolve(s models.PriceSeries, targetDate time.Time) (models.AnchorSet, error) {
	if len(s) == 0 {
		return models.AnchorSet{}, &InsufficientHistoryError{Reason: "empty price series"}
	}
	day := targetDate.Truncate(24 * time.Hour)
	last := s.LastIndex()

	if day.After(s[last].Date) {
		anchors := models.AnchorSet{
			TargetIndex:    last,
			BasisIndex:     last,
			BasisPrevIndex: last - 1,
			Mode:           models.ModeFutureProjection,
		}
		return checked(anchors, len(s))
	}

	if day.Before(s[0].Date) {
		return models.AnchorSet{}, &InsufficientHistoryError{
			Reason: fmt.Sprintf("requested date %s precedes earliest bar %s",
				day.Format("2006-01-02"), s[0].Date.Format("2006-01-02")),
		}
	}

	target := -1
	for i, b := range s {
		if !b.Date.Before(day) {
			target = i
			break
		}
	}
	anchors := models.AnchorSet{
		TargetIndex:    target,
		BasisIndex:     target - 1,
		BasisPrevIndex: target - 2,
		Mode:           models.ModeHistorical,
	}
	return checked(anchors, len(s))
}

// ResolveFuture pins the last finalized bar as both basis and target for a
// next-day projection, regardless of the calendar date being asked about.
func ResolveFuture(s models.PriceSeries) (models.AnchorSet, error) {
	if len(s) == 0 {
		return models.AnchorSet{}, &InsufficientHistoryError{Reason: "empty price series"}
	}
	last := s.LastIndex()
	anchors := models.AnchorSet{
		TargetIndex:    last,
		BasisIndex:     last,
		BasisPrevIndex: last - 1,
		Mode:           models.ModeFutureProjection,
	}
	return checked(anchors, len(s))
}

// ResolveIntraday pins today's partial bar as both basis and target. Delta
// fields compare against yesterday's finalized values.
func ResolveIntraday(s models.PriceSeries) (models.AnchorSet, error) {
	if len(s) == 0 {
		return models.AnchorSet{}, &InsufficientHistoryError{Reason: "empty price series"}
	}
	last := s.LastIndex()
	anchors := models.AnchorSet{
		TargetIndex:    last,
		BasisIndex:     last,
		BasisPrevIndex: last - 1,
		Mode:           models.ModeIntraday,
	}
	return checked(anchors, len(s))
}

func checked(a models.AnchorSet, n int) (models.AnchorSet, error) {
	if a.BasisIndex < minBasisIndex || a.BasisPrevIndex < 0 {
		return models.AnchorSet{}, &InsufficientHistoryError{
			Reason: fmt.Sprintf("need at least %d bars before the basis, basis index is %d", minBasisIndex, a.BasisIndex),
		}
	}
	if !a.Valid(n) {
		return models.AnchorSet{}, &InsufficientHistoryError{
			Reason: fmt.Sprintf("anchor indices out of bounds for %d bars", n),
		}
	}
	return a, nil
}

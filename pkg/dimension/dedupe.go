package dimension

import (
	"math"

	"github.com/drawforge/drawforge/pkg/config"
)

type seenValue struct {
	value float64
	view  config.ViewName
}

// DedupeState tracks every (family, value, view) tuple rendered so
// far, used by both the auto-chain engine (cross-view dedupe) and the
// plan-driven engine (dedupe against auto dimensions) per §4.G.
type DedupeState struct {
	seen map[string][]seenValue
}

// NewDedupeState returns an empty dedupe tracker.
func NewDedupeState() *DedupeState {
	return &DedupeState{seen: map[string][]seenValue{}}
}

// CheckAndRecord reports whether value is within max(tol, 0.002*|value|)
// of a previously recorded value in the same family; if not, it
// records the new value under view and returns false. conflictView
// names the view of the earlier match when dup is true.
func (d *DedupeState) CheckAndRecord(family string, value float64, view config.ViewName, tol float64) (dup bool, conflictView config.ViewName) {
	thresh := math.Max(tol, 0.002*math.Abs(value))
	for _, e := range d.seen[family] {
		if math.Abs(e.value-value) <= thresh {
			return true, e.view
		}
	}
	d.seen[family] = append(d.seen[family], seenValue{value: value, view: view})
	return false, ""
}

// Contains reports whether value matches any previously recorded value
// in family, without recording a new entry (used by the plan-driven
// engine to check against auto dimensions without polluting state).
func (d *DedupeState) Contains(family string, value float64, tol float64) bool {
	thresh := math.Max(tol, 0.002*math.Abs(value))
	for _, e := range d.seen[family] {
		if math.Abs(e.value-value) <= thresh {
			return true
		}
	}
	return false
}

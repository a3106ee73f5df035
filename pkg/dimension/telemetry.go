package dimension

import (
	"fmt"

	"github.com/drawforge/drawforge/pkg/config"
)

// Record is one telemetry entry: a dimension that was emitted, or a
// reason it was skipped (dedupe match, too-short segment, etc).
type Record struct {
	DimID           string
	Family          string // linear_h | linear_v | diameter | radius, or a delegated plan intent's style name
	Value           float64
	View            config.ViewName
	DrawingObjectID string
	Skipped         bool
	Reason          string
}

// Telemetry accumulates every dimension decision made during
// rendering, used for cross-view dedupe auditing and for the
// "dedupe_match record is present in telemetry" property (§8 item 8).
type Telemetry struct {
	Records  []Record
	counters map[config.ViewName]int
}

// NewTelemetry returns an empty telemetry log.
func NewTelemetry() *Telemetry {
	return &Telemetry{counters: map[config.ViewName]int{}}
}

// NextID returns the next stable auto_{view}_{NNN} dimension id for a view.
func (t *Telemetry) NextID(view config.ViewName) string {
	t.counters[view]++
	return fmt.Sprintf("auto_%s_%03d", view, t.counters[view])
}

// Emit records a successfully rendered dimension.
func (t *Telemetry) Emit(r Record) {
	r.Skipped = false
	t.Records = append(t.Records, r)
}

// Skip records a dimension that was not rendered, with a reason.
func (t *Telemetry) Skip(r Record, reason string) {
	r.Skipped = true
	r.Reason = reason
	t.Records = append(t.Records, r)
}

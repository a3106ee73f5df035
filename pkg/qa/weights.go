// Package qa collects a fixed set of drawing-quality metrics from the
// owned svgdoc tree and converts them into a 100-point deduction score
// (§4.J), one function per metric, with weights and thresholds matching
// the reference qa_scorer.
package qa

// Weights is the fixed per-metric deduction table (§4.J).
var Weights = map[string]int{
	"iso_hidden_count":   5,
	"overflow_count":     10,
	"text_overlap_pairs": 2,
	"dim_overlap_pairs":  2,
	"notes_overflow":     15,
	"gdt_unanchored":     3,
	"dense_iso":          5,
	"stroke_violations":  1,
	"float_precision":    1,
}

// DenseISOThreshold is the path count above which the ISO cell is
// flagged dense. Deliberately distinct from pkg/view's pre-render
// SmoothVisibleEdgeThreshold and pkg/postprocess's post-render
// SmoothVisiblePathThreshold (§9): this one measures total geometry
// paths inside the rendered ISO cell, for scoring rather than pruning.
const DenseISOThreshold = 800

// NotesOverflowY is the y coordinate beyond which a general-notes text
// is considered to intrude on the title block.
const NotesOverflowY = 270.0

// TextOverlapIoUThreshold and DimOverlapIoUThreshold are the
// overlap-detection sensitivities for P0 metrics 3 and 4.
const (
	TextOverlapIoUThreshold = 0.10
	DimOverlapIoUThreshold  = 0.15
)

// FloatPrecisionMinDecimals is the minimum decimal-place count a
// coordinate or path float must carry to count against float_precision.
const FloatPrecisionMinDecimals = 4

// geometryClasses is every edge-group class the overflow and
// dense-ISO metrics scan, built from the view composer's fixed style
// table so it never drifts from what's actually rendered.
var geometryClasses = buildGeometryClasses()

// hiddenClasses is the subset of geometryClasses that iso_hidden_count
// scans for.
var hiddenClasses = map[string]bool{
	"hard_hidden": true, "outer_hidden": true, "smooth_hidden": true, "iso_hidden": true,
}

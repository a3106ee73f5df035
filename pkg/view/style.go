// Package view composes one view's worth of geometry, center marks,
// symmetry axes, surface-finish symbols, GD&T frames, and the title
// block/BOM/revision furniture into the shared svgdoc tree (§4.H),
// with sorted deterministic iteration and a helper-per-concern layout
// bridging svgo's immediate-mode canvas into the owned svgdoc tree.
package view

import "github.com/drawforge/drawforge/pkg/kernel"

// EdgeStyle is one row of the fixed ISO-128 stroke table (§4.H).
type EdgeStyle struct {
	Class       string
	Stroke      string
	StrokeWidth float64
	Dash        string // stroke-dasharray, empty for solid
}

// EdgeStyles is keyed by edge-group index, in the fixed back-to-front
// render order of kernel.RenderOrder.
var EdgeStyles = map[kernel.EdgeGroupIndex]EdgeStyle{
	kernel.GroupHardVisible:   {"hard_visible", "#000000", 0.5, ""},
	kernel.GroupHardHidden:    {"hard_hidden", "#000000", 0.35, "2,1.5"},
	kernel.GroupOuterVisible:  {"outer_visible", "#000000", 0.5, ""},
	kernel.GroupOuterHidden:   {"outer_hidden", "#000000", 0.35, "2,1.5"},
	kernel.GroupSmoothVisible: {"smooth_visible", "#000000", 0.35, ""},
	kernel.GroupSmoothHidden:  {"smooth_hidden", "#000000", 0.25, "2,1.5"},
	kernel.GroupISOVisible:    {"iso_visible", "#000000", 0.35, ""},
	kernel.GroupISOHidden:     {"iso_hidden", "#000000", 0.25, "2,1.5"},
}

// ISO simplification thresholds (§4.H / open question in §9: not
// unified with the post-processor's own 600-path threshold).
const (
	SmoothVisibleEdgeThreshold = 50
	CenterMarkGridMM           = 0.5
	CenterMarkArmLength        = 4.0
	CenterMarkInset            = 3.0
	SymmetryTolPercent         = 0.01
	SymmetryMatchRatio         = 0.80
)

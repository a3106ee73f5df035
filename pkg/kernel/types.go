// Package kernel defines the types the drawing compiler consumes from
// the external 3D-to-2D projection layer (§6 "Kernel interface
// (consumed)"). The kernel itself — solid construction, HLR projection,
// FEM — lives outside this module's scope.
package kernel

import "github.com/drawforge/drawforge/pkg/config"

// Point is a 2D coordinate in projection (u, v) space.
type Point struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Circ is a circle found by the projection layer, center + radius in
// (u, v) space.
type Circ struct {
	CU float64 `json:"cu"`
	CV float64 `json:"cv"`
	R  float64 `json:"r"`
}

// Edge is either a polyline or a circle. Exactly one of Pts/Circ is set.
type Edge struct {
	Pts  []Point `json:"pts,omitempty"`
	Circ *Circ   `json:"circ,omitempty"`
}

// IsCircle reports whether this edge is a circle primitive.
func (e Edge) IsCircle() bool { return e.Circ != nil }

// EdgeGroupIndex enumerates the ten ISO-128 classes returned by
// projectEx-style projection. Index 4 and 7 are reserved/unused, kept
// for positional fidelity with the source numbering.
type EdgeGroupIndex int

const (
	GroupHardVisible   EdgeGroupIndex = 0
	GroupHardHidden    EdgeGroupIndex = 1
	GroupOuterVisible  EdgeGroupIndex = 2
	GroupOuterHidden   EdgeGroupIndex = 3
	groupReserved4     EdgeGroupIndex = 4
	GroupSmoothVisible EdgeGroupIndex = 5
	GroupSmoothHidden  EdgeGroupIndex = 6
	groupReserved7     EdgeGroupIndex = 7
	GroupISOVisible    EdgeGroupIndex = 8
	GroupISOHidden     EdgeGroupIndex = 9
)

// EdgeGroupNames maps each index to its class name, used as the SVG
// group's `class` attribute.
var EdgeGroupNames = map[EdgeGroupIndex]string{
	GroupHardVisible:   "hard_visible",
	GroupHardHidden:    "hard_hidden",
	GroupOuterVisible:  "outer_visible",
	GroupOuterHidden:   "outer_hidden",
	GroupSmoothVisible: "smooth_visible",
	GroupSmoothHidden:  "smooth_hidden",
	GroupISOVisible:    "iso_visible",
	GroupISOHidden:     "iso_hidden",
}

// RenderOrder is the fixed back-to-front draw order for edge groups
// (§4.H).
var RenderOrder = []EdgeGroupIndex{
	GroupISOHidden, GroupSmoothHidden, GroupOuterHidden, GroupHardHidden,
	GroupISOVisible, GroupSmoothVisible, GroupOuterVisible, GroupHardVisible,
}

// HiddenGroups is the set of groups styled with a dashed stroke.
var HiddenGroups = map[EdgeGroupIndex]bool{
	GroupHardHidden: true, GroupOuterHidden: true,
	GroupSmoothHidden: true, GroupISOHidden: true,
}

// Arc is a 2D arc discovered per view: center, radius, a midpoint on the
// arc, and the edge group it belongs to.
type Arc struct {
	CU    float64        `json:"cu"`
	CV    float64        `json:"cv"`
	R     float64        `json:"r"`
	MU    float64        `json:"mu"`
	MV    float64        `json:"mv"`
	Group EdgeGroupIndex `json:"gi"`
}

// ViewBounds is the (u0,v0,u1,v1) bounding box of the raw projected
// geometry for one view, in model/projection units.
type ViewBounds struct {
	U0 float64 `json:"u0"`
	V0 float64 `json:"v0"`
	U1 float64 `json:"u1"`
	V1 float64 `json:"v1"`
}

// Width reports the bounds' horizontal extent.
func (b ViewBounds) Width() float64 { return b.U1 - b.U0 }

// Height reports the bounds' vertical extent.
func (b ViewBounds) Height() float64 { return b.V1 - b.V0 }

// ViewData is everything the kernel supplies for one view.
type ViewData struct {
	Name   config.ViewName           `json:"name"`
	Bounds ViewBounds                `json:"bounds"`
	Groups map[EdgeGroupIndex][]Edge `json:"groups"`
	Arcs   []Arc                     `json:"arcs,omitempty"`
}

// Scene bundles per-view kernel output for all requested views, keyed
// by view name. The view-to-uv projection map itself is a constant
// defined in pkg/view; the kernel only supplies already-projected
// coordinates.
type Scene struct {
	Views map[config.ViewName]*ViewData `json:"views"`
}

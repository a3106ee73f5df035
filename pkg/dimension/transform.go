// Package dimension implements the chain (auto), baseline/ordinate and
// plan-driven dimensioning engines (§4.G), with cross-view dedupe and
// record-as-you-go telemetry in a structured-result style.
package dimension

import "github.com/drawforge/drawforge/pkg/config"

// Dimensioning constants (§4.G), scaled by the configured style.
const (
	ExtensionGap       = 2.0
	DimLineOffset      = 8.0
	ExtensionOvershoot = 1.5
	StackingPitch      = 7.0
	DiameterLeaderLen  = 6.0

	// LeaderAngleSteps is the fixed resolution of the diameter leader
	// angle search (§4.G item 2): 360/24 = 15 degrees per step.
	LeaderAngleSteps = 24
)

// Transform is the affine model(u,v) -> page(x,y) map for one view:
// u -> cx + (u-bcx)*s, v -> cy - (v-bcy)*s.
type Transform struct {
	CX, CY   float64 // page-mm cell center
	BCX, BCY float64 // model-space bounds center
	Scale    float64
}

// ToPage maps a model-space (u, v) coordinate to page mm.
func (t Transform) ToPage(u, v float64) (x, y float64) {
	x = t.CX + (u-t.BCX)*t.Scale
	y = t.CY - (v-t.BCY)*t.Scale
	return
}

// ScaleLen scales a model-space length to page mm.
func (t Transform) ScaleLen(v float64) float64 { return v * t.Scale }

// NewTransform builds the transform for a view given its kernel bounds
// and the fixed page cell it renders into.
func NewTransform(bounds [4]float64, cell config.ViewName, cellCenter [2]float64, cellW, cellH, minScale, maxScale float64) Transform {
	u0, v0, u1, v1 := bounds[0], bounds[1], bounds[2], bounds[3]
	bw, bh := u1-u0, v1-v0
	scale := maxScale
	if bw > 0 {
		if s := (cellW * 0.85) / bw; s < scale {
			scale = s
		}
	}
	if bh > 0 {
		if s := (cellH * 0.85) / bh; s < scale {
			scale = s
		}
	}
	if scale < minScale {
		scale = minScale
	}
	return Transform{
		CX: cellCenter[0], CY: cellCenter[1],
		BCX: (u0 + u1) / 2, BCY: (v0 + v1) / 2,
		Scale: scale,
	}
}

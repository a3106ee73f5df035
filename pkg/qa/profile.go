package qa

import (
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/postprocess"
)

// FromPostprocessProfile adapts a postprocess stroke profile (the one
// NormalizeStrokes enforces) into the string-keyed form
// countStrokeViolations compares against, so stroke_violations reports
// against the exact same target the post-processor already normalized
// to.
func FromPostprocessProfile(profile map[string]postprocess.StrokeSpec) map[string]StrokeLookup {
	out := make(map[string]StrokeLookup, len(profile))
	for class, spec := range profile {
		out[class] = StrokeLookup{
			Stroke:      spec.Stroke,
			StrokeWidth: geom.FormatMM(spec.StrokeWidth),
			Dash:        spec.Dash,
		}
	}
	return out
}

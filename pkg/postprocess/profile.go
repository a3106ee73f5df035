package postprocess

import (
	"strings"

	"github.com/drawforge/drawforge/pkg/view"
)

// StrokeSpec is the profile-specified stroke/width/dash for one SVG
// group class (§4.I rule 2).
type StrokeSpec struct {
	Stroke      string
	StrokeWidth float64
	Dash        string
}

// KSProfile is the default stroke profile: the edge-group styles from
// the view composer plus the fixed annotation-group entries, with a
// "dimensions-*" wildcard matching any per-view dimensions group.
var KSProfile = buildKSProfile()

func buildKSProfile() map[string]StrokeSpec {
	profile := make(map[string]StrokeSpec, len(view.EdgeStyles)+4)
	for _, style := range view.EdgeStyles {
		profile[style.Class] = StrokeSpec{style.Stroke, style.StrokeWidth, style.Dash}
	}
	profile["dimensions-*"] = StrokeSpec{"#000000", 0.25, ""}
	profile["centerlines"] = StrokeSpec{"#000000", 0.18, "6,1,1,1"}
	profile["symmetry"] = StrokeSpec{"#000000", 0.18, "6,1,1,1"}
	profile["gdt"] = StrokeSpec{"#000000", 0.25, ""}
	return profile
}

// lookupProfile resolves class against profile, falling back to any
// "prefix-*" wildcard entry whose prefix matches.
func lookupProfile(profile map[string]StrokeSpec, class string) (StrokeSpec, bool) {
	if spec, ok := profile[class]; ok {
		return spec, true
	}
	for key, spec := range profile {
		if prefix, ok := strings.CutSuffix(key, "*"); ok && strings.HasPrefix(class, prefix) {
			return spec, true
		}
	}
	return StrokeSpec{}, false
}

// Package values implements the feature-value extractor (§4.E): a
// dispatch table keyed on dimension-intent id that derives a numeric
// mm value, a confidence level, and a source tag from the config and
// feature graph.
package values

import (
	"fmt"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/feature"
)

// extractorFunc resolves a dimension intent's Feature reference to a
// numeric value. ok is false when the reference cannot be resolved
// with this intent id's semantics.
type extractorFunc func(ref string, cfg *config.Config, g *feature.Graph) (float64, bool)

// dispatch is keyed on dimension-intent id (§4.E's listed set). Ids not
// present here fall back to a generic shape/feature lookup in Extract.
var dispatch = map[string]extractorFunc{
	"OD":           shapeDiameter,
	"OD1":          shapeDiameter,
	"OD2":          shapeDiameter,
	"ID":           featureDiameter,
	"BORE_ID":      featureDiameter,
	"HOLE_DIA":     featureDiameter,
	"BOLT_DIA":     featureDiameter,
	"PCD":          boltCirclePCD,
	"THK":          shapeAxialLength,
	"TOTAL_LENGTH": shapeAxialLength,
	"WIDTH":        shapeDim(0),
	"HEIGHT":       shapeDim(1),
	"DEPTH":        shapeDim(2),
	"BASE_W":       shapeDim(0),
	"WEB_H":        shapeDim(1),
	"WALL_THK":     shellThickness,
	"CHAMFER":      chamferSize,
	"KEYWAY_W":     keywayWidth,
}

// Extract resolves one dimension intent per §4.E's policy: if the
// intent already carries value_mm, it is a user override (high
// confidence, skip extraction); otherwise the dispatch table is tried;
// otherwise the value stays unresolved and review is left to the
// caller for required intents.
func Extract(intent config.DimIntent, cfg *config.Config, g *feature.Graph) (value float64, confidence config.Confidence, source string, ok bool) {
	if intent.ValueMM != nil {
		return *intent.ValueMM, config.ConfHigh, "user_override", true
	}

	fn, known := dispatch[intent.ID]
	if !known {
		fn = genericLookup
	}
	v, ok := fn(intent.Feature, cfg, g)
	if !ok {
		return 0, config.ConfNone, "", false
	}
	return v, config.ConfMedium, fmt.Sprintf("extractor:%s", intent.ID), true
}

func findShape(cfg *config.Config, id string) (config.Shape, bool) {
	for _, s := range cfg.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return config.Shape{}, false
}

func shapeDiameter(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	s, ok := findShape(cfg, ref)
	if !ok || s.Radius == 0 {
		return 0, false
	}
	return s.Radius * 2, true
}

func shapeAxialLength(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	s, ok := findShape(cfg, ref)
	if !ok {
		return 0, false
	}
	if s.Length > 0 {
		return s.Length, true
	}
	if s.Depth > 0 {
		return s.Depth, true
	}
	return 0, false
}

func shapeDim(axis int) extractorFunc {
	return func(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
		s, ok := findShape(cfg, ref)
		if !ok {
			return 0, false
		}
		switch axis {
		case 0:
			if s.Width > 0 {
				return s.Width, true
			}
		case 1:
			if s.Height > 0 {
				return s.Height, true
			}
		case 2:
			if s.Depth > 0 {
				return s.Depth, true
			}
		}
		return 0, false
	}
}

func featureDiameter(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	if g == nil {
		return 0, false
	}
	f := g.Get(ref)
	if f == nil || f.Diameter == 0 {
		return 0, false
	}
	return f.Diameter, true
}

func boltCirclePCD(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	if g == nil {
		return 0, false
	}
	for _, grp := range g.Groups() {
		if grp.Pattern == config.PatternBoltCircle {
			return grp.PCD, true
		}
	}
	return 0, false
}

func shellThickness(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	for _, op := range cfg.Operations {
		if op.Type == "shell" && (op.Target == ref || ref == "") {
			return op.Thickness, true
		}
	}
	return 0, false
}

func chamferSize(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	if g == nil {
		return 0, false
	}
	f := g.Get("chamfer_" + ref)
	if f == nil {
		return 0, false
	}
	return f.Size, true
}

func keywayWidth(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	if g == nil {
		return 0, false
	}
	f := g.Get(ref)
	if f == nil || f.Extra == nil {
		return 0, false
	}
	w, ok := f.Extra["width"].(float64)
	return w, ok
}

// genericLookup is the fallback for any dimension-intent id not listed
// in §4.E's table: try a feature diameter first, then a shape
// dimension.
func genericLookup(ref string, cfg *config.Config, g *feature.Graph) (float64, bool) {
	if v, ok := featureDiameter(ref, cfg, g); ok {
		return v, true
	}
	if v, ok := shapeDiameter(ref, cfg, g); ok {
		return v, true
	}
	return shapeAxialLength(ref, cfg, g)
}

// Fill walks every dim intent in the plan, resolving values via
// Extract and writing back value_mm/confidence/source/review per the
// §4.E policy.
func Fill(plan *config.DrawingPlan, cfg *config.Config, g *feature.Graph) {
	for i := range plan.DimIntents {
		in := &plan.DimIntents[i]
		if in.ValueMM != nil {
			in.Confidence = config.ConfHigh
			in.Source = "user_override"
			continue
		}
		v, conf, source, ok := Extract(*in, cfg, g)
		if ok {
			in.ValueMM = &v
			in.Confidence = conf
			in.Source = source
			continue
		}
		in.Confidence = config.ConfNone
		if in.Required {
			in.Review = true
		}
	}
}

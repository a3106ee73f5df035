// Package template implements the part-type classifier, the TOML
// template/override store, the id-list-patch deep merge, and the plan
// validator (§4.D), following a load-then-validate chain with named
// error codes.
package template

import (
	"strings"

	"github.com/drawforge/drawforge/pkg/config"
)

// Classify applies the fixed, priority-ordered rule chain of §4.D to a
// parsed config and returns the part type.
func Classify(cfg *config.Config) string {
	if cfg.IsAssembly() {
		return "assembly"
	}

	cutTools := cutToolSet(cfg)
	nonCutCylinders, cutCylinders, boxes := 0, 0, 0
	fusedBoxes := false
	hasSectionHint := false

	for _, s := range cfg.Shapes {
		switch s.Type {
		case "cylinder":
			if cutTools[s.ID] {
				cutCylinders++
			} else {
				nonCutCylinders++
			}
		case "box":
			boxes++
		}
		if strings.Contains(strings.ToLower(s.ID), "section") {
			hasSectionHint = true
		}
	}

	hasCut := false
	for _, op := range cfg.Operations {
		if op.Type == "cut" {
			hasCut = true
		}
		if op.Type == "fuse" && boxes > 0 {
			baseLower := strings.ToLower(op.Base)
			if strings.Contains(baseLower, "box") || boxShape(cfg, op.Base) {
				fusedBoxes = true
			}
		}
	}

	switch {
	case nonCutCylinders >= 3 && allFused(cfg):
		return "shaft"
	case nonCutCylinders <= 2 && cutCylinders >= 4 && boxes == 0:
		return "flange"
	case boxes > 0 && hasCut && fusedBoxes:
		return "bracket"
	case boxes > 0 && hasCut && hasSectionHint:
		return "housing"
	case boxes > 0 && hasCut && cutCylinders >= 6:
		return "bushing_plate"
	case boxes > 0 && hasCut:
		if minBoxDim(cfg) < 25 {
			return "bracket"
		}
		return "housing"
	default:
		return "generic"
	}
}

func cutToolSet(cfg *config.Config) map[string]bool {
	out := map[string]bool{}
	for _, op := range cfg.Operations {
		if op.Type == "cut" && op.Tool != "" {
			out[op.Tool] = true
		}
	}
	return out
}

// allFused reports whether at least three cylinders appear as the base
// or tool of a fuse operation — the rough "shaft built from stacked
// cylinders" signal of rule 2.
func allFused(cfg *config.Config) bool {
	fused := map[string]bool{}
	for _, op := range cfg.Operations {
		if op.Type == "fuse" {
			fused[op.Base] = true
			fused[op.Tool] = true
		}
	}
	count := 0
	for _, s := range cfg.Shapes {
		if s.Type == "cylinder" {
			if fused[s.ID] {
				count++
			}
		}
	}
	return count >= 3
}

func boxShape(cfg *config.Config, id string) bool {
	for _, s := range cfg.Shapes {
		if s.ID == id {
			return s.Type == "box"
		}
	}
	return false
}

func minBoxDim(cfg *config.Config) float64 {
	min := -1.0
	for _, s := range cfg.Shapes {
		if s.Type != "box" {
			continue
		}
		for _, d := range []float64{s.Width, s.Height, s.Depth} {
			if d <= 0 {
				continue
			}
			if min < 0 || d < min {
				min = d
			}
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

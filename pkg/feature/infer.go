package feature

import (
	"fmt"
	"math"
	"strings"

	"github.com/drawforge/drawforge/pkg/config"
)

// Infer scans shapes and operations and emits typed features, links
// counterbores to their nearest coaxial hole, and runs pattern
// detection (§4.B). An unknown operation type is fatal, matching the
// "Failure model" paragraph — config.Parse already rejects this at
// config-parse time, but Infer re-checks since a Config may also be
// assembled programmatically.
func Infer(cfg *config.Config) (*Graph, error) {
	shapesByID := make(map[string]config.Shape, len(cfg.Shapes))
	for _, s := range cfg.Shapes {
		shapesByID[s.ID] = s
	}

	cutTools := make(map[string]bool)
	for _, op := range cfg.Operations {
		switch op.Type {
		case "fuse", "cut", "common", "fillet", "chamfer", "shell", "circular_pattern":
		default:
			return nil, &config.ConfigError{Code: "unknown_type", Msg: fmt.Sprintf("unknown operation type %q", op.Type)}
		}
		if op.Type == "cut" {
			cutTools[op.Tool] = true
		}
	}

	g := newGraph()

	inferCylinderFeatures(g, cfg.Shapes, cutTools)
	linkCounterbores(g)
	inferChamfersAndFillets(g, cfg.Operations)
	inferThreads(g, cfg.Drawing.Threads)
	inferSlots(g, shapesByID, cfg.Operations, cutTools)

	detectPatterns(g)

	return g, nil
}

// inferCylinderFeatures walks shapes in declaration order (the order
// they appear in config.Shapes) so inference is fully reproducible.
func inferCylinderFeatures(g *Graph, shapes []config.Shape, cutTools map[string]bool) {
	for _, s := range shapes {
		if s.Type != "cylinder" || !cutTools[s.ID] {
			continue
		}
		d := s.Radius * 2
		lowerID := strings.ToLower(s.ID)

		var kind config.FeatureKind
		switch {
		case strings.Contains(lowerID, "dowel"):
			kind = config.FeatDowel
		case strings.Contains(lowerID, "bore") || (d > 20 && isCentered(s.Position)):
			kind = config.FeatBore
		case strings.Contains(lowerID, "cb") || strings.Contains(lowerID, "counterbore"):
			kind = config.FeatCounterbore
		case strings.Contains(lowerID, "slot"):
			continue // handled by inferSlots
		default:
			kind = config.FeatHole
		}

		axis := s.Direction
		if axis == ([3]float64{}) {
			axis = [3]float64{0, 0, 1}
		}

		g.add(config.Feature{
			ID: s.ID, Kind: kind,
			Diameter: d, Depth: s.Length,
			Position: s.Position, Axis: axis,
		})
	}
}

// linkCounterbores attaches each counterbore to the nearest coaxial
// hole within 2mm of XY distance (§4.B).
func linkCounterbores(g *Graph) {
	holes := g.ByType(config.FeatHole)
	for i := range g.features {
		if g.features[i].Kind != config.FeatCounterbore {
			continue
		}
		cb := &g.features[i]
		bestDist := math.Inf(1)
		bestID := ""
		for _, h := range holes {
			d := xyDist(cb.Position, h.Position)
			if d < bestDist && d < 2.0 {
				bestDist = d
				bestID = h.ID
			}
		}
		cb.ParentID = bestID
	}
}

func inferChamfersAndFillets(g *Graph, ops []config.Operation) {
	for _, op := range ops {
		switch op.Type {
		case "chamfer":
			g.add(config.Feature{
				ID:       "chamfer_" + nonEmpty(op.Target, "body"),
				Kind:     config.FeatChamfer,
				Size:     nonZero(op.Size, 1.0),
				ParentID: op.Target,
			})
		case "fillet":
			g.add(config.Feature{
				ID:       "fillet_" + nonEmpty(op.Target, "body"),
				Kind:     config.FeatFillet,
				Size:     nonZero(op.Radius, 1.0),
				ParentID: op.Target,
			})
		}
	}
}

func inferThreads(g *Graph, threads []config.ThreadCfg) {
	for _, t := range threads {
		g.add(config.Feature{
			ID:       "thread_" + nonEmpty(t.HoleID, "unknown"),
			Kind:     config.FeatThread,
			Diameter: t.Diameter,
			ParentID: t.HoleID,
			Extra: map[string]any{
				"pitch": t.Pitch,
				"label": t.Label,
				"class": nonEmpty(t.Class, "6H"),
			},
		})
	}
}

// inferSlots finds a fuse op whose base or result id contains "slot"
// and that is later used as a cut tool; slot dimensions come from the
// constituent box shape (§4.B).
func inferSlots(g *Graph, shapes map[string]config.Shape, ops []config.Operation, cutTools map[string]bool) {
	slotParts := map[string][]string{}
	var order []string
	for _, op := range ops {
		if op.Type != "fuse" {
			continue
		}
		baseLower, resultLower := strings.ToLower(op.Base), strings.ToLower(op.Result)
		if strings.Contains(baseLower, "slot") || strings.Contains(resultLower, "slot") {
			if _, seen := slotParts[op.Result]; !seen {
				order = append(order, op.Result)
			}
			slotParts[op.Result] = append(slotParts[op.Result], op.Base, op.Tool)
		}
	}

	for _, slotID := range order {
		if !cutTools[slotID] {
			continue
		}
		var boxShape *config.Shape
		for _, pid := range slotParts[slotID] {
			if s, ok := shapes[pid]; ok && s.Type == "box" {
				sCopy := s
				boxShape = &sCopy
				break
			}
		}
		if boxShape == nil {
			continue
		}
		g.add(config.Feature{
			ID: slotID, Kind: config.FeatSlot,
			Position: boxShape.Position,
			Extra: map[string]any{
				"length": boxShape.Width + boxShape.Depth,
				"width":  math.Min(boxShape.Width, boxShape.Depth),
			},
		})
	}
}

func isCentered(pos [3]float64) bool {
	return math.Abs(pos[0]) < 1.0 && math.Abs(pos[1]) < 1.0
}

func xyDist(a, b [3]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func nonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

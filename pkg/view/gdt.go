package view

import (
	"fmt"
	"sort"

	"github.com/drawforge/drawforge/pkg/annotate"
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dimension"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/stddata"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// The Sym* constants are the ISO 1101 feature-control-frame glyphs
// used here (§4.H).
const (
	SymPosition         = "⌖"
	SymCylindricity     = "⌭"
	SymCoaxiality       = "◎"
	SymPerpendicularity = "⊥"
)

// FCFSpec is one feature-control-frame assignment: symbol, tolerance
// value, an optional diameter modifier, the datum references, and the
// anchor feature id the leader points at.
type FCFSpec struct {
	AnchorID string
	Symbol   string
	Value    float64
	Diameter bool
	Datums   []string
}

// Datums is the automatic A/B/C(+D) selection of §4.H: A/B/C from the
// three largest orthogonal bounding-box faces by area, D an axis datum
// added when a bore feature exists.
type Datums struct {
	A, B, C string
	HasD    bool
}

// SelectDatums picks A/B/C from the largest orthogonal faces of the
// shape bounding box (by descending face area) and adds D when g
// contains a bore.
func SelectDatums(cfg *config.Config, g *feature.Graph) Datums {
	w, d, h := boundingExtents(cfg)
	faces := []struct {
		label string
		area  float64
	}{
		{"top", w * d},
		{"front", w * h},
		{"right", d * h},
	}
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].area > faces[j].area })

	datums := Datums{A: faces[0].label, B: faces[1].label, C: faces[2].label}
	datums.HasD = len(g.ByType(config.FeatBore)) > 0
	return datums
}

func boundingExtents(cfg *config.Config) (w, d, h float64) {
	var box geom.Box
	var zmin, zmax float64
	first := true
	for _, s := range cfg.Shapes {
		hw, hd, hh := halfExtents(s)
		x0, x1 := s.Position[0]-hw, s.Position[0]+hw
		y0, y1 := s.Position[1]-hd, s.Position[1]+hd
		z0, z1 := s.Position[2]-hh, s.Position[2]+hh
		b := geom.NewBox(x0, y0, x1, y1)
		if first {
			box = b
			zmin, zmax = z0, z1
			first = false
		} else {
			box = geom.Union(box, b)
			if z0 < zmin {
				zmin = z0
			}
			if z1 > zmax {
				zmax = z1
			}
		}
	}
	return box.Width(), box.Height(), zmax - zmin
}

func halfExtents(s config.Shape) (hw, hd, hh float64) {
	switch s.Type {
	case "box":
		return s.Width / 2, s.Depth / 2, s.Height / 2
	case "cylinder", "cone":
		return s.Radius, s.Radius, s.Length / 2
	case "sphere":
		return s.Radius, s.Radius, s.Radius
	default:
		return 0, 0, 0
	}
}

// AssignTolerances derives a feature control frame per §4.H's
// tolerance-assignment rule: bolt-circle holes get position tolerance
// at 0.25x the class clearance; dowels get a tight 0.05 position; a
// bore gets cylindricity (no axis datum available) or coaxiality (with
// an axis datum). No perpendicularity frame is assigned to any face;
// SymPerpendicularity is not used by this function.
func AssignTolerances(g *feature.Graph, datums Datums) []FCFSpec {
	var specs []FCFSpec

	for _, grp := range g.Groups() {
		if grp.Pattern != config.PatternBoltCircle {
			continue
		}
		clearance := boltClearance(holeDiameter(g, grp.MemberIDs))
		for _, id := range grp.MemberIDs {
			specs = append(specs, FCFSpec{
				AnchorID: id, Symbol: SymPosition, Value: round3(0.25 * clearance),
				Diameter: true, Datums: []string{datums.A, datums.B, datums.C},
			})
		}
	}

	for _, dowel := range g.ByType(config.FeatDowel) {
		specs = append(specs, FCFSpec{
			AnchorID: dowel.ID, Symbol: SymPosition, Value: 0.05,
			Diameter: true, Datums: []string{datums.A, datums.B},
		})
	}

	for _, bore := range g.ByType(config.FeatBore) {
		if datums.HasD {
			specs = append(specs, FCFSpec{AnchorID: bore.ID, Symbol: SymCoaxiality, Value: 0.025, Datums: []string{"D"}})
		} else {
			specs = append(specs, FCFSpec{AnchorID: bore.ID, Symbol: SymCylindricity, Value: 0.02})
		}
	}

	return specs
}

func holeDiameter(g *feature.Graph, ids []string) float64 {
	for _, id := range ids {
		if f := g.Get(id); f != nil {
			return f.Diameter
		}
	}
	return 0
}

func boltClearance(diameter float64) float64 {
	if diameter <= 0 {
		return 0.2
	}
	spec, boltDia := stddata.NearestBoltHole(diameter)
	return spec.ClearanceNorm - boltDia
}

func round3(v float64) float64 {
	const scale = 1000.0
	return float64(int64(v*scale+0.5)) / scale
}

// RenderGDT places one feature control frame per spec whose anchor
// feature projects to a circle in vd, leadered out via the annotation
// planner's four-direction candidate search, and returns the count
// anchored (vs. skipped for lack of a visible anchor).
func RenderGDT(viewName config.ViewName, vd *kernel.ViewData, xf dimension.Transform, specs []FCFSpec, g *feature.Graph, planner *annotate.Planner, group *svgdoc.Node) int {
	count := 0
	gNode := svgdoc.Group(group, fmt.Sprintf("gdt-%s", viewName))
	for _, spec := range specs {
		f := g.Get(spec.AnchorID)
		if f == nil {
			continue
		}
		circ, ok := matchCircle(vd, f.Position[0], f.Position[1])
		if !ok {
			continue
		}
		cx, cy := xf.ToPage(circ.CU, circ.CV)
		r := xf.ScaleLen(circ.R)

		candidates := []geom.Point{
			{X: cx + r + 10, Y: cy},
			{X: cx - r - 10, Y: cy},
			{X: cx, Y: cy - r - 10},
			{X: cx, Y: cy + r + 10},
		}
		frameW, frameH := 22.0, 5.0
		pos := planner.RegisterAndPick(candidates, frameW, frameH)

		frame := svgdoc.Group(gNode, "fcf")
		leader := svgdoc.NewNode("line").SetF("x1", cx).SetF("y1", cy).SetF("x2", pos.X).SetF("y2", pos.Y)
		leader.Set("stroke", "#000000").SetF("stroke-width", 0.25)
		frame.Append(leader)

		rect := svgdoc.NewNode("rect").SetF("x", pos.X).SetF("y", pos.Y).SetF("width", frameW).SetF("height", frameH)
		rect.Set("fill", "none").Set("stroke", "#000000").SetF("stroke-width", 0.2)
		frame.Append(rect)

		label := spec.Symbol + " "
		if spec.Diameter {
			label += "Ø"
		}
		label += geom.FormatMM(spec.Value)
		for _, d := range spec.Datums {
			if d != "" {
				label += " " + d
			}
		}
		text := svgdoc.NewNode("text").SetF("x", pos.X+1).SetF("y", pos.Y+frameH-1.5)
		text.Text = label
		frame.Append(text)

		count++
	}
	return count
}

func matchCircle(vd *kernel.ViewData, u, v float64) (kernel.Circ, bool) {
	best := kernel.Circ{}
	found := false
	bestDistSq := 4.0 // 2mm radius search, matching the counterbore-link tolerance
	for _, edges := range vd.Groups {
		for _, e := range edges {
			if !e.IsCircle() {
				continue
			}
			dx, dy := e.Circ.CU-u, e.Circ.CV-v
			d := dx*dx + dy*dy
			if d < bestDistSq {
				best = *e.Circ
				found = true
				bestDistSq = d
			}
		}
	}
	return best, found
}

package view

import (
	"math"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dimension"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// RenderEdges draws vd's edge groups in the fixed back-to-front order
// into group, styled per EdgeStyles. For the iso view, group 9
// (iso_hidden) and 8 (iso_visible) are dropped entirely, and group 5
// (smooth_visible) is dropped once it exceeds SmoothVisibleEdgeThreshold
// edges (§4.H). Returns the number of edge elements drawn.
func RenderEdges(viewName config.ViewName, vd *kernel.ViewData, xf dimension.Transform, group *svgdoc.Node) int {
	count := 0
	for _, gi := range kernel.RenderOrder {
		edges := vd.Groups[gi]
		if len(edges) == 0 {
			continue
		}
		if viewName == config.ViewISO {
			if gi == kernel.GroupISOHidden || gi == kernel.GroupISOVisible {
				continue
			}
			if gi == kernel.GroupSmoothVisible && len(edges) > SmoothVisibleEdgeThreshold {
				continue
			}
		}
		style := EdgeStyles[gi]
		g := svgdoc.Group(group, "edges "+style.Class)
		for _, e := range edges {
			count++
			if e.IsCircle() {
				cx, cy := xf.ToPage(e.Circ.CU, e.Circ.CV)
				r := xf.ScaleLen(e.Circ.R)
				el := svgdoc.NewNode("circle").SetF("cx", cx).SetF("cy", cy).SetF("r", r)
				applyStroke(el, style)
				g.Append(el)
				continue
			}
			pts := make([]geom.Point, 0, len(e.Pts))
			for _, p := range e.Pts {
				x, y := xf.ToPage(p.U, p.V)
				pts = append(pts, geom.Point{X: x, Y: y})
			}
			el := svgdoc.NewNode("polyline").Set("points", formatPolyline(pts))
			applyStroke(el, style)
			g.Append(el)
		}
	}
	return count
}

func applyStroke(n *svgdoc.Node, s EdgeStyle) {
	n.Set("fill", "none")
	n.Set("stroke", s.Stroke)
	n.SetF("stroke-width", s.StrokeWidth)
	if s.Dash != "" {
		n.Set("stroke-dasharray", s.Dash)
	}
}

func formatPolyline(pts []geom.Point) string {
	s := ""
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += geom.FormatMM(p.X) + "," + geom.FormatMM(p.Y)
	}
	return s
}

// RenderCenterMarks draws a chain-line cross arm per circle in vd,
// deduplicated by center on a half-mm grid, clamped inside the view
// cell with a 3mm inset (§4.H).
func RenderCenterMarks(viewName config.ViewName, vd *kernel.ViewData, xf dimension.Transform, group *svgdoc.Node) int {
	cellBounds, ok := geom.CellBounds(viewName)
	if !ok {
		return 0
	}
	inset := cellBounds.Inset(CenterMarkInset)

	seen := map[[2]int]bool{}
	count := 0
	g := svgdoc.Group(group, "centerlines")
	for _, edges := range vd.Groups {
		for _, e := range edges {
			if !e.IsCircle() {
				continue
			}
			key := [2]int{
				int(math.Round(e.Circ.CU / CenterMarkGridMM)),
				int(math.Round(e.Circ.CV / CenterMarkGridMM)),
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			cx, cy := xf.ToPage(e.Circ.CU, e.Circ.CV)
			cx = math.Max(inset.XMin, math.Min(cx, inset.XMax))
			cy = math.Max(inset.YMin, math.Min(cy, inset.YMax))
			arm := CenterMarkArmLength
			h := svgdoc.NewNode("line").SetF("x1", cx-arm).SetF("y1", cy).SetF("x2", cx+arm).SetF("y2", cy)
			h.Set("stroke", "#000000").SetF("stroke-width", 0.18).Set("stroke-dasharray", "6,1,1,1")
			v := svgdoc.NewNode("line").SetF("x1", cx).SetF("y1", cy-arm).SetF("x2", cx).SetF("y2", cy+arm)
			v.Set("stroke", "#000000").SetF("stroke-width", 0.18).Set("stroke-dasharray", "6,1,1,1")
			g.Append(h)
			g.Append(v)
			count++
		}
	}
	return count
}

// RenderSymmetryAxes adds a symmetry-axis line for each of the
// horizontal/vertical midlines of vd's bounds when at least
// SymmetryMatchRatio of sampled visible-edge points round-trip-match
// under mirror about that midline, within SymmetryTolPercent of the
// view's max dimension (§4.H).
func RenderSymmetryAxes(viewName config.ViewName, vd *kernel.ViewData, xf dimension.Transform, group *svgdoc.Node) int {
	samples := sampleVisiblePoints(vd)
	if len(samples) == 0 {
		return 0
	}
	maxDim := math.Max(vd.Bounds.Width(), vd.Bounds.Height())
	tol := maxDim * SymmetryTolPercent
	midU := (vd.Bounds.U0 + vd.Bounds.U1) / 2
	midV := (vd.Bounds.V0 + vd.Bounds.V1) / 2

	count := 0
	g := svgdoc.Group(group, "symmetry")
	if mirrorMatches(samples, midU, true, tol) >= SymmetryMatchRatio*float64(len(samples)) {
		drawAxis(g, xf, midU, vd.Bounds.V0-4, midU, vd.Bounds.V1+4, true)
		count++
	}
	if mirrorMatches(samples, midV, false, tol) >= SymmetryMatchRatio*float64(len(samples)) {
		drawAxis(g, xf, vd.Bounds.U0-4, midV, vd.Bounds.U1+4, midV, false)
		count++
	}
	return count
}

func sampleVisiblePoints(vd *kernel.ViewData) []kernel.Point {
	var out []kernel.Point
	for gi, edges := range vd.Groups {
		if kernel.HiddenGroups[gi] {
			continue
		}
		for _, e := range edges {
			if e.IsCircle() {
				out = append(out, kernel.Point{U: e.Circ.CU, V: e.Circ.CV})
				continue
			}
			out = append(out, e.Pts...)
		}
	}
	return out
}

// mirrorMatches counts sample points whose reflection about axis
// (vertical=true reflects U, else V) also appears among the samples
// within tol.
func mirrorMatches(samples []kernel.Point, axis float64, vertical bool, tol float64) float64 {
	count := 0.0
	for _, p := range samples {
		var mirrored kernel.Point
		if vertical {
			mirrored = kernel.Point{U: 2*axis - p.U, V: p.V}
		} else {
			mirrored = kernel.Point{U: p.U, V: 2*axis - p.V}
		}
		for _, q := range samples {
			if math.Hypot(mirrored.U-q.U, mirrored.V-q.V) <= tol {
				count++
				break
			}
		}
	}
	return count
}

func drawAxis(g *svgdoc.Node, xf dimension.Transform, u0, v0, u1, v1 float64, vertical bool) {
	x0, y0 := xf.ToPage(u0, v0)
	x1, y1 := xf.ToPage(u1, v1)
	l := svgdoc.NewNode("line").SetF("x1", x0).SetF("y1", y0).SetF("x2", x1).SetF("y2", y1)
	l.Set("stroke", "#000000").SetF("stroke-width", 0.18).Set("stroke-dasharray", "6,1,1,1")
	g.Append(l)
}

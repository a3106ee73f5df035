package dimension

import (
	"fmt"
	"math"
	"sort"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// AutoChain implements the chain (auto) dimensioning engine of §4.G:
// overall width/height, diameter callouts, horizontal/vertical chain
// segments between deduplicated hole positions, and radius dimensions
// for visible-group arcs. Every emission is recorded in tel and checked
// against dedupe for cross-view collapsing; the rendered count is
// returned.
func AutoChain(view config.ViewName, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState) int {
	count := 0
	count += emitOverallDims(view, vd, xf, group, tel, dedupe)
	count += emitDiameterCallouts(view, vd, xf, group, tel, dedupe)
	count += emitChainSegments(view, vd, xf, group, tel, dedupe)
	count += emitRadiusDims(view, vd, xf, group, tel, dedupe)
	return count
}

func emitOverallDims(view config.ViewName, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState) int {
	count := 0
	width := vd.Bounds.Width()
	height := vd.Bounds.Height()

	if width >= 0.5 {
		if dup, conflict := dedupe.CheckAndRecord("linear_h", width, view, 0.05); dup {
			tel.Skip(Record{Family: "linear_h", Value: width, View: view}, fmt.Sprintf("dedupe match with %s", conflict))
		} else {
			id := tel.NextID(view)
			drawOverallLinear(group, xf, vd.Bounds.U0, vd.Bounds.U1, vd.Bounds.V0, false, width, id)
			tel.Emit(Record{DimID: id, Family: "linear_h", Value: width, View: view, DrawingObjectID: id})
			count++
		}
	}
	if height >= 0.5 {
		if dup, conflict := dedupe.CheckAndRecord("linear_v", height, view, 0.05); dup {
			tel.Skip(Record{Family: "linear_v", Value: height, View: view}, fmt.Sprintf("dedupe match with %s", conflict))
		} else {
			id := tel.NextID(view)
			drawOverallLinear(group, xf, vd.Bounds.V0, vd.Bounds.V1, vd.Bounds.U0, true, height, id)
			tel.Emit(Record{DimID: id, Family: "linear_v", Value: height, View: view, DrawingObjectID: id})
			count++
		}
	}
	return count
}

func drawOverallLinear(group *svgdoc.Node, xf Transform, a, b, otherCoord float64, vertical bool, value float64, id string) {
	var p0x, p0y, p1x, p1y float64
	if vertical {
		p0x, p0y = xf.ToPage(otherCoord, a)
		p1x, p1y = xf.ToPage(otherCoord, b)
	} else {
		p0x, p0y = xf.ToPage(a, otherCoord)
		p1x, p1y = xf.ToPage(b, otherCoord)
	}
	dimLineCoord := p0y - DimLineOffset
	if vertical {
		dimLineCoord = p0x - DimLineOffset
	}
	e0s, e0e := geom.ExtensionLine(p0x, p0y, dimLineCoord, vertical, ExtensionGap, ExtensionOvershoot)
	e1s, e1e := geom.ExtensionLine(p1x, p1y, dimLineCoord, vertical, ExtensionGap, ExtensionOvershoot)

	g := svgdoc.Group(group, "dim")
	g.Set("id", id)
	for _, seg := range [][2]geom.Point{{e0s, e0e}, {e1s, e1e}} {
		line := svgdoc.NewNode("line").SetF("x1", seg[0].X).SetF("y1", seg[0].Y).SetF("x2", seg[1].X).SetF("y2", seg[1].Y)
		g.Append(line)
	}
	dStart, dEnd := geom.DimensionLineSegment(p0Coord(p0x, p0y, vertical), p0Coord(p1x, p1y, vertical), dimLineCoord, vertical)
	dimLine := svgdoc.NewNode("line").SetF("x1", dStart.X).SetF("y1", dStart.Y).SetF("x2", dEnd.X).SetF("y2", dEnd.Y)
	g.Append(dimLine)

	mx, my := (dStart.X+dEnd.X)/2, (dStart.Y+dEnd.Y)/2
	text := svgdoc.NewNode("text").SetF("x", mx).SetF("y", my).Set("text-anchor", "middle")
	text.Text = geom.FormatMM(value)
	g.Append(text)
}

func p0Coord(x, y float64, vertical bool) float64 {
	if vertical {
		return y
	}
	return x
}

func emitDiameterCallouts(view config.ViewName, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState) int {
	circles := collectCircles(vd, false)
	unique := dedupeRadii(circles, 0.1)
	count := 0
	startAngle := 45.0
	for _, c := range unique {
		diameter := c.R * 2
		angle := searchLeaderAngle(view, xf, c, DiameterLeaderLen, startAngle)
		if dup, conflict := dedupe.CheckAndRecord("diameter", diameter, view, 0.05); dup {
			tel.Skip(Record{Family: "diameter", Value: diameter, View: view}, fmt.Sprintf("dedupe match with %s", conflict))
			startAngle += 30
			continue
		}
		id := tel.NextID(view)
		drawDiameterLeader(group, xf, c, angle, id)
		tel.Emit(Record{DimID: id, Family: "diameter", Value: diameter, View: view, DrawingObjectID: id})
		count++
		startAngle += 30
	}
	return count
}

// searchLeaderAngle sweeps LeaderAngleSteps evenly-spaced angles
// starting at startAngle and picks the one whose leader endpoint has
// the smallest overshoot past the circle's view-cell bounds, weighted
// by how far out of the cell the endpoint falls (§4.G item 2). Ties
// (including the common case where every candidate already fits, all
// scoring zero) keep startAngle's candidate, preserving the per-hole
// fan-out the caller advances between circles.
func searchLeaderAngle(view config.ViewName, xf Transform, c kernel.Circ, leaderLen, startAngle float64) float64 {
	cell, ok := geom.CellBounds(view)
	if !ok {
		return startAngle
	}
	cx, cy := xf.ToPage(c.CU, c.CV)
	r := xf.ScaleLen(c.R)

	bestAngle := startAngle
	bestOvershoot := math.Inf(1)
	step := 360.0 / LeaderAngleSteps
	for i := 0; i < LeaderAngleSteps; i++ {
		angle := startAngle + float64(i)*step
		rad := angle * math.Pi / 180
		endX, endY := cx+(r+leaderLen)*math.Cos(rad), cy-(r+leaderLen)*math.Sin(rad)
		endpoint := geom.Box{XMin: endX, YMin: endY, XMax: endX, YMax: endY}
		_, _, _, _, overshoot := geom.ExceedsBy(cell, endpoint)
		if overshoot < bestOvershoot {
			bestOvershoot = overshoot
			bestAngle = angle
			if bestOvershoot == 0 {
				break
			}
		}
	}
	return bestAngle
}

func drawDiameterLeader(group *svgdoc.Node, xf Transform, c kernel.Circ, angleDeg float64, id string) {
	cx, cy := xf.ToPage(c.CU, c.CV)
	r := xf.ScaleLen(c.R)
	rad := angleDeg * math.Pi / 180
	startX, startY := cx+r*math.Cos(rad), cy-r*math.Sin(rad)
	endX, endY := cx+(r+DiameterLeaderLen)*math.Cos(rad), cy-(r+DiameterLeaderLen)*math.Sin(rad)

	g := svgdoc.Group(group, "dim diameter")
	g.Set("id", id)
	leader := svgdoc.NewNode("line").SetF("x1", startX).SetF("y1", startY).SetF("x2", endX).SetF("y2", endY)
	g.Append(leader)
	text := svgdoc.NewNode("text").SetF("x", endX).SetF("y", endY)
	text.Text = "Ø" + geom.FormatMM(c.R*2)
	g.Append(text)
}

func emitChainSegments(view config.ViewName, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState) int {
	circles := collectCircles(vd, false)
	positions := dedupePositions(circles, 0.1)
	count := 0
	for _, axis := range []bool{false, true} { // horizontal then vertical
		coords := make([]float64, 0, len(positions))
		for _, c := range positions {
			if axis {
				coords = append(coords, c.CV)
			} else {
				coords = append(coords, c.CU)
			}
		}
		sort.Float64s(coords)
		for i := 1; i < len(coords); i++ {
			segLen := math.Abs(coords[i] - coords[i-1])
			pageLen := xf.ScaleLen(segLen)
			overallLen := vd.Bounds.Width()
			if axis {
				overallLen = vd.Bounds.Height()
			}
			if segLen < 2 || math.Abs(segLen-overallLen) < 1e-6 || pageLen < 8 {
				continue
			}
			family := "linear_h"
			if axis {
				family = "linear_v"
			}
			if dup, conflict := dedupe.CheckAndRecord(family, segLen, view, 0.05); dup {
				tel.Skip(Record{Family: family, Value: segLen, View: view}, fmt.Sprintf("dedupe match with %s", conflict))
				continue
			}
			id := tel.NextID(view)
			g := svgdoc.Group(group, "dim "+family)
			g.Set("id", id)
			text := svgdoc.NewNode("text")
			text.Text = geom.FormatMM(segLen)
			g.Append(text)
			tel.Emit(Record{DimID: id, Family: family, Value: segLen, View: view, DrawingObjectID: id})
			count++
		}
	}
	return count
}

func emitRadiusDims(view config.ViewName, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState) int {
	var visible []kernel.Arc
	for _, a := range vd.Arcs {
		if !kernel.HiddenGroups[a.Group] {
			visible = append(visible, a)
		}
	}
	circles := make([]kernel.Circ, 0, len(visible))
	for _, a := range visible {
		circles = append(circles, kernel.Circ{CU: a.CU, CV: a.CV, R: a.R})
	}
	unique := dedupeRadii(circles, 0.1)
	count := 0
	for _, c := range unique {
		if dup, conflict := dedupe.CheckAndRecord("radius", c.R, view, 0.05); dup {
			tel.Skip(Record{Family: "radius", Value: c.R, View: view}, fmt.Sprintf("dedupe match with %s", conflict))
			continue
		}
		id := tel.NextID(view)
		cx, cy := xf.ToPage(c.CU, c.CV)
		g := svgdoc.Group(group, "dim radius")
		g.Set("id", id)
		text := svgdoc.NewNode("text").SetF("x", cx).SetF("y", cy)
		text.Text = "R" + geom.FormatMM(c.R)
		g.Append(text)
		tel.Emit(Record{DimID: id, Family: "radius", Value: c.R, View: view, DrawingObjectID: id})
		count++
	}
	return count
}

func collectCircles(vd *kernel.ViewData, visibleOnly bool) []kernel.Circ {
	var out []kernel.Circ
	for gi, edges := range vd.Groups {
		if visibleOnly && kernel.HiddenGroups[gi] {
			continue
		}
		for _, e := range edges {
			if e.IsCircle() {
				out = append(out, *e.Circ)
			}
		}
	}
	return out
}

func dedupeRadii(circles []kernel.Circ, tol float64) []kernel.Circ {
	sort.Slice(circles, func(i, j int) bool { return circles[i].R < circles[j].R })
	var out []kernel.Circ
	for _, c := range circles {
		dup := false
		for _, o := range out {
			if math.Abs(o.R-c.R) <= tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

func dedupePositions(circles []kernel.Circ, tol float64) []kernel.Circ {
	var out []kernel.Circ
	for _, c := range circles {
		dup := false
		for _, o := range out {
			if math.Hypot(o.CU-c.CU, o.CV-c.CV) <= tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

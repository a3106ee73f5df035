package dimension

import (
	"fmt"
	"math"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// DedupePolicy selects how plan-driven intents are checked against
// already-rendered auto dimensions (§4.G).
type DedupePolicy string

const (
	PolicySmart     DedupePolicy = "smart"
	PolicyValueOnly DedupePolicy = "value_only"
	PolicyOff       DedupePolicy = "off"
)

func familyForStyle(style config.DimStyle) string {
	switch style {
	case config.StyleDiameter:
		return "diameter"
	case config.StyleRadius:
		return "radius"
	default:
		return "linear_h"
	}
}

// PlanDriven renders one view's worth of plan intents: diameter/linear
// intents find or assume geometry from vd, radius/callout/note are
// delegated (status recorded only), and a missing required value_mm
// renders a red review marker (§4.G).
func PlanDriven(view config.ViewName, intents []config.DimIntent, vd *kernel.ViewData, xf Transform, group *svgdoc.Node, tel *Telemetry, dedupe *DedupeState, policy DedupePolicy) int {
	count := 0
	circles := collectCircles(vd, false)

	for _, in := range intents {
		if in.View != view {
			continue
		}

		if in.ValueMM == nil {
			if in.Required {
				drawReviewMarker(group, in.ID)
				tel.Skip(Record{DimID: in.ID, View: view}, "missing required value_mm")
			}
			continue
		}
		value := *in.ValueMM

		family := familyForStyle(in.Style)
		if in.Style == config.StyleLinear && config.DiameterLikeLinearIDs[in.ID] {
			family = "diameter"
		}

		if policy != PolicyOff {
			tol := 0.05
			if policy == PolicyValueOnly {
				if matchAnyFamily(dedupe, value, tol) {
					tel.Skip(Record{DimID: in.ID, Family: family, Value: value, View: view}, "dedupe_match(value_only)")
					continue
				}
			} else if dedupe.Contains(family, value, tol) {
				tel.Skip(Record{DimID: in.ID, Family: family, Value: value, View: view}, "dedupe_match(smart)")
				continue
			}
		}

		switch {
		case family == "diameter":
			drawPlanDiameter(group, xf, circles, in, value)
		case in.Style == config.StyleLinear:
			drawPlanLinear(group, xf, vd, in, value)
		default:
			// radius, callout, note: delegated; status recorded only.
			tel.Emit(Record{DimID: in.ID, Family: string(in.Style), Value: value, View: view, DrawingObjectID: in.ID})
			count++
			continue
		}
		tel.Emit(Record{DimID: in.ID, Family: family, Value: value, View: view, DrawingObjectID: in.ID})
		count++
	}
	return count
}

func matchAnyFamily(dedupe *DedupeState, value, tol float64) bool {
	for _, f := range []string{"linear_h", "linear_v", "diameter", "radius"} {
		if dedupe.Contains(f, value, tol) {
			return true
		}
	}
	return false
}

func drawReviewMarker(group *svgdoc.Node, id string) {
	g := svgdoc.Group(group, "dim review")
	g.Set("id", id)
	text := svgdoc.NewNode("text").Set("fill", "red")
	text.Text = fmt.Sprintf("[REVIEW: %s]", id)
	g.Append(text)
}

func drawPlanDiameter(group *svgdoc.Node, xf Transform, circles []kernel.Circ, in config.DimIntent, value float64) {
	target := findClosestCircle(circles, value/2, 0.30)
	angle := 45.0
	if in.Placement != "" {
		angle = placementAngle(in.Placement)
	}

	g := svgdoc.Group(group, "plan-dim diameter")
	g.Set("id", in.ID)
	var cx, cy, r float64
	if target != nil {
		cx, cy = xf.ToPage(target.CU, target.CV)
		r = xf.ScaleLen(target.R)
	}
	rad := angle * math.Pi / 180
	shelfX, shelfY := cx+(r+6)*math.Cos(rad), cy-(r+6)*math.Sin(rad)
	leader := svgdoc.NewNode("line").SetF("x1", cx).SetF("y1", cy).SetF("x2", shelfX).SetF("y2", shelfY)
	g.Append(leader)
	text := svgdoc.NewNode("text").SetF("x", shelfX).SetF("y", shelfY)
	text.Text = "Ø" + geom.FormatMM(value)
	g.Append(text)
}

func findClosestCircle(circles []kernel.Circ, radius, tolRatio float64) *kernel.Circ {
	var best *kernel.Circ
	bestDiff := math.Inf(1)
	for i, c := range circles {
		diff := math.Abs(c.R - radius)
		if diff <= radius*tolRatio && diff < bestDiff {
			bestDiff = diff
			best = &circles[i]
		}
	}
	return best
}

func placementAngle(side string) float64 {
	switch side {
	case "top":
		return 90
	case "bottom":
		return 270
	case "left":
		return 180
	case "right":
		return 0
	default:
		return 45
	}
}

func drawPlanLinear(group *svgdoc.Node, xf Transform, vd *kernel.ViewData, in config.DimIntent, value float64) {
	vertical := false // horizontal by default; a left/right hint draws the vertical variant
	if in.Placement == "left" || in.Placement == "right" {
		vertical = true
	}

	cx, cy := xf.ToPage((vd.Bounds.U0+vd.Bounds.U1)/2, (vd.Bounds.V0+vd.Bounds.V1)/2)
	offset := DimLineOffset
	if in.Placement == "top" || in.Placement == "left" {
		offset = -offset
	}

	g := svgdoc.Group(group, "plan-dim linear")
	g.Set("id", in.ID)

	half := xf.ScaleLen(value) / 2
	var x1, y1, x2, y2 float64
	if vertical {
		x1, y1, x2, y2 = cx+offset, cy-half, cx+offset, cy+half
	} else {
		x1, y1, x2, y2 = cx-half, cy+offset, cx+half, cy+offset
	}
	line := svgdoc.NewNode("line").SetF("x1", x1).SetF("y1", y1).SetF("x2", x2).SetF("y2", y2)
	g.Append(line)

	for _, pt := range [][2]float64{{x1, y1}, {x2, y2}} {
		arrowAngle := 0.0
		if vertical {
			arrowAngle = math.Pi / 2
		}
		pts := geom.ArrowPolygon(pt[0], pt[1], arrowAngle)
		arrow := svgdoc.NewNode("polygon").Set("points", formatPoints(pts[:]))
		g.Append(arrow)
	}

	text := svgdoc.NewNode("text").SetF("x", cx).SetF("y", cy+offset-1).Set("text-anchor", "middle")
	text.Text = geom.FormatMM(value)
	g.Append(text)
}

func formatPoints(pts []geom.Point) string {
	s := ""
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += geom.FormatMM(p.X) + "," + geom.FormatMM(p.Y)
	}
	return s
}

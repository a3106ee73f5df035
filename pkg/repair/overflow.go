package repair

import (
	"fmt"
	"math"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// overflowSafetyMM pads the view cell before a union bbox is judged to
// overflow it.
const overflowSafetyMM = 3.0

// minOverflowScale floors the uniform scale-to-fit factor so a wildly
// oversized view never collapses to near-zero.
const minOverflowScale = 0.5

// geometryClasses is the set of per-view edge-group classes
// repair_overflow measures and rescales, listed here directly; the
// names are the Class values of the view composer's style table.
var geometryClasses = buildGeometryClasses()

func buildGeometryClasses() map[string]bool {
	return map[string]bool{
		"hard_visible": true, "hard_hidden": true,
		"outer_visible": true, "outer_hidden": true,
		"smooth_visible": true, "smooth_hidden": true,
		"iso_visible": true, "iso_hidden": true,
	}
}

// OverflowResult reports one view's repair_overflow outcome.
type OverflowResult struct {
	View  config.ViewName
	Scale float64
	Risk  config.RepairRiskFlag
}

// RepairOverflow scales each enabled view's geometry uniformly to fit
// its padded cell when the union bbox of its geometry groups exceeds
// it, wrapping the affected groups in a `viewcell-{view}` transform
// group. Dimensions are not rescaled, so a RiskSemanticMayShift is
// always recorded for a view that gets scaled (§4.K).
func RepairOverflow(views []config.ViewName, doc *svgdoc.Document) []OverflowResult {
	var results []OverflowResult
	for _, vn := range views {
		viewGroup := findViewGroup(doc, vn)
		if viewGroup == nil {
			continue
		}
		geomGroups := geomGroupsIn(viewGroup)
		if len(geomGroups) == 0 {
			continue
		}

		union := unionBBox(geomGroups)
		cell, ok := geom.CellBounds(vn)
		if !ok {
			continue
		}
		padded := cell.Inset(overflowSafetyMM)
		if fitsWithin(union, padded) {
			continue
		}

		scale := math.Min(padded.Width()/union.Width(), padded.Height()/union.Height())
		if scale < minOverflowScale {
			scale = minOverflowScale
		}
		if scale >= 1.0 {
			continue
		}

		cx, cy := cell.Center()
		wrapGroups(viewGroup, geomGroups, vn, cx, cy, scale)

		results = append(results, OverflowResult{
			View:  vn,
			Scale: scale,
			Risk: config.RepairRiskFlag{
				Kind:    config.RiskSemanticMayShift,
				Element: fmt.Sprintf("viewcell-%s", vn),
				Detail:  "geometry uniformly rescaled to fit its view cell; dimensions were not rescaled",
			},
		})
	}
	return results
}

func findViewGroup(doc *svgdoc.Document, vn config.ViewName) *svgdoc.Node {
	groups := doc.Root.ByClass(fmt.Sprintf("view-%s", vn))
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

func geomGroupsIn(viewGroup *svgdoc.Node) []*svgdoc.Node {
	var out []*svgdoc.Node
	for _, c := range viewGroup.Children {
		class := c.Class()
		for gc := range geometryClasses {
			if class == "edges "+gc {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func unionBBox(nodes []*svgdoc.Node) geom.Box {
	var box geom.Box
	first := true
	for _, n := range nodes {
		b := n.BBox()
		if b.Area() == 0 && b.Width() == 0 && b.Height() == 0 {
			continue
		}
		if first {
			box = b
			first = false
		} else {
			box = geom.Union(box, b)
		}
	}
	return box
}

func fitsWithin(inner, outer geom.Box) bool {
	return inner.XMin >= outer.XMin && inner.XMax <= outer.XMax &&
		inner.YMin >= outer.YMin && inner.YMax <= outer.YMax
}

func wrapGroups(viewGroup *svgdoc.Node, geomGroups []*svgdoc.Node, vn config.ViewName, cx, cy, scale float64) {
	wrapper := svgdoc.NewNode("g").Set("class", fmt.Sprintf("viewcell-%s", vn))
	wrapper.Set("transform", fmt.Sprintf("translate(%s,%s) scale(%s) translate(%s,%s)",
		geom.FormatMM(cx), geom.FormatMM(cy), geom.FormatMM(scale), geom.FormatMM(-cx), geom.FormatMM(-cy)))

	remaining := make([]*svgdoc.Node, 0, len(viewGroup.Children))
	moved := make(map[*svgdoc.Node]bool, len(geomGroups))
	for _, g := range geomGroups {
		moved[g] = true
	}
	for _, c := range viewGroup.Children {
		if moved[c] {
			continue
		}
		remaining = append(remaining, c)
	}
	viewGroup.Children = remaining

	for _, g := range geomGroups {
		g.Parent = wrapper
		wrapper.Children = append(wrapper.Children, g)
	}
	viewGroup.Append(wrapper)
}

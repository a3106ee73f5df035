package view

import (
	"github.com/drawforge/drawforge/pkg/annotate"
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dimension"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/stddata"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// SurfaceFinishSpec is one face-specific roughness callout, anchored on
// an inferred feature.
type SurfaceFinishSpec struct {
	AnchorID string
	RaMax    float64
}

// RenderDefaultSurfaceFinish draws the ISO 1302 check-mark symbol (a
// 60-degree vertex V plus a horizontal bar) above the title block,
// carrying the process's default roughness grade (§4.H).
func RenderDefaultSurfaceFinish(process string, doc *svgdoc.Node) {
	ra := stddata.DefaultSurfaceFinish(process)
	g := svgdoc.Group(doc, "surface-finish")
	x, y := geom.Margin+4, geom.PageH-geom.TitleH-6
	drawCheckMark(g, x, y, ra)
}

// RenderFaceSurfaceFinish attaches a surface-finish symbol to each
// target feature's projected circle via leader+arrow, placed using the
// annotation planner's four direction candidates (§4.H).
func RenderFaceSurfaceFinish(viewName config.ViewName, vd *kernel.ViewData, xf dimension.Transform, specs []SurfaceFinishSpec, g *feature.Graph, planner *annotate.Planner, group *svgdoc.Node) int {
	count := 0
	gNode := svgdoc.Group(group, "surface-finish")
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
			{X: cx + r + 8, Y: cy - 6},
			{X: cx - r - 8, Y: cy - 6},
			{X: cx, Y: cy - r - 10},
			{X: cx, Y: cy + r + 4},
		}
		pos := planner.RegisterAndPick(candidates, 10, 6)

		leader := svgdoc.NewNode("line").SetF("x1", cx).SetF("y1", cy).SetF("x2", pos.X).SetF("y2", pos.Y)
		leader.Set("stroke", "#000000").SetF("stroke-width", 0.25)
		gNode.Append(leader)

		drawCheckMark(gNode, pos.X, pos.Y, spec.RaMax)
		count++
	}
	return count
}

func drawCheckMark(g *svgdoc.Node, x, y, ra float64) {
	size := 3.0
	path := svgdoc.NewNode("path").Set("d", checkMarkPath(x, y, size))
	path.Set("fill", "none").Set("stroke", "#000000").SetF("stroke-width", 0.2)
	g.Append(path)

	text := svgdoc.NewNode("text").SetF("x", x+size*2.2).SetF("y", y)
	text.Text = geom.FormatMM(ra)
	g.Append(text)
}

// checkMarkPath draws the 60-degree V (two segments meeting below the
// baseline) followed by the long upper bar, per ISO 1302.
func checkMarkPath(x, y, size float64) string {
	x1, y1 := x, y
	x2, y2 := x+size*0.6, y+size
	x3, y3 := x+size*1.8, y-size*1.6
	return "M " + geom.FormatMM(x1) + "," + geom.FormatMM(y1) +
		" L " + geom.FormatMM(x2) + "," + geom.FormatMM(y2) +
		" L " + geom.FormatMM(x3) + "," + geom.FormatMM(y3)
}

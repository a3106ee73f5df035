package view

import (
	"bytes"

	svg "github.com/ajstarks/svgo"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// viewLabels names each cell for the fixed-furniture labels.
var viewLabels = map[config.ViewName]string{
	config.ViewTop:   "TOP",
	config.ViewISO:   "ISOMETRIC",
	config.ViewFront: "FRONT",
	config.ViewRight: "RIGHT SIDE",
}

// RenderFixedFurniture emits the page border, hatch-pattern defs and
// the four view-cell labels using svgo's integer-canvas API, since
// these elements need no sub-mm precision (§4.H, §9 ambient-config
// note on svgo vs svgdoc). The fragment is spliced into doc verbatim
// via svgdoc.NewRawNode.
func RenderFixedFurniture(doc *svgdoc.Node) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	canvas.Def()
	canvas.Pattern(0, 0, 4, 4, "user", `id="hatch45"`)
	canvas.Line(0, 0, 4, 4, "stroke:#888;stroke-width:0.3")
	canvas.PatternEnd()
	canvas.DefEnd()

	canvas.Rect(int(geom.Margin), int(geom.Margin), int(geom.DrawW), int(geom.DrawH),
		"fill:none;stroke:#000;stroke-width:0.5")

	for _, v := range geom.AllViewNames {
		b, ok := geom.CellBounds(v)
		if !ok {
			continue
		}
		canvas.Rect(int(b.XMin), int(b.YMin), int(b.Width()), int(b.Height()),
			"fill:none;stroke:#999;stroke-width:0.2;stroke-dasharray:1,1")
		canvas.Text(int(b.XMin)+2, int(b.YMin)+4, viewLabels[v],
			"font-size:3px;font-family:sans-serif;fill:#555")
	}

	doc.Append(svgdoc.NewRawNode(buf.String()))
}

// RenderTitleBlockFrame draws the title-block border and column
// dividers using svgo (§4.H); the data cells themselves (part name,
// scale, bbox, BOM rows) are emitted as precision svgdoc text by
// RenderTitleBlockData.
func RenderTitleBlockFrame(doc *svgdoc.Node) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	y := int(geom.PageH - geom.TitleH)
	canvas.Rect(int(geom.Margin), y, int(geom.DrawW), int(geom.TitleH),
		"fill:none;stroke:#000;stroke-width:0.5")

	colX := int(geom.Margin) + int(geom.DrawW)*2/3
	canvas.Line(colX, y, colX, int(geom.PageH)-int(geom.Margin),
		"stroke:#000;stroke-width:0.3")

	doc.Append(svgdoc.NewRawNode(buf.String()))
}

// RenderProjectionSymbol draws the first-angle/third-angle ISO 128
// cone-pair glyph in the title-block corner, selected by
// drawing.style.projection (default "third") — supplemented from
// original_source (SPEC_FULL.md §3).
func RenderProjectionSymbol(projection string, doc *svgdoc.Node) {
	g := svgdoc.Group(doc, "projection-symbol")
	x, y := geom.PageW-geom.Margin-28, geom.PageH-geom.TitleH+4
	circle := svgdoc.NewNode("circle").SetF("cx", x).SetF("cy", y+4).SetF("r", 4)
	circle.Set("fill", "none").Set("stroke", "#000000").SetF("stroke-width", 0.3)
	g.Append(circle)

	near, far := coneOffsets(projection)
	cone1 := svgdoc.NewNode("path").Set("d", conePath(x-near, y+4, 3))
	cone1.Set("fill", "none").Set("stroke", "#000000").SetF("stroke-width", 0.25)
	cone2 := svgdoc.NewNode("path").Set("d", conePath(x+far, y+4, 3))
	cone2.Set("fill", "none").Set("stroke", "#000000").SetF("stroke-width", 0.25)
	g.Append(cone1)
	g.Append(cone2)

	label := svgdoc.NewNode("text").SetF("x", x).SetF("y", y+10).Set("text-anchor", "middle")
	if projection == "first" {
		label.Text = "1st ANGLE"
	} else {
		label.Text = "3rd ANGLE"
	}
	g.Append(label)
}

func coneOffsets(projection string) (near, far float64) {
	if projection == "first" {
		return 10, 5
	}
	return 5, 10
}

func conePath(cx, cy, size float64) string {
	return "M " + geom.FormatMM(cx-size) + "," + geom.FormatMM(cy-size) +
		" L " + geom.FormatMM(cx+size) + "," + geom.FormatMM(cy) +
		" L " + geom.FormatMM(cx-size) + "," + geom.FormatMM(cy+size) + " Z"
}

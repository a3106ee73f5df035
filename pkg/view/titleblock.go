package view

import (
	"fmt"
	"sort"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// BOMRow is one aggregated bill-of-materials line: in assembly mode,
// instances are grouped by (name, material) with a summed quantity
// rather than emitted one row per instance (supplemented from
// original_source; SPEC_FULL.md §3).
type BOMRow struct {
	Name     string
	Material string
	Qty      int
}

const bomExcerptRows = 4

// AggregateBOM groups cfg.Parts by (id, material) and sums quantities,
// returned in a stable sort by name then material.
func AggregateBOM(cfg *config.Config) []BOMRow {
	type key struct{ name, material string }
	totals := map[key]int{}
	for _, p := range cfg.Parts {
		mat := ""
		if len(p.Shapes) > 0 {
			mat = p.Shapes[0].Material
		}
		qty := p.Qty
		if qty == 0 {
			qty = 1
		}
		totals[key{p.ID, mat}] += qty
	}
	rows := make([]BOMRow, 0, len(totals))
	for k, qty := range totals {
		rows = append(rows, BOMRow{Name: k.name, Material: k.material, Qty: qty})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Material < rows[j].Material
	})
	return rows
}

// RenderTitleBlockData fills the title-block strip with the part name,
// scale, bounding-box dimensions and a BOM excerpt (assembly mode
// only), truncated to bomExcerptRows with a "+N more" row (§4.H).
func RenderTitleBlockData(partName string, scale float64, bbox geom.Box, bom []BOMRow, doc *svgdoc.Node) {
	g := svgdoc.Group(doc, "title-block")
	x0 := geom.Margin + 2
	y := geom.PageH - geom.TitleH + 6

	title := svgdoc.NewNode("text").SetF("x", x0).SetF("y", y)
	title.Text = partName
	title.Set("font-weight", "bold")
	g.Append(title)

	scaleLine := svgdoc.NewNode("text").SetF("x", x0).SetF("y", y+6)
	scaleLine.Text = fmt.Sprintf("SCALE %s:1", geom.FormatMM(scale))
	g.Append(scaleLine)

	bboxLine := svgdoc.NewNode("text").SetF("x", x0).SetF("y", y+12)
	bboxLine.Text = fmt.Sprintf("%s x %s x %s mm",
		geom.FormatMM(bbox.Width()), geom.FormatMM(bbox.Height()), geom.FormatMM(bbox.Width()))
	g.Append(bboxLine)

	if len(bom) == 0 {
		return
	}
	bomX := geom.Margin + geom.DrawW*2/3 + 2
	bomG := svgdoc.Group(g, "bom")
	rowY := geom.PageH - geom.TitleH + 5
	shown := bom
	more := 0
	if len(bom) > bomExcerptRows {
		shown = bom[:bomExcerptRows]
		more = len(bom) - bomExcerptRows
	}
	for _, row := range shown {
		line := svgdoc.NewNode("text").SetF("x", bomX).SetF("y", rowY)
		line.Text = fmt.Sprintf("%d x %s (%s)", row.Qty, row.Name, row.Material)
		bomG.Append(line)
		rowY += 5
	}
	if more > 0 {
		line := svgdoc.NewNode("text").SetF("x", bomX).SetF("y", rowY)
		line.Text = fmt.Sprintf("+%d more", more)
		bomG.Append(line)
	}
}

// RenderRevisionTable draws the 3-column (rev, description, date) strip
// above the title block when revisions is non-empty (supplemented from
// original_source; SPEC_FULL.md §3). Omitted entirely when empty.
func RenderRevisionTable(revisions []config.Revision, doc *svgdoc.Node) {
	if len(revisions) == 0 {
		return
	}
	g := svgdoc.Group(doc, "revision-table")
	x0 := geom.Margin + 2
	rowH := 4.5
	y0 := geom.PageH - geom.TitleH - float64(len(revisions)+1)*rowH - 2

	header := svgdoc.NewNode("text").SetF("x", x0).SetF("y", y0)
	header.Text = "REV   DESCRIPTION                    DATE"
	header.Set("font-weight", "bold")
	g.Append(header)

	for i, r := range revisions {
		y := y0 + float64(i+1)*rowH
		line := svgdoc.NewNode("text").SetF("x", x0).SetF("y", y)
		line.Text = fmt.Sprintf("%-5s %-30s %s", r.Rev, r.Description, r.Date)
		g.Append(line)
	}
}

package dimension

import (
	"math"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// Baseline implements the baseline/ordinate engine of §4.G: every
// dimension references a single named datum point. When ordinate is
// true, dimension lines are suppressed and only the offset value is
// printed at the end of each extension line (the S3 scenario).
func Baseline(view config.ViewName, vd *kernel.ViewData, xf Transform, datum kernel.Point, ordinate bool, group *svgdoc.Node, tel *Telemetry) int {
	circles := collectCircles(vd, false)
	positions := dedupePositions(circles, 0.1)
	count := 0
	for _, c := range positions {
		offset := c.CU - datum.U
		if math.Abs(offset) < 0.1 {
			continue // within 0.1mm of the datum origin: nothing to call out
		}
		id := tel.NextID(view)
		px, py := xf.ToPage(c.CU, c.CV)
		dx, dy := xf.ToPage(datum.U, datum.V)

		g := svgdoc.Group(group, "dim baseline")
		g.Set("id", id)

		ext := svgdoc.NewNode("line").SetF("x1", px).SetF("y1", py).SetF("x2", px).SetF("y2", dy-DimLineOffset)
		g.Append(ext)

		text := svgdoc.NewNode("text").SetF("x", px).SetF("y", dy-DimLineOffset-1)
		text.Text = geom.FormatMM(offset)
		g.Append(text)

		if !ordinate {
			line := svgdoc.NewNode("line").SetF("x1", dx).SetF("y1", dy-DimLineOffset).SetF("x2", px).SetF("y2", dy-DimLineOffset)
			g.Append(line)
		}

		tel.Emit(Record{DimID: id, Family: "linear_h", Value: offset, View: view, DrawingObjectID: id})
		count++
	}
	return count
}

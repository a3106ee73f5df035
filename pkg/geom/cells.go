package geom

import "github.com/drawforge/drawforge/pkg/config"

// Fixed A3-landscape page layout (mm), grounded in the original
// implementation's drawing constants (ISO 128 / KS B 0001 title-block
// conventions).
const (
	PageW  = 420.0
	PageH  = 297.0
	Margin = 15.0
	TitleH = 35.0

	DrawW = PageW - 2*Margin
	DrawH = PageH - 2*Margin - TitleH

	CellW = DrawW / 2
	CellH = DrawH / 2
)

// viewCellCenters are the 2x2-grid cell centers in third-angle
// projection layout: top-left=top, top-right=iso, bottom-left=front,
// bottom-right=right.
var viewCellCenters = map[config.ViewName]Point{
	config.ViewTop:   {X: Margin + CellW*0.5, Y: Margin + CellH*0.5},
	config.ViewISO:   {X: Margin + CellW*1.5, Y: Margin + CellH*0.5},
	config.ViewFront: {X: Margin + CellW*0.5, Y: Margin + CellH*1.5},
	config.ViewRight: {X: Margin + CellW*1.5, Y: Margin + CellH*1.5},
}

// CellCenter returns the fixed page-mm center of a view cell.
func CellCenter(v config.ViewName) (Point, bool) {
	p, ok := viewCellCenters[v]
	return p, ok
}

// CellBounds returns the fixed page-mm bounds of a view cell.
func CellBounds(v config.ViewName) (Box, bool) {
	c, ok := viewCellCenters[v]
	if !ok {
		return Box{}, false
	}
	return Box{
		XMin: c.X - CellW/2, YMin: c.Y - CellH/2,
		XMax: c.X + CellW/2, YMax: c.Y + CellH/2,
	}, true
}

// ClassifyByPosition returns the view whose cell contains (x, y), or
// "" if none does. Used by the QA scorer and post-processor to bucket
// page elements by view without carrying an explicit view tag.
func ClassifyByPosition(x, y float64) config.ViewName {
	for _, v := range []config.ViewName{config.ViewTop, config.ViewISO, config.ViewFront, config.ViewRight} {
		if b, _ := CellBounds(v); b.Contains(x, y) {
			return v
		}
	}
	return ""
}

// AllViewNames lists the four kernel-facing views in fixed cell order.
var AllViewNames = []config.ViewName{config.ViewTop, config.ViewISO, config.ViewFront, config.ViewRight}

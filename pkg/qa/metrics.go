package qa

import (
	"math"
	"strings"

	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
	"github.com/drawforge/drawforge/pkg/view"
)

func buildGeometryClasses() map[string]bool {
	classes := make(map[string]bool, len(view.EdgeStyles))
	for _, style := range view.EdgeStyles {
		classes[style.Class] = true
	}
	return classes
}

// Metrics is the full set of raw counts §4.J's weighting reduces to a
// score.
type Metrics struct {
	ISOHiddenCount      int  `json:"iso_hidden_count"`
	OverflowCount       int  `json:"overflow_count"`
	TextOverlapPairs    int  `json:"text_overlap_pairs"`
	DimOverlapPairs     int  `json:"dim_overlap_pairs"`
	NotesOverflow       bool `json:"notes_overflow"`
	GDTUnanchored       int  `json:"gdt_unanchored"`
	DenseISO            bool `json:"dense_iso"`
	StrokeViolations    int  `json:"stroke_violations"`
	FloatPrecisionCount int  `json:"float_precision_count"`
}

// Collect runs every metric over doc. profile is the stroke profile
// stroke_violations checks against (typically postprocess.KSProfile).
func Collect(doc *svgdoc.Document, profile map[string]StrokeLookup) Metrics {
	return Metrics{
		ISOHiddenCount:      countISOHidden(doc),
		OverflowCount:       len(DetectOverflow(doc)),
		TextOverlapPairs:    len(DetectTextOverlaps(doc)),
		DimOverlapPairs:     detectDimOverlaps(doc),
		NotesOverflow:       checkNotesOverflow(doc),
		GDTUnanchored:       countGDTUnanchored(doc),
		DenseISO:            checkDenseISO(doc),
		StrokeViolations:    countStrokeViolations(doc, profile),
		FloatPrecisionCount: countFloatPrecision(doc),
	}
}

// countISOHidden counts hidden-class groups whose center lies in the
// ISO cell.
func countISOHidden(doc *svgdoc.Document) int {
	count := 0
	for _, n := range doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && hiddenClasses[n.Class()] }) {
		cx, cy := n.BBox().Center()
		if geom.ClassifyByPosition(cx, cy) == "iso" {
			count++
		}
	}
	return count
}

// Overflow is one geometry group exceeding its view cell.
type Overflow struct {
	View        string
	Class       string
	OverflowMM  float64
}

const overflowToleranceMM = 2.0

// DetectOverflow finds geometry groups whose bbox exceeds their
// classified view cell by more than the fixed tolerance.
func DetectOverflow(doc *svgdoc.Document) []Overflow {
	var out []Overflow
	for _, n := range doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && geometryClasses[n.Class()] }) {
		bb := n.BBox()
		cx, cy := bb.Center()
		vn := geom.ClassifyByPosition(cx, cy)
		if vn == "" {
			continue
		}
		cell, ok := geom.CellBounds(vn)
		if !ok {
			continue
		}
		_, _, _, _, overflowPx := geom.ExceedsBy(cell, bb)
		if overflowPx > overflowToleranceMM {
			out = append(out, Overflow{View: string(vn), Class: n.Class(), OverflowMM: overflowPx})
		}
	}
	return out
}

// TextOverlap is one pair of text elements whose bboxes overlap beyond
// the threshold, within the same view cell.
type TextOverlap struct {
	Text1, Text2 string
	IoU          float64
	View         string
}

// DetectTextOverlaps groups text nodes by the view cell their center
// falls in (or "page" for furniture text) and flags any pair whose IoU
// exceeds the threshold.
func DetectTextOverlaps(doc *svgdoc.Document) []TextOverlap {
	byView := make(map[string][]*svgdoc.Node)
	for _, t := range doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "text" }) {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		bb := t.BBox()
		if bb.Area() < 0.1 {
			continue
		}
		cx, cy := bb.Center()
		vn := string(geom.ClassifyByPosition(cx, cy))
		if vn == "" {
			vn = "page"
		}
		byView[vn] = append(byView[vn], t)
	}

	var overlaps []TextOverlap
	for vn, texts := range byView {
		for i := 0; i < len(texts); i++ {
			for j := i + 1; j < len(texts); j++ {
				iou := geom.IoU(texts[i].BBox(), texts[j].BBox())
				if iou > TextOverlapIoUThreshold {
					overlaps = append(overlaps, TextOverlap{
						Text1: truncate(texts[i].Text, 30),
						Text2: truncate(texts[j].Text, 30),
						IoU:   iou,
						View:  vn,
					})
				}
			}
		}
	}
	return overlaps
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// detectDimOverlaps counts dimension texts whose bbox significantly
// overlaps any individual geometry path bbox (group bboxes are too
// coarse to be useful here).
func detectDimOverlaps(doc *svgdoc.Document) int {
	var dimTexts []geom.Box
	for _, g := range doc.Root.ByClassPrefix("dimensions-") {
		for _, t := range g.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "text" }) {
			bb := t.BBox()
			if bb.Area() > 0.1 {
				dimTexts = append(dimTexts, bb)
			}
		}
	}

	var geoPaths []geom.Box
	for _, class := range []string{"hard_visible", "outer_visible"} {
		for _, g := range doc.Root.ByClass(class) {
			for _, c := range g.Children {
				if c.Tag == "path" {
					geoPaths = append(geoPaths, c.BBox())
				}
			}
		}
	}

	overlaps := 0
	for _, dt := range dimTexts {
		for _, pb := range geoPaths {
			if geom.IoU(dt, pb) > DimOverlapIoUThreshold {
				overlaps++
				break
			}
		}
	}
	return overlaps
}

// checkNotesOverflow reports whether any general-notes text intrudes
// on the title block.
func checkNotesOverflow(doc *svgdoc.Document) bool {
	for _, g := range doc.Root.ByClass("general-notes") {
		for _, t := range g.Children {
			if t.Tag != "text" {
				continue
			}
			y, _ := t.GetF("y")
			if y > NotesOverflowY {
				return true
			}
		}
	}
	return false
}

// countGDTUnanchored counts feature-control frames whose leader line
// is effectively zero-length (no real anchor).
func countGDTUnanchored(doc *svgdoc.Document) int {
	count := 0
	for _, f := range doc.Root.ByClass("fcf") {
		for _, c := range f.Children {
			if c.Tag != "line" {
				continue
			}
			x1, _ := c.GetF("x1")
			y1, _ := c.GetF("y1")
			x2, _ := c.GetF("x2")
			y2, _ := c.GetF("y2")
			if math.Hypot(x2-x1, y2-y1) < 1.0 {
				count++
			}
		}
	}
	return count
}

// checkDenseISO reports whether the ISO cell's total geometry element
// count exceeds DenseISOThreshold.
func checkDenseISO(doc *svgdoc.Document) bool {
	total := 0
	for _, n := range doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && geometryClasses[n.Class()] }) {
		cx, cy := n.BBox().Center()
		if geom.ClassifyByPosition(cx, cy) != "iso" {
			continue
		}
		total += countPaths(n)
	}
	return total > DenseISOThreshold
}

func countPaths(n *svgdoc.Node) int {
	return len(n.FindAll(func(m *svgdoc.Node) bool { return m.Tag == "path" }))
}

// StrokeLookup is the subset of a stroke profile entry stroke
// violations check against; kept independent of pkg/postprocess's
// StrokeSpec so pkg/qa has no import-time dependency on it.
type StrokeLookup struct {
	Stroke      string
	StrokeWidth string
	Dash        string
}

// countStrokeViolations counts groups whose stroke attributes don't
// match their profile entry, one violation per group regardless of how
// many attributes differ.
func countStrokeViolations(doc *svgdoc.Document, profile map[string]StrokeLookup) int {
	violations := 0
	for _, n := range doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" }) {
		class := n.Class()
		if class == "" {
			continue
		}
		spec, ok := profile[class]
		if !ok {
			for key, s := range profile {
				if prefix, isWild := strings.CutSuffix(key, "*"); isWild && strings.HasPrefix(class, prefix) {
					spec, ok = s, true
					break
				}
			}
		}
		if !ok {
			continue
		}
		if strokeViolates(n, spec) {
			violations++
		}
	}
	return violations
}

func strokeViolates(n *svgdoc.Node, spec StrokeLookup) bool {
	if v, ok := n.Get("stroke"); ok && v != spec.Stroke {
		return true
	}
	if v, ok := n.Get("stroke-width"); ok && v != spec.StrokeWidth {
		return true
	}
	if v, ok := n.Get("stroke-dasharray"); ok && v != spec.Dash {
		return true
	}
	return false
}

var coordAttrs = []string{"x", "y", "x1", "y1", "x2", "y2", "cx", "cy", "r", "width", "height"}

// countFloatPrecision counts coordinate attributes and d/points floats
// carrying FloatPrecisionMinDecimals or more decimal places.
func countFloatPrecision(doc *svgdoc.Document) int {
	total := 0
	doc.Root.Walk(func(n *svgdoc.Node) {
		for _, attr := range coordAttrs {
			v, ok := n.Get(attr)
			if !ok || !strings.Contains(v, ".") {
				continue
			}
			decimals := len(v[strings.LastIndex(v, ".")+1:])
			if decimals >= FloatPrecisionMinDecimals {
				total++
			}
		}
		switch n.Tag {
		case "path":
			d, _ := n.Get("d")
			total += geom.CountLongFloats(d, FloatPrecisionMinDecimals)
		case "polyline", "polygon":
			pts, _ := n.Get("points")
			total += geom.CountLongFloats(pts, FloatPrecisionMinDecimals)
		}
	})
	return total
}

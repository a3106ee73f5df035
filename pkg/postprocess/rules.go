package postprocess

import (
	"math"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// HiddenClasses is the set of edge-group classes removed from the ISO
// cell by rule 1.
var HiddenClasses = map[string]bool{
	"hard_hidden": true, "outer_hidden": true, "smooth_hidden": true, "iso_hidden": true,
}

// roundableAttrs is the fixed attribute list rule 4 rounds when the
// current text is longer than the rounded form (§4.I rule 4).
var roundableAttrs = []string{"x", "y", "x1", "y1", "x2", "y2", "cx", "cy", "r", "width", "height"}

// SmoothVisiblePathThreshold bounds the ISO cell's smooth_visible edge
// count (rule 5). Left deliberately distinct from pkg/view's
// SmoothVisibleEdgeThreshold (§9's open question on unification): this
// one counts rendered SVG paths post-render, not pre-render kernel
// edges, so the two naturally diverge.
const SmoothVisiblePathThreshold = 600

// RemoveISOHidden deletes every hidden-class `<g>` whose first
// drawable child's bbox center lies inside the ISO cell (§4.I rule 1).
func RemoveISOHidden(doc *svgdoc.Document, apply bool) int {
	groups := doc.Root.FindAll(func(n *svgdoc.Node) bool {
		return n.Tag == "g" && HiddenClasses[n.Class()]
	})
	count := 0
	for _, g := range groups {
		if len(g.Children) == 0 {
			continue
		}
		b := g.Children[0].BBox()
		cx, cy := b.Center()
		if geom.ClassifyByPosition(cx, cy) != config.ViewISO {
			continue
		}
		count++
		if apply {
			g.Remove()
		}
	}
	return count
}

// NormalizeStrokes sets stroke/stroke-width/stroke-dasharray on every
// `<g>` whose class matches profile, including the dimensions-*
// wildcard (§4.I rule 2).
func NormalizeStrokes(doc *svgdoc.Document, profile map[string]StrokeSpec, apply bool) int {
	groups := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" })
	count := 0
	for _, g := range groups {
		spec, ok := lookupProfile(profile, g.Class())
		if !ok {
			continue
		}
		if strokeDiffers(g, spec) {
			count++
		}
		if apply {
			applyProfile(g, spec)
		}
	}
	return count
}

func strokeDiffers(n *svgdoc.Node, spec StrokeSpec) bool {
	stroke, _ := n.Get("stroke")
	widthStr, _ := n.Get("stroke-width")
	dash, _ := n.Get("stroke-dasharray")
	return stroke != spec.Stroke || widthStr != geom.FormatMM(spec.StrokeWidth) || dash != spec.Dash
}

func applyProfile(n *svgdoc.Node, spec StrokeSpec) {
	n.Set("stroke", spec.Stroke)
	n.SetF("stroke-width", spec.StrokeWidth)
	if spec.Dash != "" {
		n.Set("stroke-dasharray", spec.Dash)
	}
}

// noteCharBudget is the soft-wrap width used by the post-process
// rewrap rule, distinct from the repair pass's wider 163-character
// rebuild budget (§4.I rule 3 vs §4.K rebuild_notes).
const noteCharBudget = 90

// RewrapNotes soft-wraps every `<text>` under general-notes to
// noteCharBudget, re-emitting with a consistent 4mm line pitch (§4.I
// rule 3; superseded by the repair pass's rebuild_notes when the QA
// score requires a full rebuild).
func RewrapNotes(doc *svgdoc.Document, apply bool) int {
	groups := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && n.Class() == "general-notes" })
	count := 0
	for _, g := range groups {
		for _, t := range g.Children {
			if t.Tag != "text" {
				continue
			}
			lines := wrapText(t.Text, noteCharBudget)
			if len(lines) <= 1 {
				continue
			}
			count++
			if !apply {
				continue
			}
			rewrapAsTspans(t, lines)
		}
	}
	return count
}

func wrapText(s string, budget int) []string {
	words := splitWords(s)
	var lines []string
	cur := ""
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if len(cur)+1+len(w) > budget {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func rewrapAsTspans(t *svgdoc.Node, lines []string) {
	x, _ := t.Get("x")
	y, _ := t.GetF("y")
	t.Text = ""
	t.Children = nil
	const pitch = 4.0
	for i, line := range lines {
		ts := svgdoc.NewNode("tspan").Set("x", x).SetF("y", y+float64(i)*pitch)
		ts.Text = line
		t.Append(ts)
	}
}

// RoundCoordinates rounds the fixed attribute list to 2 decimals
// whenever the rounded form is shorter than the current text, and
// rounds any ≥4-decimal float found inside `d`/`points` (§4.I rule 4).
func RoundCoordinates(doc *svgdoc.Document, apply bool) int {
	count := 0
	doc.Root.Walk(func(n *svgdoc.Node) {
		for _, key := range roundableAttrs {
			v, ok := n.Get(key)
			if !ok {
				continue
			}
			f, ok := n.GetF(key)
			if !ok {
				continue
			}
			rounded := geom.FormatMM(f)
			if len(rounded) < len(v) {
				count++
				if apply {
					n.Set(key, rounded)
				}
			}
		}
		for _, key := range []string{"d", "points"} {
			v, ok := n.Get(key)
			if !ok {
				continue
			}
			if geom.CountLongFloats(v, 4) == 0 {
				continue
			}
			count++
			if apply {
				n.Set(key, geom.RoundFloatsInString(v, 2))
			}
		}
	})
	return count
}

// SimplifyISO always removes iso_visible groups from the ISO cell and
// drops smooth_visible once its path count exceeds
// SmoothVisiblePathThreshold (§4.I rule 5).
func SimplifyISO(doc *svgdoc.Document, apply bool) int {
	count := 0
	inISOCell := func(g *svgdoc.Node) bool {
		cx, cy := g.BBox().Center()
		return geom.ClassifyByPosition(cx, cy) == config.ViewISO
	}
	isoVisible := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && n.Class() == "iso_visible" && inISOCell(n) })
	for _, g := range isoVisible {
		count++
		if apply {
			g.Remove()
		}
	}

	smoothVisible := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && n.Class() == "smooth_visible" && inISOCell(n) })
	for _, g := range smoothVisible {
		if len(g.Children) <= SmoothVisiblePathThreshold {
			continue
		}
		count++
		if apply {
			g.Remove()
		}
	}
	return count
}

// GDTAudit is the detail record rule 6 produces alongside its anchored
// count (§4.I rule 6).
type GDTAudit struct {
	Total    int
	Anchored int
	Overflow int
}

// AuditGDT counts total feature-control frames, anchored ones (leader
// polyline length ≥ 1mm) and those whose bbox center falls outside
// every view cell, returning the anchored count as the rule's primary
// count (§4.I rule 6).
func AuditGDT(doc *svgdoc.Document) (int, GDTAudit) {
	frames := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "g" && n.Class() == "fcf" })
	audit := GDTAudit{Total: len(frames)}
	for _, f := range frames {
		leaderLen := 0.0
		for _, c := range f.Children {
			if c.Tag != "line" {
				continue
			}
			x1, _ := c.GetF("x1")
			y1, _ := c.GetF("y1")
			x2, _ := c.GetF("x2")
			y2, _ := c.GetF("y2")
			leaderLen = math.Hypot(x2-x1, y2-y1)
		}
		if leaderLen >= 1.0 {
			audit.Anchored++
		}
		b := f.BBox()
		cx, cy := b.Center()
		if geom.ClassifyByPosition(cx, cy) == "" {
			audit.Overflow++
		}
	}
	return audit.Anchored, audit
}

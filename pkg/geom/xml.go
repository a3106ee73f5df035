package geom

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML-reserved characters in s.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// TextWidth approximates rendered text width in mm: len * fontSize *
// 0.55, the heuristic named in §4.A.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * 0.55
}

// TextAnchorOffset returns the x-offset to apply to a text's left edge
// given its CSS text-anchor and a width, so that callers can derive a
// left-aligned AABB regardless of anchor.
func TextAnchorOffset(anchor string, width float64) float64 {
	switch anchor {
	case "middle":
		return -width / 2
	case "end":
		return -width
	default: // "start" / ""
		return 0
	}
}

// TextBBox returns the AABB of a text element anchored at (x, y) with
// the given anchor, font size (mm) and baseline-to-cap-height
// approximation (0.72 * fontSize above baseline, 0.22 * fontSize below,
// matching typical sans-serif metrics).
func TextBBox(x, y float64, s string, fontSize float64, anchor string) Box {
	w := TextWidth(s, fontSize)
	x0 := x + TextAnchorOffset(anchor, w)
	return Box{
		XMin: x0, XMax: x0 + w,
		YMin: y - 0.72*fontSize, YMax: y + 0.22*fontSize,
	}
}

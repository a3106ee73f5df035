package geom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// floatRe tolerates locale-free signed floats/ints, matching the design
// note in spec.md §9: never rely on the surrounding XML parser for
// numerics inside `d`/`points` strings.
var floatRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ExtractFloats returns every float literal found in s, in order.
func ExtractFloats(s string) []float64 {
	matches := floatRe.FindAllString(s, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Point is a 2D page-mm coordinate.
type Point struct{ X, Y float64 }

// ParsePoints parses an SVG `points="x1,y1 x2,y2 ..."` or `d="M x y L
// x y ..."`-style string into coordinate pairs, tolerating either comma
// or whitespace separators. An odd trailing float is dropped.
func ParsePoints(s string) []Point {
	floats := ExtractFloats(s)
	n := len(floats) / 2
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Point{X: floats[2*i], Y: floats[2*i+1]})
	}
	return out
}

// BoundsOfPoints returns the AABB of a point slice. The zero Box is
// returned for an empty slice.
func BoundsOfPoints(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{XMin: pts[0].X, YMin: pts[0].Y, XMax: pts[0].X, YMax: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.XMin {
			b.XMin = p.X
		}
		if p.X > b.XMax {
			b.XMax = p.X
		}
		if p.Y < b.YMin {
			b.YMin = p.Y
		}
		if p.Y > b.YMax {
			b.YMax = p.Y
		}
	}
	return b
}

// RoundN rounds v to n decimal places.
func RoundN(v float64, n int) float64 {
	scale := 1.0
	for i := 0; i < n; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

// FormatN formats v to exactly n decimals, the default numeric output
// policy of §4.A (2 decimals).
func FormatN(v float64, n int) string {
	return strconv.FormatFloat(RoundN(v, n), 'f', n, 64)
}

// RoundFloatsInString rounds every float literal found in s to n
// decimals, reassembling the original separators; integer literals
// (no decimal point) are left as written. Used to normalize
// `d`/`points` strings to the numeric output policy.
func RoundFloatsInString(s string, n int) string {
	var b strings.Builder
	last := 0
	for _, loc := range floatRe.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		lit := s[loc[0]:loc[1]]
		if strings.IndexByte(lit, '.') < 0 {
			b.WriteString(lit)
		} else {
			v, _ := strconv.ParseFloat(lit, 64)
			b.WriteString(FormatN(v, n))
		}
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// CountLongFloats counts float literals in s with at least minDecimals
// decimal digits, used by the QA scorer's float_precision_count metric.
func CountLongFloats(s string, minDecimals int) int {
	count := 0
	for _, m := range floatRe.FindAllString(s, -1) {
		dot := strings.IndexByte(m, '.')
		if dot < 0 {
			continue
		}
		if len(m)-dot-1 >= minDecimals {
			count++
		}
	}
	return count
}

// FormatMM formats a value as a plain 2-decimal mm string, the default
// numeric output policy.
func FormatMM(v float64) string {
	return fmt.Sprintf("%.2f", RoundN(v, 2))
}

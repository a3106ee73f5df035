// Package svgdoc implements the single exclusively-owned, mutable SVG
// tree that the rendering, post-processing, repair and QA passes share
// (§3 "Ownership & lifecycle", §9 "own the parsed document in an
// explicit tree"). Unlike `github.com/ajstarks/svgo`'s streaming
// int-coordinate writer, a Document is a retained node tree that can be
// walked, queried and mutated in place between named passes, and
// serialized to 2-decimal-mm precision on demand.
package svgdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drawforge/drawforge/pkg/geom"
)

// Node is one element in the tree. Attrs preserves insertion order so
// serialization is deterministic (§5 "iteration order ... must be
// deterministic").
type Node struct {
	Tag      string
	attrKeys []string
	attrs    map[string]string
	Text     string
	Children []*Node
	Parent   *Node

	// RawXML holds a pre-rendered XML fragment (e.g. produced by
	// ajstarks/svgo for fixed, int-coordinate furniture) to splice in
	// verbatim instead of recursing into Children/Text. Used by the
	// view composer for border/defs/cell-label furniture.
	RawXML string
}

// NewRawNode wraps a pre-rendered XML fragment as a leaf node.
func NewRawNode(xml string) *Node {
	return &Node{Tag: "raw", RawXML: xml}
}

// NewNode returns an empty element node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag, attrs: make(map[string]string)}
}

// Set assigns an attribute, recording first-seen key order.
func (n *Node) Set(key, value string) *Node {
	if _, ok := n.attrs[key]; !ok {
		n.attrKeys = append(n.attrKeys, key)
	}
	n.attrs[key] = value
	return n
}

// SetF assigns a numeric attribute formatted to 2 decimals.
func (n *Node) SetF(key string, value float64) *Node {
	return n.Set(key, geom.FormatMM(value))
}

// Get returns an attribute value and whether it was set.
func (n *Node) Get(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// GetF parses an attribute as a float; ok is false if absent or malformed.
func (n *Node) GetF(key string) (float64, bool) {
	v, ok := n.attrs[key]
	if !ok {
		return 0, false
	}
	fs := geom.ExtractFloats(v)
	if len(fs) == 0 {
		return 0, false
	}
	return fs[0], true
}

// Class returns the node's `class` attribute.
func (n *Node) Class() string {
	c, _ := n.Get("class")
	return c
}

// Append adds a child node and wires its parent pointer.
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// Remove detaches this node from its parent; a no-op on the root.
func (n *Node) Remove() {
	if n.Parent == nil {
		return
	}
	siblings := n.Parent.Children
	for i, c := range siblings {
		if c == n {
			n.Parent.Children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// Walk visits n and every descendant, document order, depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant (self included) matching pred, in
// document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(m *Node) {
		if pred(m) {
			out = append(out, m)
		}
	})
	return out
}

// ByClass returns every descendant whose class attribute equals c.
func (n *Node) ByClass(c string) []*Node {
	return n.FindAll(func(m *Node) bool { return m.Class() == c })
}

// ByClassPrefix returns every descendant whose class starts with
// prefix, used by the "dimensions-*" / "plan-dimensions-*" wildcard
// rules (§4.I, §4.K).
func (n *Node) ByClassPrefix(prefix string) []*Node {
	return n.FindAll(func(m *Node) bool { return strings.HasPrefix(m.Class(), prefix) })
}

// Document is the exclusively-owned SVG tree, rooted at a single <svg>
// element fixed to A3-landscape page dimensions (§6).
type Document struct {
	Root *Node
}

// NewDocument creates the fixed root structure required by §6: a
// 420x297mm <svg> element with the standard viewBox.
func NewDocument() *Document {
	root := NewNode("svg")
	root.Set("xmlns", "http://www.w3.org/2000/svg")
	root.Set("width", "420mm")
	root.Set("height", "297mm")
	root.Set("viewBox", "0 0 420 297")
	return &Document{Root: root}
}

// Group creates a new <g> element under parent with the given class,
// and appends it.
func Group(parent *Node, class string) *Node {
	g := NewNode("g").Set("class", class)
	parent.Append(g)
	return g
}

// BBox computes the AABB of a node: for text it uses the font-size/
// anchor heuristic of pkg/geom; for path/polyline/polygon it parses `d`
// / `points`; for rect/circle/line it reads the relevant attributes;
// for a group it's the union of child bboxes (§4.A contract).
func (n *Node) BBox() geom.Box {
	switch n.Tag {
	case "text", "tspan":
		x, _ := n.GetF("x")
		y, _ := n.GetF("y")
		size, ok := n.GetF("font-size")
		if !ok {
			size = 2.5
		}
		anchor, _ := n.Get("text-anchor")
		return geom.TextBBox(x, y, n.Text, size, anchor)
	case "path":
		d, _ := n.Get("d")
		return geom.BoundsOfPoints(geom.ParsePoints(d))
	case "polyline", "polygon":
		pts, _ := n.Get("points")
		return geom.BoundsOfPoints(geom.ParsePoints(pts))
	case "rect":
		x, _ := n.GetF("x")
		y, _ := n.GetF("y")
		w, _ := n.GetF("width")
		h, _ := n.GetF("height")
		return geom.NewBox(x, y, x+w, y+h)
	case "circle":
		cx, _ := n.GetF("cx")
		cy, _ := n.GetF("cy")
		r, _ := n.GetF("r")
		return geom.NewBox(cx-r, cy-r, cx+r, cy+r)
	case "line":
		x1, _ := n.GetF("x1")
		y1, _ := n.GetF("y1")
		x2, _ := n.GetF("x2")
		y2, _ := n.GetF("y2")
		return geom.NewBox(x1, y1, x2, y2)
	default:
		if len(n.Children) == 0 {
			return geom.Box{}
		}
		boxes := make([]geom.Box, 0, len(n.Children))
		for _, c := range n.Children {
			b := c.BBox()
			if b.Area() > 0 || b.Width() > 0 || b.Height() > 0 {
				boxes = append(boxes, b)
			}
		}
		return geom.UnionAll(boxes)
	}
}

// Render serializes the document to XML, attributes in insertion
// order, values left exactly as stored (callers round before
// serialization per the numeric output policy).
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	d.Root.render(&b, 0)
	return b.String()
}

func (n *Node) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Tag == "raw" {
		b.WriteString(n.RawXML)
		return
	}
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(n.Tag)
	keys := make([]string, len(n.attrKeys))
	copy(keys, n.attrKeys)
	for _, k := range keys {
		fmt.Fprintf(b, ` %s="%s"`, k, geom.EscapeXML(n.attrs[k]))
	}
	if len(n.Children) == 0 && n.Text == "" {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">")
	if n.Text != "" {
		b.WriteString(geom.EscapeXML(n.Text))
	}
	if len(n.Children) > 0 {
		b.WriteString("\n")
		for _, c := range n.Children {
			c.render(b, depth+1)
		}
		b.WriteString(indent)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">\n")
}

// SortedClasses returns the distinct `class` values present under n, in
// lexical order — a small helper the QA scorer uses when it needs a
// deterministic pass over group classes.
func (n *Node) SortedClasses() []string {
	set := map[string]bool{}
	n.Walk(func(m *Node) {
		if c := m.Class(); c != "" {
			set[c] = true
		}
	})
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

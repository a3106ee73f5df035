package postprocess

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/svgdoc"
)

func TestRemoveISOHiddenDeletesOnlyInsideISOCell(t *testing.T) {
	doc := svgdoc.NewDocument()

	isoHidden := svgdoc.Group(doc.Root, "iso_hidden")
	isoHidden.Append(svgdoc.NewNode("line").SetF("x1", 250).SetF("y1", 50).SetF("x2", 260).SetF("y2", 60))

	frontHidden := svgdoc.Group(doc.Root, "hard_hidden")
	frontHidden.Append(svgdoc.NewNode("line").SetF("x1", 50).SetF("y1", 200).SetF("x2", 60).SetF("y2", 210))

	count := RemoveISOHidden(doc, true)

	if count != 1 {
		t.Fatalf("expected exactly 1 removed group (the one in the iso cell), got %d", count)
	}
	if len(doc.Root.ByClass("iso_hidden")) != 0 {
		t.Fatal("expected the iso_hidden group inside the iso cell to be removed")
	}
	if len(doc.Root.ByClass("hard_hidden")) != 1 {
		t.Fatal("expected the hard_hidden group in the front cell to survive")
	}
}

func TestNormalizeStrokesAppliesProfile(t *testing.T) {
	doc := svgdoc.NewDocument()
	g := svgdoc.Group(doc.Root, "hard_visible")
	g.Set("stroke", "#ff0000").SetF("stroke-width", 1.0)

	count := NormalizeStrokes(doc, KSProfile, true)

	if count == 0 {
		t.Fatal("expected at least one group to need stroke normalization")
	}
	stroke, _ := g.Get("stroke")
	if stroke != KSProfile["hard_visible"].Stroke {
		t.Fatalf("expected stroke normalized to profile value %q, got %q", KSProfile["hard_visible"].Stroke, stroke)
	}
}

func TestNormalizeStrokesMatchesDimensionsWildcard(t *testing.T) {
	doc := svgdoc.NewDocument()
	g := svgdoc.Group(doc.Root, "dimensions-front")

	count := NormalizeStrokes(doc, KSProfile, true)

	if count != 1 {
		t.Fatalf("expected the dimensions-front group to match the dimensions-* wildcard, got count %d", count)
	}
	width, _ := g.Get("stroke-width")
	if width != "0.25" {
		t.Fatalf("expected wildcard stroke-width 0.25, got %q", width)
	}
}

func TestRewrapNotesSplitsLongText(t *testing.T) {
	doc := svgdoc.NewDocument()
	g := svgdoc.Group(doc.Root, "general-notes")
	long := ""
	for i := 0; i < 30; i++ {
		long += "word "
	}
	t1 := svgdoc.NewNode("text").SetF("x", 20).SetF("y", 240)
	t1.Text = long
	g.Append(t1)

	count := RewrapNotes(doc, true)

	if count != 1 {
		t.Fatalf("expected one text node rewrapped, got %d", count)
	}
	if len(t1.Children) < 2 {
		t.Fatalf("expected the rewrapped text to produce multiple tspans, got %d", len(t1.Children))
	}
}

func TestRoundCoordinatesShortensLongDecimals(t *testing.T) {
	doc := svgdoc.NewDocument()
	n := svgdoc.NewNode("circle").Set("cx", "10.123456").Set("cy", "20.00").Set("r", "5.00")
	doc.Root.Append(n)

	count := RoundCoordinates(doc, true)

	if count != 1 {
		t.Fatalf("expected exactly one attribute rounded (cx), got %d", count)
	}
	cx, _ := n.Get("cx")
	if cx != "10.12" {
		t.Fatalf("expected cx rounded to 10.12, got %q", cx)
	}
}

func TestRoundCoordinatesFixesLongFloatsInPathData(t *testing.T) {
	doc := svgdoc.NewDocument()
	n := svgdoc.NewNode("path").Set("d", "M 1.123456,2.654321 L 3.0,4.0")
	doc.Root.Append(n)

	count := RoundCoordinates(doc, true)

	if count != 1 {
		t.Fatalf("expected one rule application for the path's long-decimal floats, got %d", count)
	}
	d, _ := n.Get("d")
	if d != "M 1.12,2.65 L 3.00,4.00" {
		t.Fatalf("expected rounded path data, got %q", d)
	}
}

func TestSimplifyISORemovesVisibleAndOverflowingSmooth(t *testing.T) {
	doc := svgdoc.NewDocument()
	// Both groups sit in the ISO cell (X 210..405, Y 15..131).
	isoVisible := svgdoc.Group(doc.Root, "iso_visible")
	isoVisible.Append(svgdoc.NewNode("line").SetF("x1", 300).SetF("y1", 70).SetF("x2", 310).SetF("y2", 80))
	dense := svgdoc.Group(doc.Root, "smooth_visible")
	for i := 0; i < SmoothVisiblePathThreshold+1; i++ {
		dense.Append(svgdoc.NewNode("polyline").Set("points", "300,70 301,71"))
	}

	count := SimplifyISO(doc, true)

	if count != 2 {
		t.Fatalf("expected iso_visible + the overflowing smooth_visible group removed, got %d", count)
	}
	if len(doc.Root.ByClass("iso_visible")) != 0 {
		t.Fatal("expected iso_visible removed unconditionally")
	}
	if len(doc.Root.ByClass("smooth_visible")) != 0 {
		t.Fatal("expected the overflowing smooth_visible group removed")
	}
}

func TestAuditGDTCountsAnchoredFrames(t *testing.T) {
	doc := svgdoc.NewDocument()
	gdtGroup := svgdoc.Group(doc.Root, "gdt-front")
	anchored := svgdoc.Group(gdtGroup, "fcf")
	anchored.Append(svgdoc.NewNode("line").SetF("x1", 10).SetF("y1", 10).SetF("x2", 10).SetF("y2", 15))

	unanchored := svgdoc.Group(gdtGroup, "fcf")
	unanchored.Append(svgdoc.NewNode("line").SetF("x1", 50).SetF("y1", 50).SetF("x2", 50.1).SetF("y2", 50.1))

	count, audit := AuditGDT(doc)

	if audit.Total != 2 {
		t.Fatalf("expected 2 total frames, got %d", audit.Total)
	}
	if count != 1 || audit.Anchored != 1 {
		t.Fatalf("expected exactly 1 anchored frame, got count=%d anchored=%d", count, audit.Anchored)
	}
}

func TestRunDryRunDoesNotMutate(t *testing.T) {
	doc := svgdoc.NewDocument()
	g := svgdoc.Group(doc.Root, "hard_visible")
	g.Set("stroke", "#ff0000")

	report := Run(doc, KSProfile, true)

	if report.Counts["normalize_strokes"] == 0 {
		t.Fatal("expected dry-run to still report the would-be count")
	}
	stroke, _ := g.Get("stroke")
	if stroke != "#ff0000" {
		t.Fatalf("expected dry-run to leave the tree unmutated, got stroke %q", stroke)
	}
}

package view

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dimension"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

func identityTransform() dimension.Transform {
	return dimension.Transform{CX: 0, CY: 0, BCX: 0, BCY: 0, Scale: 1}
}

func squareViewData(name config.ViewName) *kernel.ViewData {
	return &kernel.ViewData{
		Name:   name,
		Bounds: kernel.ViewBounds{U0: 0, V0: 0, U1: 40, V1: 40},
		Groups: map[kernel.EdgeGroupIndex][]kernel.Edge{
			kernel.GroupHardVisible: {
				{Pts: []kernel.Point{{U: 0, V: 0}, {U: 40, V: 0}, {U: 40, V: 40}, {U: 0, V: 40}, {U: 0, V: 0}}},
			},
			kernel.GroupHardHidden: {
				{Circ: &kernel.Circ{CU: 20, CV: 20, R: 5}},
			},
			kernel.GroupISOHidden: {
				{Circ: &kernel.Circ{CU: 10, CV: 10, R: 2}},
			},
		},
	}
}

func TestRenderEdgesDropsISOHiddenInISOView(t *testing.T) {
	doc := svgdoc.NewDocument()
	vd := squareViewData(config.ViewISO)
	group := svgdoc.Group(doc.Root, "edges-iso")

	count := RenderEdges(config.ViewISO, vd, identityTransform(), group)

	if got := len(group.ByClass(EdgeStyles[kernel.GroupISOHidden].Class)); got != 0 {
		t.Fatalf("expected no iso_hidden group in the iso view, got %d", got)
	}
	if count == 0 {
		t.Fatal("expected at least one edge drawn")
	}
}

func TestRenderEdgesKeepsAllGroupsInNonISOView(t *testing.T) {
	doc := svgdoc.NewDocument()
	vd := squareViewData(config.ViewFront)
	group := svgdoc.Group(doc.Root, "edges-front")

	count := RenderEdges(config.ViewFront, vd, identityTransform(), group)

	wantGroups := len(vd.Groups)
	gotGroups := 0
	for gi := range vd.Groups {
		style := EdgeStyles[gi]
		if len(group.ByClass("edges "+style.Class)) > 0 {
			gotGroups++
		}
	}
	if gotGroups != wantGroups {
		t.Fatalf("expected %d distinct edge-group elements in front view, got %d", wantGroups, gotGroups)
	}
	if count != 3 {
		t.Fatalf("expected 3 edges drawn (one polyline, two circles across groups), got %d", count)
	}
}

func TestRenderCenterMarksDedupesSameCenter(t *testing.T) {
	doc := svgdoc.NewDocument()
	vd := &kernel.ViewData{
		Name:   config.ViewFront,
		Bounds: kernel.ViewBounds{U0: 0, V0: 0, U1: 100, V1: 100},
		Groups: map[kernel.EdgeGroupIndex][]kernel.Edge{
			kernel.GroupHardVisible: {
				{Circ: &kernel.Circ{CU: 50, CV: 50, R: 5}},
				{Circ: &kernel.Circ{CU: 50.1, CV: 50.1, R: 5}},
				{Circ: &kernel.Circ{CU: 80, CV: 50, R: 3}},
			},
		},
	}
	group := svgdoc.Group(doc.Root, "centers")

	count := RenderCenterMarks(config.ViewFront, vd, identityTransform(), group)

	if count != 2 {
		t.Fatalf("expected 2 deduped center marks, got %d", count)
	}
}

func TestRenderSymmetryAxesFindsVerticalMirror(t *testing.T) {
	doc := svgdoc.NewDocument()
	vd := &kernel.ViewData{
		Name:   config.ViewFront,
		Bounds: kernel.ViewBounds{U0: 0, V0: 0, U1: 100, V1: 50},
		Groups: map[kernel.EdgeGroupIndex][]kernel.Edge{
			kernel.GroupHardVisible: {
				{Pts: []kernel.Point{{U: 10, V: 10}, {U: 90, V: 10}}},
				{Pts: []kernel.Point{{U: 10, V: 40}, {U: 90, V: 40}}},
				{Circ: &kernel.Circ{CU: 50, CV: 25, R: 3}},
			},
		},
	}
	group := svgdoc.Group(doc.Root, "symmetry-group")

	count := RenderSymmetryAxes(config.ViewFront, vd, identityTransform(), group)

	if count == 0 {
		t.Fatal("expected at least one symmetry axis detected for a mirror-symmetric outline")
	}
}

func TestSelectDatumsPicksLargestFacesByArea(t *testing.T) {
	cfg := &config.Config{
		Shapes: []config.Shape{
			{ID: "body", Type: "box", Position: [3]float64{0, 0, 0}, Width: 100, Depth: 60, Height: 10},
		},
	}
	g, err := feature.Infer(cfg)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	datums := SelectDatums(cfg, g)

	// top face (w*d = 6000) is the largest, front (w*h = 1000) next,
	// right (d*h = 600) smallest.
	if datums.A != "top" {
		t.Fatalf("expected datum A to be the largest face (top), got %q", datums.A)
	}
	if datums.C != "right" {
		t.Fatalf("expected datum C to be the smallest face (right), got %q", datums.C)
	}
}

func TestAssignTolerancesBoltCircleUsesClearanceFraction(t *testing.T) {
	cfg := &config.Config{
		Shapes: []config.Shape{
			{ID: "plate", Type: "box", Position: [3]float64{0, 0, 0}, Width: 100, Depth: 100, Height: 10},
			{ID: "h1", Type: "cylinder", Position: [3]float64{30, 0, 0}, Radius: 3, Length: 10},
			{ID: "h2", Type: "cylinder", Position: [3]float64{0, 30, 0}, Radius: 3, Length: 10},
			{ID: "h3", Type: "cylinder", Position: [3]float64{-30, 0, 0}, Radius: 3, Length: 10},
			{ID: "h4", Type: "cylinder", Position: [3]float64{0, -30, 0}, Radius: 3, Length: 10},
		},
		Operations: []config.Operation{
			{Type: "cut", Base: "plate", Tool: "h1", Result: "plate"},
			{Type: "cut", Base: "plate", Tool: "h2", Result: "plate"},
			{Type: "cut", Base: "plate", Tool: "h3", Result: "plate"},
			{Type: "cut", Base: "plate", Tool: "h4", Result: "plate"},
		},
	}
	g, err := feature.Infer(cfg)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	datums := SelectDatums(cfg, g)

	specs := AssignTolerances(g, datums)

	found := false
	for _, s := range specs {
		if s.Symbol == SymPosition && s.Diameter {
			found = true
			if s.Value <= 0 {
				t.Fatalf("expected a positive position tolerance, got %v", s.Value)
			}
		}
	}
	if !found {
		t.Fatal("expected at least one diameter position tolerance assigned from a bolt-circle group")
	}
}

func TestAggregateBOMSumsByNameAndMaterial(t *testing.T) {
	cfg := &config.Config{
		Parts: []config.Part{
			{ID: "bracket", Qty: 2, Shapes: []config.Shape{{Material: "steel"}}},
			{ID: "bracket", Qty: 3, Shapes: []config.Shape{{Material: "steel"}}},
			{ID: "bolt", Qty: 4, Shapes: []config.Shape{{Material: "steel"}}},
		},
	}

	rows := AggregateBOM(cfg)

	var bracketQty int
	for _, r := range rows {
		if r.Name == "bracket" && r.Material == "steel" {
			bracketQty = r.Qty
		}
	}
	if bracketQty != 5 {
		t.Fatalf("expected aggregated bracket quantity 5, got %d", bracketQty)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 distinct BOM rows, got %d", len(rows))
	}
}

func TestRenderNotesEmitsOneTextPerLineAtFixedPitch(t *testing.T) {
	doc := svgdoc.NewDocument()
	notes := config.NotesCfg{General: []string{"Material: steel", "Break all sharp edges", "Finish: anodize"}}

	count := RenderNotes(notes, doc.Root)

	if count != 3 {
		t.Fatalf("expected 3 rendered notes, got %d", count)
	}
	group := doc.Root.ByClass("general-notes")
	if len(group) != 1 {
		t.Fatalf("expected exactly one general-notes group, got %d", len(group))
	}
	texts := group[0].FindAll(func(n *svgdoc.Node) bool { return n.Tag == "text" })
	if len(texts) != 3 {
		t.Fatalf("expected 3 text nodes, got %d", len(texts))
	}
	y0, _ := texts[0].GetF("y")
	y1, _ := texts[1].GetF("y")
	if y0 != NotesStartY || y1-y0 != NotesLinePitch {
		t.Fatalf("expected fixed start/pitch layout, got y0=%v y1=%v", y0, y1)
	}
}

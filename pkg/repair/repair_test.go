package repair

import (
	"strings"
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

func TestRebuildNotesWrapsAtBudgetAndEmitsAtFixedPitch(t *testing.T) {
	doc := svgdoc.NewDocument()
	long := strings.Repeat("word ", 60)
	notes := config.NotesCfg{General: []string{long}}

	emitted, truncated := RebuildNotes(notes, doc)

	if emitted < 2 {
		t.Fatalf("expected the long note to wrap into multiple lines, got %d", emitted)
	}
	if truncated != 0 {
		t.Fatalf("expected no truncation for a note well within the y budget, got %d", truncated)
	}
	texts := doc.Root.ByClass("general-notes")[0].Children
	y0, _ := texts[0].GetF("y")
	y1, _ := texts[1].GetF("y")
	if y0 != NotesStartY || y1-y0 != NotesLinePitch {
		t.Fatalf("expected fixed start/pitch layout, got y0=%v y1=%v", y0, y1)
	}
}

func TestRebuildNotesTruncatesPastEndY(t *testing.T) {
	doc := svgdoc.NewDocument()
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "a general note line that takes up its own row")
	}
	notes := config.NotesCfg{General: lines}

	emitted, truncated := RebuildNotes(notes, doc)

	maxLines := int((NotesEndY-NotesStartY)/NotesLinePitch) + 1
	if emitted > maxLines {
		t.Fatalf("expected at most %d emitted lines within the y budget, got %d", maxLines, emitted)
	}
	if truncated == 0 {
		t.Fatal("expected some lines truncated when 20 lines exceed the y budget")
	}
}

func TestRebuildNotesReplacesExistingGroup(t *testing.T) {
	doc := svgdoc.NewDocument()
	stale := svgdoc.Group(doc.Root, "general-notes")
	stale.Append(svgdoc.NewNode("text").SetF("x", 20).SetF("y", 999))

	RebuildNotes(config.NotesCfg{General: []string{"fresh note"}}, doc)

	groups := doc.Root.ByClass("general-notes")
	if len(groups) != 1 {
		t.Fatalf("expected exactly one general-notes group after rebuild, got %d", len(groups))
	}
	if len(groups[0].Children) != 1 || groups[0].Children[0].Text != "fresh note" {
		t.Fatal("expected the rebuilt group to contain only the fresh note")
	}
}

func frontCellText(x, y float64, text string) *svgdoc.Node {
	t := svgdoc.NewNode("text").SetF("x", x).SetF("y", y).Set("font-size", "3")
	t.Text = text
	return t
}

func TestRepairTextOverlapsNudgesMovableBeforeFixed(t *testing.T) {
	doc := svgdoc.NewDocument()
	// front cell: X in [15,210], Y in [131,247].
	movable := frontCellText(20, 140, "OD 40.00")
	fixed := frontCellText(20.5, 140.2, "ID 20.00")
	doc.Root.Append(movable)
	doc.Root.Append(fixed)

	result := RepairTextOverlaps(doc)

	if result.PassesRun == 0 {
		t.Fatal("expected at least one pass to run")
	}
	movedY, _ := movable.GetF("y")
	if movedY == 140 {
		t.Fatal("expected the movable text to shift away from its overlapping neighbor")
	}
}

func TestRepairTextOverlapsLeavesTitleBlockTextsFixed(t *testing.T) {
	doc := svgdoc.NewDocument()
	titleText := svgdoc.NewNode("text").SetF("x", 20).SetF("y", geom.PageH-geom.TitleH+2)
	titleText.Text = "PART-001"
	other := svgdoc.NewNode("text").SetF("x", 20.2).SetF("y", geom.PageH-geom.TitleH+2.1)
	other.Text = "rev A"
	doc.Root.Append(titleText)
	doc.Root.Append(other)

	RepairTextOverlaps(doc)

	y, _ := titleText.GetF("y")
	if y != geom.PageH-geom.TitleH+2 {
		t.Fatalf("expected the title-block text to stay fixed, got y=%v", y)
	}
}

func TestRepairTextOverlapsFlagsLargeMovesAsRisk(t *testing.T) {
	doc := svgdoc.NewDocument()
	// Stack several overlapping movable texts in the same spot so the
	// resolver has to keep nudging the same element across many passes.
	for i := 0; i < 6; i++ {
		doc.Root.Append(frontCellText(20, 140, "label"))
	}

	result := RepairTextOverlaps(doc)

	if len(result.Risks) == 0 {
		t.Skip("fixture did not accumulate enough shift to trip the 12mm risk threshold")
	}
	for _, r := range result.Risks {
		if r.Kind != config.RiskDimensionAssocUncertain {
			t.Fatalf("expected only dimension_association_uncertain risks, got %v", r.Kind)
		}
	}
}

func buildOverflowingViewGroup(doc *svgdoc.Document, vn config.ViewName) {
	cell, _ := geom.CellBounds(vn)
	viewGroup := svgdoc.Group(doc.Root, "view-"+string(vn))
	edges := svgdoc.Group(viewGroup, "edges hard_visible")
	// A path far larger than the cell on both axes.
	x0, y0 := cell.XMin-5, cell.YMin-5
	x1, y1 := cell.XMax+50, cell.YMax+50
	edges.Append(svgdoc.NewNode("path").Set("d",
		geom.FormatMM(x0)+","+geom.FormatMM(y0)+" "+geom.FormatMM(x1)+","+geom.FormatMM(y1)))
}

func TestRepairOverflowScalesAndWrapsOversizedView(t *testing.T) {
	doc := svgdoc.NewDocument()
	buildOverflowingViewGroup(doc, config.ViewFront)

	results := RepairOverflow([]config.ViewName{config.ViewFront}, doc)

	if len(results) != 1 {
		t.Fatalf("expected exactly one view flagged for overflow repair, got %d", len(results))
	}
	if results[0].Scale >= 1.0 {
		t.Fatalf("expected a sub-1.0 scale factor, got %v", results[0].Scale)
	}
	if results[0].Risk.Kind != config.RiskSemanticMayShift {
		t.Fatalf("expected a semantic_may_shift risk, got %v", results[0].Risk.Kind)
	}

	viewGroup := doc.Root.ByClass("view-front")[0]
	wrapped := viewGroup.ByClass("viewcell-front")
	if len(wrapped) != 1 {
		t.Fatalf("expected exactly one viewcell-front wrapper group, got %d", len(wrapped))
	}
}

func TestRepairOverflowSkipsViewsThatAlreadyFit(t *testing.T) {
	doc := svgdoc.NewDocument()
	cell, _ := geom.CellBounds(config.ViewFront)
	viewGroup := svgdoc.Group(doc.Root, "view-front")
	edges := svgdoc.Group(viewGroup, "edges hard_visible")
	cx, cy := cell.Center()
	edges.Append(svgdoc.NewNode("circle").SetF("cx", cx).SetF("cy", cy).SetF("r", 5))

	results := RepairOverflow([]config.ViewName{config.ViewFront}, doc)

	if len(results) != 0 {
		t.Fatalf("expected no overflow repair for geometry that already fits, got %+v", results)
	}
}

func TestRunExecutesAllThreePassesInOrder(t *testing.T) {
	doc := svgdoc.NewDocument()
	buildOverflowingViewGroup(doc, config.ViewFront)
	doc.Root.Append(frontCellText(20, 140, "dup"))
	doc.Root.Append(frontCellText(20.1, 140.1, "dup2"))

	cfg := &config.Config{}
	plan := &config.DrawingPlan{
		Views: map[config.ViewName]config.ViewCfg{config.ViewFront: {Enabled: true}},
		Notes: config.NotesCfg{General: []string{"General note one", "General note two"}},
	}

	report := Run(cfg, plan, doc)

	if report.NotesEmitted != 2 {
		t.Fatalf("expected 2 notes emitted, got %d", report.NotesEmitted)
	}
	if len(report.Overflows) != 1 {
		t.Fatalf("expected 1 view repaired for overflow, got %d", len(report.Overflows))
	}
	foundSemanticShift := false
	for _, r := range report.Risks {
		if r.Kind == config.RiskSemanticMayShift {
			foundSemanticShift = true
		}
	}
	if !foundSemanticShift {
		t.Fatal("expected the overflow repair's semantic_may_shift risk to be included in the combined report")
	}
}

package repair

import (
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// Report summarizes the three repair passes run over one drawing.
type Report struct {
	NotesEmitted   int
	NotesTruncated int
	Overlaps       OverlapResult
	Overflows      []OverflowResult
	Risks          []config.RepairRiskFlag
}

// Run executes rebuild_notes, repair_text_overlaps and repair_overflow
// in that fixed order: notes are rebuilt first so the overlap pass sees
// their final layout, and overflow scaling runs last since it changes
// geometry bounds the earlier passes already reasoned about (§4.K).
func Run(cfg *config.Config, plan *config.DrawingPlan, doc *svgdoc.Document) Report {
	var report Report

	emitted, truncated := RebuildNotes(plan.Notes, doc)
	report.NotesEmitted = emitted
	report.NotesTruncated = truncated
	if emitted > 0 {
		detail := "general-notes rebuilt from scratch"
		if truncated > 0 {
			detail = "general-notes rebuilt from scratch; one or more lines were truncated past the budget"
		}
		report.Risks = append(report.Risks, config.RepairRiskFlag{
			Kind:    config.RiskNotesReflowed,
			Element: "general-notes",
			Detail:  detail,
		})
	}

	report.Overlaps = RepairTextOverlaps(doc)
	report.Risks = append(report.Risks, report.Overlaps.Risks...)

	report.Overflows = RepairOverflow(plan.EnabledViews(), doc)
	for _, o := range report.Overflows {
		report.Risks = append(report.Risks, o.Risk)
	}

	return report
}

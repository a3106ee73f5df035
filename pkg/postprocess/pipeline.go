package postprocess

import (
	"fmt"

	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// Run executes the fixed rule pipeline over doc in order (§4.I). When
// dryRun is true, every rule computes its count without mutating the
// tree. A rule that panics is caught and recorded in the report's
// Errors rather than aborting the remaining rules, matching the
// PostProcessRuleError contract.
func Run(doc *svgdoc.Document, profile map[string]StrokeSpec, dryRun bool) *Report {
	report := newReport()
	apply := !dryRun

	runRule(report, "remove_iso_hidden", func() int { return RemoveISOHidden(doc, apply) })
	runRule(report, "normalize_strokes", func() int { return NormalizeStrokes(doc, profile, apply) })
	runRule(report, "rewrap_notes", func() int { return RewrapNotes(doc, apply) })
	runRule(report, "round_coordinates", func() int { return RoundCoordinates(doc, apply) })
	runRule(report, "simplify_iso", func() int { return SimplifyISO(doc, apply) })

	count, audit := AuditGDT(doc)
	report.record("gdt_audit", count, nil)
	report.GDTAudit = audit

	return report
}

func runRule(report *Report, name string, fn func() int) {
	defer func() {
		if r := recover(); r != nil {
			report.record(name, 0, fmt.Errorf("panic: %v", r))
		}
	}()
	count := fn()
	report.record(name, count, nil)
}

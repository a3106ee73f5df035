// Package postprocess runs the fixed rule pipeline over the owned
// svgdoc tree: ISO-hidden removal, stroke normalization, notes
// rewrap, coordinate rounding, ISO simplification, and a GD&T audit
// (§4.I), as a rule-list-with-report driver over SVG tree rules.
package postprocess

import "github.com/drawforge/drawforge/pkg/config"

// Report accumulates one count per rule plus any non-fatal rule
// failures, matching §4.I's "each rule returns a count; failures are
// caught and recorded in the report's errors[] without aborting the
// pipeline."
type Report struct {
	Counts  map[string]int
	Errors  []error
	GDTAudit GDTAudit
}

func newReport() *Report {
	return &Report{Counts: make(map[string]int)}
}

func (r *Report) record(rule string, count int, err error) {
	r.Counts[rule] = count
	if err != nil {
		r.Errors = append(r.Errors, &config.PostProcessRuleError{Rule: rule, Err: err})
	}
}

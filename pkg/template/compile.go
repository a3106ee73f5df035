package template

import "github.com/drawforge/drawforge/pkg/config"

// Compile runs the full §4.D pipeline: classify the part, load its
// template, deep-merge the config's inline drawing.overrides on top,
// build the typed plan, and validate it. The first fatal validation
// error (if any) is returned as err; all fatal errors and warnings are
// also returned so callers can report everything at once.
func Compile(cfg *config.Config, store *Store) (plan *config.DrawingPlan, warnings []error, err error) {
	partType := Classify(cfg)

	tmpl, err := store.LoadTemplate(partType)
	if err != nil {
		return nil, nil, err
	}
	if tmpl["part_type"] == nil {
		tmpl["part_type"] = partType
	}

	merged := tmpl
	if len(cfg.Drawing.Overrides) > 0 {
		merged = DeepMerge(tmpl, cfg.Drawing.Overrides)
	}

	plan = BuildPlan(merged)
	fatalErrs, warns := Validate(merged, plan)
	if len(fatalErrs) > 0 {
		return plan, warns, fatalErrs[0]
	}
	return plan, warns, nil
}

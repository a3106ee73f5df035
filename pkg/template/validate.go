package template

import (
	"fmt"

	"github.com/drawforge/drawforge/pkg/config"
)

var knownTopLevelKeys = map[string]bool{
	"schema_version": true, "part_type": true, "profile": true,
	"views": true, "datums": true, "dimensioning": true,
	"dim_intents": true, "notes": true, "scale": true, "style": true,
}

var knownViewKeys = map[string]bool{"enabled": true, "layout": true, "options": true}
var knownIntentKeys = map[string]bool{
	"id": true, "feature": true, "view": true, "style": true, "required": true,
	"priority": true, "value_mm": true, "confidence": true, "source": true,
	"review": true, "placement": true,
}

// Validate runs the plan-validator chain V1..V10 (§4.D). fatal holds
// V1-V5, V7, V10 violations; warnings holds V6, V8, V9.
func Validate(tree map[string]any, plan *config.DrawingPlan) (fatal []error, warnings []error) {
	// V1
	if plan.SchemaVersion == "" || !config.SupportedSchemaVersions[plan.SchemaVersion] {
		fatal = append(fatal, &config.PlanValidationError{Code: "V1", Fatal: true,
			Msg: fmt.Sprintf("schema_version %q is not supported", plan.SchemaVersion)})
	}

	// V2
	if plan.PartType == "" {
		fatal = append(fatal, &config.PlanValidationError{Code: "V2", Fatal: true, Msg: "part_type is missing"})
	} else if _, known := config.RequiredIntentsByPartType[plan.PartType]; !known {
		warnings = append(warnings, &config.PlanValidationError{Code: "V2", Msg: fmt.Sprintf("unknown part_type %q", plan.PartType)})
	}

	// V3
	enabled := plan.EnabledViews()
	if len(enabled) == 0 {
		fatal = append(fatal, &config.PlanValidationError{Code: "V3", Fatal: true, Msg: "no views are enabled"})
	}
	for name, cfg := range plan.Views {
		if cfg.Enabled && !config.ValidViews[name] {
			fatal = append(fatal, &config.PlanValidationError{Code: "V3", Fatal: true, Msg: fmt.Sprintf("unknown view %q", name)})
		}
	}

	// V4
	required := config.RequiredIntentsByPartType[plan.PartType]
	if len(required) > 0 {
		present := map[string]bool{}
		for _, in := range plan.DimIntents {
			if in.Required {
				present[in.ID] = true
			}
		}
		for _, id := range required {
			if !present[id] {
				fatal = append(fatal, &config.PlanValidationError{Code: "V4", Fatal: true,
					Msg: fmt.Sprintf("required dimension intent %q is missing or not required=true", id)})
			}
		}
	}

	// V5
	enabledSet := map[config.ViewName]bool{}
	for _, v := range enabled {
		enabledSet[v] = true
	}
	for _, in := range plan.DimIntents {
		if in.View != config.ViewNotes && !enabledSet[in.View] {
			fatal = append(fatal, &config.PlanValidationError{Code: "V5", Fatal: true, IntentID: in.ID,
				Msg: fmt.Sprintf("intent view %q is not enabled", in.View)})
		}
	}

	// V6
	if len(plan.Datums) == 0 {
		warnings = append(warnings, &config.PlanValidationError{Code: "V6", Msg: "no datums declared"})
	}

	// V7
	if plan.Scale.Min > plan.Scale.Max && plan.Scale.Max != 0 {
		fatal = append(fatal, &config.PlanValidationError{Code: "V7", Fatal: true, Msg: "scale.min exceeds scale.max"})
	}

	// V8
	if len(plan.Notes.General) == 0 {
		warnings = append(warnings, &config.PlanValidationError{Code: "V8", Msg: "notes.general is empty"})
	}

	// V9
	for k := range tree {
		if !knownTopLevelKeys[k] && !isMergeDirectiveKey(k) {
			warnings = append(warnings, &config.PlanValidationError{Code: "V9", Msg: fmt.Sprintf("unknown top-level key %q", k)})
		}
	}
	if viewsRaw, ok := tree["views"].(map[string]any); ok {
		for vname, raw := range viewsRaw {
			vm := asMap(raw)
			for k := range vm {
				if !knownViewKeys[k] {
					warnings = append(warnings, &config.PlanValidationError{Code: "V9", Msg: fmt.Sprintf("unknown key %q in views.%s", k, vname)})
				}
			}
		}
	}
	if intentsRaw, ok := tree["dim_intents"].([]any); ok {
		for _, raw := range intentsRaw {
			im := asMap(raw)
			for k := range im {
				if !knownIntentKeys[k] {
					warnings = append(warnings, &config.PlanValidationError{Code: "V9", Msg: fmt.Sprintf("unknown key %q in a dim_intents entry", k)})
				}
			}
		}
	}

	// V10
	seen := map[string]bool{}
	for _, in := range plan.DimIntents {
		if seen[in.ID] {
			fatal = append(fatal, &config.PlanValidationError{Code: "V10", Fatal: true, IntentID: in.ID,
				Msg: fmt.Sprintf("duplicate dimension intent id %q", in.ID)})
		}
		seen[in.ID] = true
	}

	return fatal, warnings
}

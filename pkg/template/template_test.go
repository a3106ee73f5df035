package template

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
)

func TestClassifyAssemblyTakesPriority(t *testing.T) {
	cfg := &config.Config{
		Assembly: map[string]any{"name": "gearbox"},
		Parts:    []config.Part{{ID: "p1"}},
		Shapes:   []config.Shape{{ID: "a", Type: "cylinder", Radius: 5}},
		Operations: []config.Operation{
			{Type: "cut", Base: "a", Tool: "a", Result: "b"},
		},
	}
	if got := Classify(cfg); got != "assembly" {
		t.Fatalf("expected assembly, got %s", got)
	}
}

func TestClassifyFlange(t *testing.T) {
	cfg := flangeLikeConfig()
	if got := Classify(cfg); got != "flange" {
		t.Fatalf("expected flange, got %s", got)
	}
}

func flangeLikeConfig() *config.Config {
	return &config.Config{
		Shapes: []config.Shape{
			{ID: "disc", Type: "cylinder", Radius: 60},
			{ID: "bore", Type: "cylinder", Radius: 15},
			{ID: "h1", Type: "cylinder", Radius: 5},
			{ID: "h2", Type: "cylinder", Radius: 5},
			{ID: "h3", Type: "cylinder", Radius: 5},
			{ID: "h4", Type: "cylinder", Radius: 5},
		},
		Operations: []config.Operation{
			{Type: "cut", Base: "disc", Tool: "bore", Result: "b1"},
			{Type: "cut", Base: "b1", Tool: "h1", Result: "b2"},
			{Type: "cut", Base: "b2", Tool: "h2", Result: "b3"},
			{Type: "cut", Base: "b3", Tool: "h3", Result: "b4"},
			{Type: "cut", Base: "b4", Tool: "h4", Result: "b5"},
		},
	}
}

func TestDeepMergeEmptyOverrideIsNoop(t *testing.T) {
	base := map[string]any{"a": 1, "b": map[string]any{"c": 2}}
	merged := DeepMerge(base, map[string]any{})
	if merged["a"] != 1 || merged["b"].(map[string]any)["c"] != 2 {
		t.Fatalf("expected base unchanged, got %+v", merged)
	}
}

func TestDeepMergeIDListPatch(t *testing.T) {
	base := map[string]any{
		"dim_intents": []any{
			map[string]any{"id": "OD", "priority": int64(10)},
			map[string]any{"id": "ID", "priority": int64(9)},
		},
	}
	override := map[string]any{
		"dim_intents": []any{
			map[string]any{"id": "ID", "priority": int64(1)},
			map[string]any{"id": "NEW", "priority": int64(5)},
		},
	}
	merged := DeepMerge(base, override)
	list := merged["dim_intents"].([]any)
	if len(list) != 3 {
		t.Fatalf("expected 3 entries (base order + appended new), got %d", len(list))
	}
	if list[0].(map[string]any)["id"] != "OD" {
		t.Fatalf("expected base order preserved, first entry OD, got %+v", list[0])
	}
	if list[1].(map[string]any)["priority"] != int64(1) {
		t.Fatalf("expected ID's priority patched to 1, got %+v", list[1])
	}
	if list[2].(map[string]any)["id"] != "NEW" {
		t.Fatalf("expected NEW appended at end, got %+v", list[2])
	}
}

func TestDeepMergeRemoveDirective(t *testing.T) {
	base := map[string]any{
		"dim_intents": []any{
			map[string]any{"id": "OD"},
			map[string]any{"id": "ID"},
		},
	}
	override := map[string]any{
		"dim_intents": []any{
			map[string]any{"id": "ID", "remove": true},
		},
	}
	merged := DeepMerge(base, override)
	list := merged["dim_intents"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["id"] != "OD" {
		t.Fatalf("expected ID removed, got %+v", list)
	}
}

func TestDeepMergeReplaceDirective(t *testing.T) {
	base := map[string]any{
		"dim_intents": []any{map[string]any{"id": "OD"}},
	}
	override := map[string]any{
		"dim_intents":       []any{map[string]any{"id": "NEW"}},
		"dim_intents_merge": "replace",
	}
	merged := DeepMerge(base, override)
	list := merged["dim_intents"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["id"] != "NEW" {
		t.Fatalf("expected full replace, got %+v", list)
	}
}

func TestValidateFlangeTemplatePasses(t *testing.T) {
	tree := flangeTree()
	plan := BuildPlan(tree)
	fatal, _ := Validate(tree, plan)
	if len(fatal) != 0 {
		t.Fatalf("expected flange template to validate, got %v", fatal)
	}
}

func TestValidateMissingRequiredIntentFailsV4(t *testing.T) {
	tree := flangeTree()
	intents := tree["dim_intents"].([]any)
	filtered := make([]any, 0, len(intents))
	for _, el := range intents {
		if el.(map[string]any)["id"] == "PCD" {
			continue
		}
		filtered = append(filtered, el)
	}
	tree["dim_intents"] = filtered

	plan := BuildPlan(tree)
	fatal, _ := Validate(tree, plan)
	found := false
	for _, e := range fatal {
		if pve, ok := e.(*config.PlanValidationError); ok && pve.Code == "V4" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected V4 error when PCD is missing, got %v", fatal)
	}
}

func flangeTree() map[string]any {
	return map[string]any{
		"schema_version": "1.1",
		"part_type":      "flange",
		"datums":         []any{"A"},
		"views": map[string]any{
			"front": map[string]any{"enabled": true},
			"top":   map[string]any{"enabled": true},
			"iso":   map[string]any{"enabled": true},
		},
		"dimensioning": map[string]any{"scheme": "plan"},
		"dim_intents": []any{
			map[string]any{"id": "OD", "feature": "disc", "view": "front", "style": "diameter", "required": true},
			map[string]any{"id": "ID", "feature": "bore", "view": "front", "style": "diameter", "required": true},
			map[string]any{"id": "PCD", "feature": "bolt_circle", "view": "front", "style": "diameter", "required": true},
			map[string]any{"id": "BOLT_DIA", "feature": "hole1", "view": "front", "style": "diameter", "required": true},
			map[string]any{"id": "THK", "feature": "disc", "view": "top", "style": "linear", "required": true},
		},
		"notes": map[string]any{"general": []any{"BREAK ALL SHARP EDGES"}},
		"scale": map[string]any{"mode": "auto", "min": 0.5, "max": 2.0},
	}
}

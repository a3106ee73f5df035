package template

import (
	"github.com/drawforge/drawforge/pkg/config"
)

// BuildPlan converts a merged generic TOML tree into the typed
// DrawingPlan the rest of the compiler consumes.
func BuildPlan(tree map[string]any) *config.DrawingPlan {
	p := &config.DrawingPlan{
		SchemaVersion: str(tree["schema_version"]),
		PartType:      str(tree["part_type"]),
		Profile:       str(tree["profile"]),
		Views:         buildViews(tree["views"]),
		Datums:        strList(tree["datums"]),
		Dimensioning:  buildDimensioning(tree["dimensioning"]),
		DimIntents:    buildIntents(tree["dim_intents"]),
		Notes:         buildNotes(tree["notes"]),
		Scale:         buildScale(tree["scale"]),
		Style:         asMap(tree["style"]),
	}
	return p
}

func buildViews(v any) map[config.ViewName]config.ViewCfg {
	out := map[config.ViewName]config.ViewCfg{}
	m := asMap(v)
	for name, raw := range m {
		vm := asMap(raw)
		out[config.ViewName(name)] = config.ViewCfg{
			Enabled: boolOf(vm["enabled"]),
			Layout:  str(vm["layout"]),
			Options: asMap(vm["options"]),
		}
	}
	return out
}

func buildDimensioning(v any) config.DimensioningCfg {
	m := asMap(v)
	cfg := config.DimensioningCfg{Scheme: str(m["scheme"])}
	if cfg.Scheme == "" {
		cfg.Scheme = "auto"
	}
	extra := map[string]any{}
	for k, vv := range m {
		if k != "scheme" {
			extra[k] = vv
		}
	}
	cfg.Extra = extra
	return cfg
}

func buildIntents(v any) []config.DimIntent {
	list, _ := v.([]any)
	out := make([]config.DimIntent, 0, len(list))
	for _, el := range list {
		m := asMap(el)
		intent := config.DimIntent{
			ID:         str(m["id"]),
			Feature:    str(m["feature"]),
			View:       config.ViewName(str(m["view"])),
			Style:      config.DimStyle(str(m["style"])),
			Required:   boolOf(m["required"]),
			Priority:   intOf(m["priority"]),
			Confidence: config.Confidence(str(m["confidence"])),
			Source:     str(m["source"]),
			Review:     boolOf(m["review"]),
			Placement:  str(m["placement"]),
		}
		if raw, ok := m["value_mm"]; ok && raw != nil {
			f := floatOf(raw)
			intent.ValueMM = &f
		}
		out = append(out, intent)
	}
	return out
}

func buildNotes(v any) config.NotesCfg {
	m := asMap(v)
	return config.NotesCfg{
		General:   strList(m["general"]),
		Placement: asMap(m["placement"]),
	}
}

func buildScale(v any) config.ScaleCfg {
	m := asMap(v)
	mode := str(m["mode"])
	if mode == "" {
		mode = "auto"
	}
	return config.ScaleCfg{Mode: mode, Min: floatOf(m["min"]), Max: floatOf(m["max"])}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolOf(v any) bool {
	b, _ := v.(bool)
	return b
}

func intOf(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	default:
		return 0
	}
}

func floatOf(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func strList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

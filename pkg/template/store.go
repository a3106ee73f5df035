package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/drawforge/drawforge/pkg/config"
)

// Store loads part-type templates and override presets from disk, both
// TOML, decoded into a generic map tree so DeepMerge can walk them
// uniformly regardless of shape (§4.D).
type Store struct {
	TemplatesDir string
	OverridesDir string
}

// NewStore returns a Store rooted at the conventional
// configs/templates and configs/overrides/presets directories under
// root.
func NewStore(root string) *Store {
	return &Store{
		TemplatesDir: filepath.Join(root, "configs", "templates"),
		OverridesDir: filepath.Join(root, "configs", "overrides", "presets"),
	}
}

// LoadTemplate decodes configs/templates/<partType>.toml. A missing
// template file falls back to "generic".
func (s *Store) LoadTemplate(partType string) (map[string]any, error) {
	path := filepath.Join(s.TemplatesDir, partType+".toml")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(s.TemplatesDir, "generic.toml")
	}
	return decodeTOMLFile(path)
}

// LoadPreset decodes an override preset by name (without extension)
// from configs/overrides/presets.
func (s *Store) LoadPreset(name string) (map[string]any, error) {
	path := filepath.Join(s.OverridesDir, name+".toml")
	return decodeTOMLFile(path)
}

// DecodeTOMLFile decodes an arbitrary TOML file into the generic tree
// BuildPlan/Validate consume, used by the CLI's -plan flag to load an
// explicit drawing plan outside the configs/templates convention.
func DecodeTOMLFile(path string) (map[string]any, error) {
	return decodeTOMLFile(path)
}

func decodeTOMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	var tree map[string]any
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, &config.TemplateParseError{Path: path, Err: err}
	}
	return normalizeTree(tree), nil
}

// normalizeTree recursively rewrites BurntSushi's decode-to-interface{}
// shapes (map[string]interface{}, []map[string]interface{}) into the
// plain map[string]any / []any tree DeepMerge walks.
func normalizeTree(v any) map[string]any {
	out, _ := normalize(v).(map[string]any)
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalize(vv)
		}
		return out
	default:
		return v
	}
}

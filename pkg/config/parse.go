package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// validShapeTypes and validOpTypes gate V-style fatal rejection of
// unknown tags per §6 ("unknown shape/op type values are fatal").
var validShapeTypes = map[string]bool{
	"box": true, "cylinder": true, "sphere": true, "cone": true,
	"torus": true, "revolution": true, "extrusion": true,
}

func isValidShapeType(t string) bool {
	if validShapeTypes[t] {
		return true
	}
	return len(t) > 8 && t[:8] == "library/"
}

var validOpTypes = map[string]bool{
	"fuse": true, "cut": true, "common": true,
	"fillet": true, "chamfer": true, "shell": true, "circular_pattern": true,
}

// Parse decodes a YAML config document and checks structural invariants:
// required sections present, shape ids unique, operation id references
// resolvable at declaration order, and shape/op types known.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config yaml: %w", err)
	}

	if len(cfg.Shapes) == 0 {
		return nil, &ConfigError{Code: "missing_field", Msg: "shapes[] is required and must be non-empty"}
	}
	if len(cfg.Operations) == 0 {
		return nil, &ConfigError{Code: "missing_field", Msg: "operations[] is required and must be non-empty"}
	}

	if err := validateShapes(cfg.Shapes); err != nil {
		return nil, err
	}
	if err := validateOperations(cfg.Shapes, cfg.Operations); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseFile reads and parses a config file from disk.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

func validateShapes(shapes []Shape) error {
	seen := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		if s.ID == "" {
			return &ConfigError{Code: "missing_field", Msg: "shape id is required"}
		}
		if seen[s.ID] {
			return &ConfigError{Code: "duplicate_id", ID: s.ID, Msg: "shape id is not unique within shapes[]"}
		}
		seen[s.ID] = true

		if !isValidShapeType(s.Type) {
			return &ConfigError{Code: "unknown_type", ID: s.ID, Msg: fmt.Sprintf("unknown shape type %q", s.Type)}
		}
		if s.Type == "revolution" {
			if len(s.Profile) > 0 && s.Profile[0] != s.Profile[len(s.Profile)-1] {
				return &ConfigError{Code: "unclosed_profile", ID: s.ID, Msg: "revolution profile is not closed"}
			}
		}
	}
	return nil
}

// validateOperations checks that every id an operation references
// exists in scope (shapes, or a prior operation's result), per the
// Operation invariant in spec.md §3. Result ids are added to scope as
// operations are scanned in order.
func validateOperations(shapes []Shape, ops []Operation) error {
	scope := make(map[string]bool, len(shapes)+len(ops))
	for _, s := range shapes {
		scope[s.ID] = true
	}

	ref := func(opIdx int, id string) error {
		if id == "" {
			return nil
		}
		if !scope[id] {
			return &ConfigError{
				Code: "dangling_ref",
				ID:   id,
				Msg:  fmt.Sprintf("operation[%d] references unknown id %q", opIdx, id),
			}
		}
		return nil
	}

	for i, op := range ops {
		if !validOpTypes[op.Type] {
			return &ConfigError{Code: "unknown_type", Msg: fmt.Sprintf("unknown operation type %q at index %d", op.Type, i)}
		}

		switch op.Type {
		case "fuse", "cut", "common":
			if err := ref(i, op.Base); err != nil {
				return err
			}
			if err := ref(i, op.Tool); err != nil {
				return err
			}
		case "fillet", "chamfer", "shell":
			if err := ref(i, op.Target); err != nil {
				return err
			}
		case "circular_pattern":
			if err := ref(i, op.Target); err != nil {
				return err
			}
		}

		if op.Result == "" {
			return &ConfigError{Code: "missing_field", Msg: fmt.Sprintf("operation[%d] (%s) requires a result id", i, op.Type)}
		}
		scope[op.Result] = true
	}
	return nil
}

package config

import (
	"strings"
	"testing"
)

const minimalYAML = `
shapes:
  - id: body
    type: cylinder
    radius: 60
operations:
  - type: fuse
    base: body
    tool: body
    result: body
`

func TestParseMinimal(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Shapes) != 1 || cfg.Shapes[0].ID != "body" {
		t.Fatalf("shapes not parsed: %+v", cfg.Shapes)
	}
}

func TestParseMissingShapes(t *testing.T) {
	_, err := Parse([]byte("operations:\n  - type: fuse\n    result: x\n"))
	if err == nil {
		t.Fatal("expected error for missing shapes[]")
	}
	var ce *ConfigError
	if !asConfigError(err, &ce) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestParseDuplicateShapeID(t *testing.T) {
	yaml := `
shapes:
  - id: a
    type: box
  - id: a
    type: box
operations:
  - type: fuse
    base: a
    tool: a
    result: a
`
	_, err := Parse([]byte(yaml))
	if err == nil || !strings.Contains(err.Error(), "duplicate_id") {
		t.Fatalf("expected duplicate_id error, got %v", err)
	}
}

func TestParseUnknownShapeType(t *testing.T) {
	yaml := `
shapes:
  - id: a
    type: frobnicator
operations:
  - type: fuse
    base: a
    tool: a
    result: a
`
	_, err := Parse([]byte(yaml))
	if err == nil || !strings.Contains(err.Error(), "unknown_type") {
		t.Fatalf("expected unknown_type error, got %v", err)
	}
}

func TestParseDanglingReference(t *testing.T) {
	yaml := `
shapes:
  - id: a
    type: box
operations:
  - type: cut
    base: a
    tool: ghost
    result: a
`
	_, err := Parse([]byte(yaml))
	if err == nil || !strings.Contains(err.Error(), "dangling_ref") {
		t.Fatalf("expected dangling_ref error, got %v", err)
	}
}

func TestParseLibraryShapeType(t *testing.T) {
	yaml := `
shapes:
  - id: bolt1
    type: library/bolt_m6
operations:
  - type: fuse
    base: bolt1
    tool: bolt1
    result: bolt1
`
	if _, err := Parse([]byte(yaml)); err != nil {
		t.Fatalf("library/* shape type should be valid: %v", err)
	}
}

func asConfigError(err error, target **ConfigError) bool {
	ce, ok := err.(*ConfigError)
	if ok {
		*target = ce
	}
	return ok
}

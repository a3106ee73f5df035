package config

import "fmt"

// ConfigError reports a malformed config document: an unknown shape/op
// type, a missing required field, a dangling id reference, or an unclosed
// revolution profile. Always fatal.
type ConfigError struct {
	Code string // e.g. "unknown_type", "missing_field", "dangling_ref"
	ID   string // offending shape/operation id, if any
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("config: %s (%s): %s", e.Code, e.ID, e.Msg)
	}
	return fmt.Sprintf("config: %s: %s", e.Code, e.Msg)
}

// TemplateParseError reports malformed TOML in a template or override file.
type TemplateParseError struct {
	Path string
	Err  error
}

func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("template parse %s: %v", e.Path, e.Err)
}

func (e *TemplateParseError) Unwrap() error { return e.Err }

// PlanValidationError reports a failed plan-validator code (V1-V10).
// Codes V1-V5, V7, V10 are fatal; V6, V8, V9 are warnings and are
// reported separately (see Fatal).
type PlanValidationError struct {
	Code    string // "V1".."V10"
	Msg     string
	Fatal   bool
	IntentID string // populated for intent-scoped codes (V5, V10)
}

func (e *PlanValidationError) Error() string {
	if e.IntentID != "" {
		return fmt.Sprintf("%s: %s (intent %s)", e.Code, e.Msg, e.IntentID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// GeometryError reports a recoverable or fatal geometry inconsistency,
// e.g. a revolution profile crossing the axis, or collinear arc points
// (recovered by falling back to a straight segment).
type GeometryError struct {
	Code      string
	Msg       string
	Recovered bool
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: %s", e.Code, e.Msg)
}

// StandardLookupError reports an unknown IT grade, fit letter, process,
// or bolt size in the standard databases. Always fatal.
type StandardLookupError struct {
	Kind  string // "it_grade", "fit_letter", "process", "bolt_size"
	Value string
}

func (e *StandardLookupError) Error() string {
	return fmt.Sprintf("standard lookup: unknown %s %q", e.Kind, e.Value)
}

// PostProcessRuleError is caught per-rule by the post-processing driver
// and recorded in the report's errors[] without aborting the pipeline.
type PostProcessRuleError struct {
	Rule string
	Err  error
}

func (e *PostProcessRuleError) Error() string {
	return fmt.Sprintf("post-process rule %q: %v", e.Rule, e.Err)
}

func (e *PostProcessRuleError) Unwrap() error { return e.Err }

// RepairRiskKind enumerates the structured, never-fatal risk records a
// repair pass may emit.
type RepairRiskKind string

const (
	RiskNotesReflowed              RepairRiskKind = "notes_reflowed"
	RiskDimensionAssocUncertain    RepairRiskKind = "dimension_association_uncertain"
	RiskSemanticMayShift           RepairRiskKind = "semantic_may_shift"
)

// RepairRiskFlag is a structured, never-fatal record emitted by repair
// passes.
type RepairRiskFlag struct {
	Kind    RepairRiskKind
	Element string
	Detail  string
}

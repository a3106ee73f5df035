// Package config defines the declarative input record shapes consumed by
// the drawing compiler: shape primitives, operations, drawing plans,
// dimension intents, and the kernel-facing view/edge records. Config is
// immutable once Parse returns.
package config

// Config is the parsed top-level document. Required sections are Shapes
// and Operations; everything else is optional.
type Config struct {
	Shapes        []Shape                `yaml:"shapes" json:"shapes"`
	Operations    []Operation            `yaml:"operations" json:"operations"`
	Parts         []Part                 `yaml:"parts,omitempty" json:"parts,omitempty"`
	Assembly      map[string]any         `yaml:"assembly,omitempty" json:"assembly,omitempty"`
	Drawing       DrawingCfg             `yaml:"drawing,omitempty" json:"drawing,omitempty"`
	Manufacturing ManufacturingCfg       `yaml:"manufacturing,omitempty" json:"manufacturing,omitempty"`
	Tolerances    map[string]any         `yaml:"tolerances,omitempty" json:"tolerances,omitempty"`
	SurfaceFinish map[string]any         `yaml:"surface_finish,omitempty" json:"surface_finish,omitempty"`
	Notes         map[string]any         `yaml:"notes,omitempty" json:"notes,omitempty"`
	KSStandard    map[string]any         `yaml:"ks_standard,omitempty" json:"ks_standard,omitempty"`
}

// IsAssembly reports whether the config describes an assembly (the
// "assembly" key is present, per the §4.D classifier rule 1).
func (c *Config) IsAssembly() bool {
	return c.Assembly != nil
}

// Part is one assembly member (assembly mode only).
type Part struct {
	ID     string  `yaml:"id" json:"id"`
	Shapes []Shape `yaml:"shapes" json:"shapes"`
	Qty    int     `yaml:"qty,omitempty" json:"qty,omitempty"`
}

// DrawingCfg is the optional "drawing" section: enabled views, style
// overrides, and plan overrides.
type DrawingCfg struct {
	Views    map[string]any `yaml:"views,omitempty" json:"views,omitempty"`
	Style    map[string]any `yaml:"style,omitempty" json:"style,omitempty"`
	Overrides map[string]any `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Revisions []Revision    `yaml:"revisions,omitempty" json:"revisions,omitempty"`
	Threads   []ThreadCfg   `yaml:"threads,omitempty" json:"threads,omitempty"`
}

// ThreadCfg declares a threaded hole's callout data (§4.B thread
// inference source).
type ThreadCfg struct {
	HoleID   string  `yaml:"hole_id" json:"hole_id"`
	Diameter float64 `yaml:"diameter,omitempty" json:"diameter,omitempty"`
	Pitch    float64 `yaml:"pitch,omitempty" json:"pitch,omitempty"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	Class    string  `yaml:"class,omitempty" json:"class,omitempty"`
}

// Revision is one row of the optional revision table (supplemented from
// original_source; see SPEC_FULL.md).
type Revision struct {
	Rev         string `yaml:"rev" json:"rev"`
	Description string `yaml:"description" json:"description"`
	Date        string `yaml:"date" json:"date"`
}

// ManufacturingCfg drives the DFM analyzer (§4.L).
type ManufacturingCfg struct {
	Process         string  `yaml:"process,omitempty" json:"process,omitempty"` // machining|casting|sheet_metal|3d_printing
	Material        string  `yaml:"material,omitempty" json:"material,omitempty"`
	MinWallOverride float64 `yaml:"min_wall_override,omitempty" json:"min_wall_override,omitempty"`
	ShopProfile     map[string]any `yaml:"shop_profile,omitempty" json:"shop_profile,omitempty"`
}

// Shape is a tagged primitive record. Exactly one of the type-specific
// fields is meaningful, selected by Type. Extra carries any
// domain-specific fields not modeled explicitly.
type Shape struct {
	ID       string     `yaml:"id" json:"id"`
	Type     string     `yaml:"type" json:"type"` // box|cylinder|sphere|cone|torus|revolution|extrusion|library/*
	Position [3]float64 `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation [4]float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"` // axis(3)+angle deg
	Direction [3]float64 `yaml:"direction,omitempty" json:"direction,omitempty"`

	// box
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Depth  float64 `yaml:"depth,omitempty" json:"depth,omitempty"`
	// cylinder/cone/sphere/torus
	Radius  float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
	Radius2 float64 `yaml:"radius2,omitempty" json:"radius2,omitempty"`
	Length  float64 `yaml:"length,omitempty" json:"length,omitempty"`
	// revolution
	ProfileStart [2]float64   `yaml:"profile_start,omitempty" json:"profile_start,omitempty"`
	Profile      [][2]float64 `yaml:"profile,omitempty" json:"profile,omitempty"`
	Closed       bool         `yaml:"closed,omitempty" json:"closed,omitempty"`
	Angle        float64      `yaml:"angle,omitempty" json:"angle,omitempty"`

	Material string         `yaml:"material,omitempty" json:"material,omitempty"`
	Extra    map[string]any `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Operation is a tagged record referencing shape ids already in scope.
type Operation struct {
	Type string `yaml:"type" json:"type"` // fuse|cut|common|fillet|chamfer|shell|circular_pattern

	// fuse|cut|common
	Base   string `yaml:"base,omitempty" json:"base,omitempty"`
	Tool   string `yaml:"tool,omitempty" json:"tool,omitempty"`
	Result string `yaml:"result" json:"result"`

	// fillet|chamfer
	Target string   `yaml:"target,omitempty" json:"target,omitempty"`
	Radius float64  `yaml:"radius,omitempty" json:"radius,omitempty"`
	Size   float64  `yaml:"size,omitempty" json:"size,omitempty"`
	Edges  []string `yaml:"edges,omitempty" json:"edges,omitempty"`

	// shell
	Thickness float64  `yaml:"thickness,omitempty" json:"thickness,omitempty"`
	Faces     []string `yaml:"faces,omitempty" json:"faces,omitempty"`

	// circular_pattern
	Axis            [3]float64 `yaml:"axis,omitempty" json:"axis,omitempty"`
	Center          [3]float64 `yaml:"center,omitempty" json:"center,omitempty"`
	Count           int        `yaml:"count,omitempty" json:"count,omitempty"`
	PatternAngle    float64    `yaml:"angle,omitempty" json:"angle,omitempty"`
	IncludeOriginal bool       `yaml:"include_original,omitempty" json:"include_original,omitempty"`
}

// ViewName enumerates the four supported views.
type ViewName string

const (
	ViewFront ViewName = "front"
	ViewTop   ViewName = "top"
	ViewRight ViewName = "right"
	ViewISO   ViewName = "iso"
	ViewNotes ViewName = "notes" // pseudo-view for note-style intents
)

// ValidViews is the set of view names a plan's enabled-views list and
// dim-intent targets are checked against (V3, V5).
var ValidViews = map[ViewName]bool{
	ViewFront: true, ViewTop: true, ViewRight: true, ViewISO: true,
}

// DimStyle enumerates dimension-intent rendering styles.
type DimStyle string

const (
	StyleLinear   DimStyle = "linear"
	StyleDiameter DimStyle = "diameter"
	StyleRadius   DimStyle = "radius"
	StyleCallout  DimStyle = "callout"
	StyleNote     DimStyle = "note"
	StyleAngular  DimStyle = "angular"
)

// Confidence enumerates extractor confidence levels.
type Confidence string

const (
	ConfHigh   Confidence = "high"
	ConfMedium Confidence = "medium"
	ConfNone   Confidence = "none"
)

// DimIntent is one declarative dimension the plan wants rendered.
type DimIntent struct {
	ID        string     `yaml:"id" json:"id"`
	Feature   string     `yaml:"feature" json:"feature"`
	View      ViewName   `yaml:"view" json:"view"`
	Style     DimStyle   `yaml:"style" json:"style"`
	Required  bool       `yaml:"required,omitempty" json:"required,omitempty"`
	Priority  int        `yaml:"priority,omitempty" json:"priority,omitempty"`
	ValueMM   *float64   `yaml:"value_mm,omitempty" json:"value_mm,omitempty"`
	Confidence Confidence `yaml:"confidence,omitempty" json:"confidence,omitempty"`
	Source    string     `yaml:"source,omitempty" json:"source,omitempty"`
	Review    bool       `yaml:"review,omitempty" json:"review,omitempty"`
	Placement string     `yaml:"placement,omitempty" json:"placement,omitempty"` // side hint: top|bottom|left|right
}

// IsReviewItem reports whether this intent is an unresolved required
// dimension (value_mm nil, required true).
func (d *DimIntent) IsReviewItem() bool {
	return d.Required && d.ValueMM == nil
}

// ScaleCfg bounds the automatic view scale selection.
type ScaleCfg struct {
	Mode string  `yaml:"mode,omitempty" json:"mode,omitempty"` // "auto"|"fixed"
	Min  float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max  float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// ViewCfg is one entry of plan.views: enabled + layout + free-form options.
type ViewCfg struct {
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Layout  string         `yaml:"layout,omitempty" json:"layout,omitempty"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// DimensioningCfg selects the dimensioning scheme and its knobs.
type DimensioningCfg struct {
	Scheme string         `yaml:"scheme,omitempty" json:"scheme,omitempty"` // auto|baseline|ordinate|plan
	Extra  map[string]any `yaml:"-" json:"-"`
}

// NotesCfg holds general notes text and placement hints.
type NotesCfg struct {
	General   []string       `yaml:"general,omitempty" json:"general,omitempty"`
	Placement map[string]any `yaml:"placement,omitempty" json:"placement,omitempty"`
}

// DrawingPlan is the enriched, template-merged plan that drives
// rendering. SchemaVersion and PartType are set by the classifier and
// template loader; DimIntents are populated by the template and then
// value-filled by pkg/values.
type DrawingPlan struct {
	SchemaVersion string                 `yaml:"schema_version" json:"schema_version"`
	PartType      string                 `yaml:"part_type" json:"part_type"`
	Profile       string                 `yaml:"profile,omitempty" json:"profile,omitempty"`
	Views         map[ViewName]ViewCfg   `yaml:"views" json:"views"`
	Datums        []string               `yaml:"datums,omitempty" json:"datums,omitempty"`
	Dimensioning  DimensioningCfg        `yaml:"dimensioning,omitempty" json:"dimensioning,omitempty"`
	DimIntents    []DimIntent            `yaml:"dim_intents,omitempty" json:"dim_intents,omitempty"`
	Notes         NotesCfg               `yaml:"notes,omitempty" json:"notes,omitempty"`
	Scale         ScaleCfg               `yaml:"scale,omitempty" json:"scale,omitempty"`
	Style         map[string]any         `yaml:"style,omitempty" json:"style,omitempty"`
}

// EnabledViews returns the sorted-by-fixed-order list of enabled view
// names.
func (p *DrawingPlan) EnabledViews() []ViewName {
	order := []ViewName{ViewTop, ViewISO, ViewFront, ViewRight}
	out := make([]ViewName, 0, len(order))
	for _, v := range order {
		if cfg, ok := p.Views[v]; ok && cfg.Enabled {
			out = append(out, v)
		}
	}
	return out
}

// SupportedSchemaVersions is the set accepted by V1.
var SupportedSchemaVersions = map[string]bool{
	"1.0": true, "1.1": true,
}

// RequiredIntentsByPartType lists the dimension-intent ids a plan must
// carry (with required=true) per part type, checked by V4.
var RequiredIntentsByPartType = map[string][]string{
	"flange":        {"OD", "ID", "PCD", "BOLT_DIA", "THK"},
	"shaft":         {"TOTAL_LENGTH", "OD1"},
	"bracket":       {"WIDTH", "HEIGHT", "DEPTH", "BASE_W"},
	"housing":       {"WIDTH", "HEIGHT", "DEPTH", "WALL_THK"},
	"bushing_plate": {"WIDTH", "HEIGHT", "HOLE_DIA"},
	"generic":       {},
	"assembly":      {},
}

// DiameterLikeLinearIDs pins the open question in §9: the fixed list of
// dim-intent ids that a `linear`-styled intent is nonetheless routed as
// a diameter. Exposed as data (not hard-coded control flow) so a plan's
// style field remains the primary signal.
var DiameterLikeLinearIDs = map[string]bool{
	"OD": true, "ID": true, "PCD": true, "BOLT_DIA": true,
	"OD1": true, "OD2": true, "HOLE_DIA": true, "BORE_ID": true,
}

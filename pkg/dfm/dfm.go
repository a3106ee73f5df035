// Package dfm analyzes an enriched config against per-process
// manufacturing constraints and emits a severity-graded checklist plus
// a deduction-weighted score (§4.L), one function per check.
package dfm

import (
	"fmt"
	"math"

	"github.com/drawforge/drawforge/pkg/config"
)

// Severity enumerates a check's grade.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Check is a single DFM finding.
type Check struct {
	Code           string   `json:"code"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Feature        string   `json:"feature,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Constraints is one process's manufacturing envelope.
type Constraints struct {
	MinWall           float64
	HoleEdgeFactor    float64
	HoleSpacingFactor float64
	MaxDrillRatio     float64
}

// ProcessConstraints is the fixed constraint table keyed by
// manufacturing.process.
var ProcessConstraints = map[string]Constraints{
	"machining":   {MinWall: 1.5, HoleEdgeFactor: 1.0, HoleSpacingFactor: 1.0, MaxDrillRatio: 5.0},
	"casting":     {MinWall: 3.0, HoleEdgeFactor: 2.0, HoleSpacingFactor: 1.5, MaxDrillRatio: 3.0},
	"sheet_metal": {MinWall: 0.5, HoleEdgeFactor: 1.0, HoleSpacingFactor: 1.0, MaxDrillRatio: 10.0},
	"3d_printing": {MinWall: 0.8, HoleEdgeFactor: 0.5, HoleSpacingFactor: 0.5, MaxDrillRatio: 20.0},
}

// DefaultProcess is used when manufacturing.process is unset or unknown.
const DefaultProcess = "machining"

// Summary totals a Report's checks by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// Report is the full DFM analysis result. Success is false whenever
// any check graded error, matching the "fails the part" reading of a
// DFM-01..06 error finding.
type Report struct {
	Success  bool    `json:"success"`
	Process  string  `json:"process"`
	Material string  `json:"material"`
	Checks   []Check `json:"checks"`
	Summary  Summary `json:"summary"`
	Score    int     `json:"score"`
}

// Run executes the fixed checklist (DFM-01 through DFM-09) against cfg
// and returns the weighted report.
func Run(cfg *config.Config) Report {
	constraints, ok := ProcessConstraints[cfg.Manufacturing.Process]
	if !ok {
		constraints = ProcessConstraints[DefaultProcess]
	}
	if cfg.Manufacturing.MinWallOverride > 0 {
		constraints.MinWall = cfg.Manufacturing.MinWallOverride
	}

	var checks []Check
	checks = append(checks, checkWallThickness(cfg, constraints)...)
	checks = append(checks, checkHoleEdgeDistance(cfg, constraints)...)
	checks = append(checks, checkHoleSpacing(cfg, constraints)...)
	checks = append(checks, checkFilletChamfer(cfg)...)
	checks = append(checks, checkDrillRatio(cfg, constraints)...)
	checks = append(checks, checkUndercut(cfg)...)
	checks = append(checks, checkToolConstraints(cfg)...)

	summary := Summary{Total: len(checks)}
	for _, c := range checks {
		switch c.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Info++
		}
	}

	score := 100 - summary.Errors*15 - summary.Warnings*5
	if score < 0 {
		score = 0
	}

	process := cfg.Manufacturing.Process
	if process == "" {
		process = DefaultProcess
	}
	material := cfg.Manufacturing.Material
	if material == "" {
		material = "unknown"
	}

	return Report{
		Success:  summary.Errors == 0,
		Process:  process,
		Material: material,
		Checks:   checks,
		Summary:  summary,
		Score:    score,
	}
}

// hole is an extracted cut cylinder (bore/hole candidate).
type hole struct {
	id             string
	radius, height float64
	x, y, z        float64
}

func (h hole) diameter() float64 { return h.radius * 2 }

// body is an extracted solid (non-cut) shape: a cylinder (radius set)
// or a box (width/depth/height set).
type body struct {
	id                   string
	isType               string
	x, y, z              float64
	radius               float64
	width, depth, height float64
}

func cutToolIDs(cfg *config.Config) map[string]bool {
	tools := make(map[string]bool)
	for _, op := range cfg.Operations {
		if op.Type == "cut" {
			tools[op.Tool] = true
		}
	}
	return tools
}

func extractHoles(cfg *config.Config) []hole {
	tools := cutToolIDs(cfg)
	var holes []hole
	for _, s := range cfg.Shapes {
		if s.Type != "cylinder" || !tools[s.ID] {
			continue
		}
		holes = append(holes, hole{
			id: s.ID, radius: s.Radius, height: s.Length,
			x: s.Position[0], y: s.Position[1], z: s.Position[2],
		})
	}
	return holes
}

func extractBodies(cfg *config.Config) []body {
	tools := cutToolIDs(cfg)
	var bodies []body
	for _, s := range cfg.Shapes {
		if tools[s.ID] {
			continue
		}
		b := body{
			id: s.ID, isType: s.Type,
			x: s.Position[0], y: s.Position[1], z: s.Position[2],
		}
		switch s.Type {
		case "cylinder":
			b.radius = s.Radius
		case "box":
			b.width, b.depth, b.height = s.Width, s.Depth, s.Height
		}
		bodies = append(bodies, b)
	}
	return bodies
}

func dist2D(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func outerCylinder(bodies []body) (body, bool) {
	var best body
	found := false
	for _, b := range bodies {
		if b.isType != "cylinder" {
			continue
		}
		if !found || b.radius > best.radius {
			best = b
			found = true
		}
	}
	return best, found
}

func isCentralBore(h hole, outer body) bool {
	return dist2D(h.x, h.y, outer.x, outer.y) < 0.1
}

// counterboreIDs finds coaxial cut-cylinder pairs where the larger,
// shallower one is a counterbore sitting atop the narrower through-hole.
func counterboreIDs(cfg *config.Config) map[string]bool {
	tools := cutToolIDs(cfg)
	var cyls []config.Shape
	for _, s := range cfg.Shapes {
		if s.Type == "cylinder" && tools[s.ID] {
			cyls = append(cyls, s)
		}
	}
	cb := make(map[string]bool)
	for i, c1 := range cyls {
		for j := i + 1; j < len(cyls); j++ {
			c2 := cyls[j]
			xy := dist2D(c1.Position[0], c1.Position[1], c2.Position[0], c2.Position[1])
			if xy >= 0.1 {
				continue
			}
			r1, r2 := c1.Radius, c2.Radius
			h1, h2 := c1.Length, c2.Length
			if r1 > r2 && h1 < h2 {
				cb[c1.ID] = true
			} else if r2 > r1 && h2 < h1 {
				cb[c2.ID] = true
			}
		}
	}
	return cb
}

// checkWallThickness is DFM-01: wall between hole edge and outer body
// boundary must clear min_wall, extended to a box body's own faces and
// to the thin web at an L-bracket style joint between two box bodies.
func checkWallThickness(cfg *config.Config, c Constraints) []Check {
	holes := extractHoles(cfg)
	bodies := extractBodies(cfg)

	var checks []Check
	if outer, ok := outerCylinder(bodies); ok {
		for _, h := range holes {
			wall := outer.radius - dist2D(h.x, h.y, outer.x, outer.y) - h.radius
			switch {
			case wall < c.MinWall && wall >= 0:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityError,
					Message:        fmt.Sprintf("Wall thickness %.1fmm < min %.1fmm at hole '%s'", wall, c.MinWall, h.id),
					Feature:        h.id,
					Recommendation: fmt.Sprintf("Increase wall to >= %.1fmm or reduce hole diameter", c.MinWall),
				})
			case wall < c.MinWall*1.5 && wall >= c.MinWall:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityWarning,
					Message:        fmt.Sprintf("Wall thickness %.1fmm is marginal (min %.1fmm) at hole '%s'", wall, c.MinWall, h.id),
					Feature:        h.id,
					Recommendation: "Consider increasing wall thickness for safety margin",
				})
			}
		}
	}

	checks = append(checks, checkBoxWalls(holes, bodies, c)...)
	checks = append(checks, checkIntersectionWalls(bodies, c)...)
	return checks
}

// checkBoxWalls is the box-face half of DFM-01: for a hole cut into a
// box body, the wall is the distance from the hole edge to the
// nearest of the box's four side faces.
func checkBoxWalls(holes []hole, bodies []body, c Constraints) []Check {
	var checks []Check
	for _, b := range bodies {
		if b.isType != "box" {
			continue
		}
		for _, h := range holes {
			walls := [4]float64{
				h.x - b.x - h.radius,
				(b.x + b.width) - h.x - h.radius,
				h.y - b.y - h.radius,
				(b.y + b.depth) - h.y - h.radius,
			}
			best, found := 0.0, false
			for _, w := range walls {
				if w >= 0 && (!found || w < best) {
					best, found = w, true
				}
			}
			if !found {
				continue
			}
			switch {
			case best < c.MinWall:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityError,
					Message:        fmt.Sprintf("Box wall thickness %.1fmm < min %.1fmm at hole '%s' in '%s'", best, c.MinWall, h.id, b.id),
					Feature:        "box_wall",
					Recommendation: fmt.Sprintf("Increase wall to >= %.1fmm or reduce hole diameter", c.MinWall),
				})
			case best < c.MinWall*1.5:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityWarning,
					Message:        fmt.Sprintf("Box wall thickness %.1fmm is marginal (min %.1fmm) at hole '%s' in '%s'", best, c.MinWall, h.id, b.id),
					Feature:        "box_wall",
					Recommendation: "Consider increasing wall thickness for safety margin",
				})
			}
		}
	}
	return checks
}

// checkIntersectionWalls is the L-bracket half of DFM-01: two box
// bodies stacked directly on top of one another share a web whose
// thickness is the narrowest of their cross-sections.
func checkIntersectionWalls(bodies []body, c Constraints) []Check {
	var checks []Check
	for i, b1 := range bodies {
		if b1.isType != "box" {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b2 := bodies[j]
			if b2.isType != "box" || !boxesStacked(b1, b2) {
				continue
			}
			wall := math.Min(math.Min(b1.width, b2.width), math.Min(b1.depth, b2.depth))
			switch {
			case wall < c.MinWall:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityError,
					Message:        fmt.Sprintf("Intersection wall %.1fmm < min %.1fmm between '%s' and '%s'", wall, c.MinWall, b1.id, b2.id),
					Feature:        "intersection_wall",
					Recommendation: fmt.Sprintf("Increase the thinner member to >= %.1fmm", c.MinWall),
				})
			case wall < c.MinWall*1.5:
				checks = append(checks, Check{
					Code: "DFM-01", Severity: SeverityWarning,
					Message:        fmt.Sprintf("Intersection wall %.1fmm is marginal (min %.1fmm) between '%s' and '%s'", wall, c.MinWall, b1.id, b2.id),
					Feature:        "intersection_wall",
					Recommendation: "Consider thickening the joint for safety margin",
				})
			}
		}
	}
	return checks
}

// boxesStacked reports whether one box's top face sits directly on
// the other's, within tolerance — the L-bracket base/web joint.
func boxesStacked(b1, b2 body) bool {
	const tol = 0.1
	return math.Abs((b1.z+b1.height)-b2.z) < tol || math.Abs((b2.z+b2.height)-b1.z) < tol
}

// checkHoleEdgeDistance is DFM-02: peripheral holes (not central bores,
// not counterbores) must clear hole_edge_factor*diameter from the edge.
func checkHoleEdgeDistance(cfg *config.Config, c Constraints) []Check {
	holes := extractHoles(cfg)
	bodies := extractBodies(cfg)
	cb := counterboreIDs(cfg)
	outer, ok := outerCylinder(bodies)
	if !ok {
		return nil
	}

	var checks []Check
	for _, h := range holes {
		if isCentralBore(h, outer) || cb[h.id] {
			continue
		}
		minDist := c.HoleEdgeFactor * h.diameter()
		edgeDist := outer.radius - dist2D(h.x, h.y, outer.x, outer.y) - h.radius
		if edgeDist < minDist && edgeDist >= 0 {
			checks = append(checks, Check{
				Code: "DFM-02", Severity: SeverityError,
				Message: fmt.Sprintf("Hole '%s' edge distance %.1fmm < required %.1fmm (%.1fx dia %.1fmm)",
					h.id, edgeDist, minDist, c.HoleEdgeFactor, h.diameter()),
				Feature:        h.id,
				Recommendation: fmt.Sprintf("Move hole at least %.1fmm from edge", minDist),
			})
		}
	}
	return checks
}

// checkHoleSpacing is DFM-03: peripheral hole pairs must clear
// hole_spacing_factor*min(diameter).
func checkHoleSpacing(cfg *config.Config, c Constraints) []Check {
	holes := extractHoles(cfg)
	bodies := extractBodies(cfg)
	cb := counterboreIDs(cfg)
	outer, hasOuter := outerCylinder(bodies)

	var checks []Check
	for i, h1 := range holes {
		if cb[h1.id] {
			continue
		}
		for j := i + 1; j < len(holes); j++ {
			h2 := holes[j]
			if cb[h2.id] {
				continue
			}
			if dist2D(h1.x, h1.y, h2.x, h2.y) < 0.1 {
				continue
			}
			if hasOuter && (isCentralBore(h1, outer) || isCentralBore(h2, outer)) {
				continue
			}

			centerDist := dist2D(h1.x, h1.y, h2.x, h2.y)
			edgeGap := centerDist - h1.radius - h2.radius
			refDia := math.Min(h1.diameter(), h2.diameter())
			minSpacing := c.HoleSpacingFactor * refDia

			if edgeGap < minSpacing && edgeGap >= 0 {
				checks = append(checks, Check{
					Code: "DFM-03", Severity: SeverityWarning,
					Message: fmt.Sprintf("Hole spacing %.1fmm between '%s' and '%s' < recommended %.1fmm (%.1fx dia %.1fmm)",
						edgeGap, h1.id, h2.id, minSpacing, c.HoleSpacingFactor, refDia),
					Feature:        h1.id + "," + h2.id,
					Recommendation: fmt.Sprintf("Increase spacing to >= %.1fmm", minSpacing),
				})
			}
		}
	}
	return checks
}

func hasOperation(cfg *config.Config, opType string) bool {
	for _, op := range cfg.Operations {
		if op.Type == opType {
			return true
		}
	}
	return false
}

// checkFilletChamfer is DFM-04: cut operations without any fillet or
// chamfer risk stress concentration at internal corners.
func checkFilletChamfer(cfg *config.Config) []Check {
	hasCuts := hasOperation(cfg, "cut")
	hasFillet := hasOperation(cfg, "fillet")
	hasChamfer := hasOperation(cfg, "chamfer")

	switch {
	case hasCuts && !hasFillet && !hasChamfer:
		return []Check{{
			Code: "DFM-04", Severity: SeverityWarning,
			Message:        "No fillet or chamfer operations found — internal corners may cause stress concentration",
			Recommendation: "Add fillet (R >= 0.5mm) or chamfer to internal corners",
		}}
	case hasCuts && !hasFillet:
		return []Check{{
			Code: "DFM-04", Severity: SeverityInfo,
			Message:        "Chamfer present but no fillet — consider fillets for stress-critical corners",
			Recommendation: "Fillets distribute stress better than chamfers at internal corners",
		}}
	}
	return nil
}

// checkDrillRatio is DFM-05: depth/diameter ratio must not exceed
// max_drill_ratio.
func checkDrillRatio(cfg *config.Config, c Constraints) []Check {
	var checks []Check
	for _, h := range extractHoles(cfg) {
		if h.diameter() <= 0 {
			continue
		}
		ratio := h.height / h.diameter()
		if ratio > c.MaxDrillRatio {
			checks = append(checks, Check{
				Code: "DFM-05", Severity: SeverityWarning,
				Message: fmt.Sprintf("Drill ratio %.1f:1 for '%s' exceeds max %.0f:1 (depth=%.1fmm, dia=%.1fmm)",
					ratio, h.id, c.MaxDrillRatio, h.height, h.diameter()),
				Feature:        h.id,
				Recommendation: fmt.Sprintf("Reduce depth or increase diameter to achieve <= %.0f:1 ratio", c.MaxDrillRatio),
			})
		}
	}
	return checks
}

// checkUndercut is DFM-06: coaxial cut cylinders at different radii
// form an internal step (counterbore, tool-access risk, or — at three
// or more steps — a full error), and a narrow cut box nested inside a
// wider one forms a T-slot.
func checkUndercut(cfg *config.Config) []Check {
	tools := cutToolIDs(cfg)
	var cyls, boxes []config.Shape
	for _, s := range cfg.Shapes {
		if !tools[s.ID] {
			continue
		}
		switch s.Type {
		case "cylinder":
			cyls = append(cyls, s)
		case "box":
			boxes = append(boxes, s)
		}
	}

	var checks []Check
	checks = append(checks, pairwiseUndercuts(cyls)...)
	checks = append(checks, multiStepUndercuts(cyls)...)
	checks = append(checks, tSlotChecks(boxes)...)
	return checks
}

// pairwiseUndercuts grades every coaxial cut-cylinder pair as a
// counterbore (info) or a tool-access risk (warning).
func pairwiseUndercuts(cyls []config.Shape) []Check {
	var checks []Check
	for i, c1 := range cyls {
		for j := i + 1; j < len(cyls); j++ {
			c2 := cyls[j]
			xy := dist2D(c1.Position[0], c1.Position[1], c2.Position[0], c2.Position[1])
			if xy >= 0.1 {
				continue
			}
			if c1.Radius == c2.Radius {
				continue
			}
			larger, smaller := c1, c2
			if c2.Radius > c1.Radius {
				larger, smaller = c2, c1
			}
			isCounterbore := larger.Length < smaller.Length
			severity := SeverityWarning
			prefix := "Potential undercut"
			recommendation := "Verify tool access for internal step — consider through-hole or relief groove"
			if isCounterbore {
				severity = SeverityInfo
				prefix = "Counterbore"
				recommendation = "Counterbore depth and clearance are adequate"
			}
			checks = append(checks, Check{
				Code: "DFM-06", Severity: severity,
				Message: fmt.Sprintf("%s: coaxial holes '%s' (R=%gmm) and '%s' (R=%gmm) form internal step",
					prefix, larger.ID, larger.Radius, smaller.ID, smaller.Radius),
				Feature:        larger.ID + "," + smaller.ID,
				Recommendation: recommendation,
			})
		}
	}
	return checks
}

// multiStepUndercuts groups coaxial cut cylinders by shared XY
// position and escalates a stack of three or more distinct radii to
// an error: a standard tool reaches one internal step, not several.
func multiStepUndercuts(cyls []config.Shape) []Check {
	used := make([]bool, len(cyls))
	var checks []Check
	for i := range cyls {
		if used[i] {
			continue
		}
		group := []config.Shape{cyls[i]}
		used[i] = true
		for j := i + 1; j < len(cyls); j++ {
			if used[j] {
				continue
			}
			if dist2D(cyls[i].Position[0], cyls[i].Position[1], cyls[j].Position[0], cyls[j].Position[1]) < 0.1 {
				group = append(group, cyls[j])
				used[j] = true
			}
		}
		if len(group) < 3 {
			continue
		}
		ids := group[0].ID
		for _, g := range group[1:] {
			ids += "," + g.ID
		}
		checks = append(checks, Check{
			Code: "DFM-06", Severity: SeverityError,
			Message:        fmt.Sprintf("%d coaxial step-downs among '%s' exceed single-step tool access", len(group), ids),
			Feature:        ids,
			Recommendation: "Split into separate through-bores or provide relief access for each internal step",
		})
	}
	return checks
}

// tSlotChecks flags a narrow cut box nested inside a wider cut box's
// footprint and vertically adjacent to it — the classic T-slot
// profile of a wide pocket fed by a narrow channel.
func tSlotChecks(boxes []config.Shape) []Check {
	var checks []Check
	for i, b1 := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			b2 := boxes[j]
			wide, narrow := b1, b2
			if b2.Width > b1.Width {
				wide, narrow = b2, b1
			}
			if narrow.Width >= wide.Width {
				continue
			}
			if !rangeNested(wide.Position[0], wide.Position[0]+wide.Width, narrow.Position[0], narrow.Position[0]+narrow.Width) {
				continue
			}
			if !rangesTouch(wide.Position[2], wide.Position[2]+wide.Height, narrow.Position[2], narrow.Position[2]+narrow.Height) {
				continue
			}
			checks = append(checks, Check{
				Code: "DFM-06", Severity: SeverityWarning,
				Message: fmt.Sprintf("T-slot profile: narrow cut '%s' (w=%gmm) nests inside wide cut '%s' (w=%gmm)",
					narrow.ID, narrow.Width, wide.ID, wide.Width),
				Feature:        "t_slot",
				Recommendation: "Verify T-slot cutter or wire-EDM access for the narrow channel",
			})
		}
	}
	return checks
}

func rangeNested(outerMin, outerMax, innerMin, innerMax float64) bool {
	const tol = 0.1
	return innerMin >= outerMin-tol && innerMax <= outerMax+tol
}

func rangesTouch(a0, a1, b0, b1 float64) bool {
	const tol = 0.5
	return a1 >= b0-tol && b1 >= a0-tol
}

// checkToolConstraints is DFM-07/08/09: validates geometry against an
// optional shop profile's tool capabilities — the smallest drillable
// hole, the longest reachable drill, and the smallest internal radius
// a fillet/chamfer tool can cut.
func checkToolConstraints(cfg *config.Config) []Check {
	profile := cfg.Manufacturing.ShopProfile
	if profile == nil {
		return nil
	}
	toolConstraints, _ := profile["tool_constraints"].(map[string]any)
	if toolConstraints == nil {
		return nil
	}

	var checks []Check
	checks = append(checks, checkMinToolDiameter(cfg, toolConstraints)...)
	checks = append(checks, checkMaxToolReach(cfg, toolConstraints)...)
	checks = append(checks, checkMinInternalRadius(cfg, toolConstraints)...)
	return checks
}

// profileFloat coerces a shop-profile value (decoded from YAML/JSON as
// float64 or int) to a positive float, reporting whether it was set.
func profileFloat(m map[string]any, key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, n > 0
	case int:
		return float64(n), n > 0
	}
	return 0, false
}

// checkMinToolDiameter is DFM-07: a hole narrower than the shop's
// smallest listed tool diameter cannot be drilled as drawn.
func checkMinToolDiameter(cfg *config.Config, tc map[string]any) []Check {
	minD, ok := profileFloat(tc, "min_tool_diameter_mm")
	if !ok {
		return nil
	}
	var checks []Check
	for _, h := range extractHoles(cfg) {
		if d := h.diameter(); d > 0 && d < minD {
			checks = append(checks, Check{
				Code: "DFM-07", Severity: SeverityWarning,
				Message:        fmt.Sprintf("Hole '%s' diameter %.2fmm is below the shop's smallest tool %.2fmm", h.id, d, minD),
				Feature:        h.id,
				Recommendation: fmt.Sprintf("Increase hole diameter to >= %.2fmm or source a smaller tool", minD),
			})
		}
	}
	return checks
}

// checkMaxToolReach is DFM-08: a hole deeper than the shop's longest
// listed tool reach cannot be drilled in a single pass.
func checkMaxToolReach(cfg *config.Config, tc map[string]any) []Check {
	maxReach, ok := profileFloat(tc, "max_tool_reach_mm")
	if !ok {
		return nil
	}
	var checks []Check
	for _, h := range extractHoles(cfg) {
		if h.height > maxReach {
			checks = append(checks, Check{
				Code: "DFM-08", Severity: SeverityWarning,
				Message:        fmt.Sprintf("Hole '%s' depth %.2fmm exceeds the shop's longest tool reach %.2fmm", h.id, h.height, maxReach),
				Feature:        h.id,
				Recommendation: "Split into a pilot plus follow-up pass or confirm an extended-reach tool is available",
			})
		}
	}
	return checks
}

// checkMinInternalRadius is DFM-09: a fillet or chamfer smaller than
// the shop's smallest internal-corner tool cannot actually be cut.
func checkMinInternalRadius(cfg *config.Config, tc map[string]any) []Check {
	minR, ok := profileFloat(tc, "min_internal_radius_mm")
	if !ok {
		return nil
	}
	var checks []Check
	for _, op := range cfg.Operations {
		var size float64
		switch op.Type {
		case "fillet":
			size = op.Radius
		case "chamfer":
			size = op.Size
		default:
			continue
		}
		if size > 0 && size < minR {
			checks = append(checks, Check{
				Code: "DFM-09", Severity: SeverityWarning,
				Message: fmt.Sprintf("%s %.2fmm on '%s' is below the shop's minimum internal radius %.2fmm",
					op.Type, size, op.Target, minR),
				Feature:        op.Target,
				Recommendation: fmt.Sprintf("Increase to >= %.2fmm or confirm the shop stocks a smaller tool", minR),
			})
		}
	}
	return checks
}

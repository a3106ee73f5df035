package view

import (
	"fmt"
	"sort"

	"github.com/drawforge/drawforge/pkg/annotate"
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dimension"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/stddata"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// Result summarizes one composed drawing's element counts, surfaced by
// the CLI's --dry-run/--profile reporting and consumed by the QA pass
// for sanity checks against the rendered tree.
type Result struct {
	EdgesDrawn      int
	CenterMarks     int
	SymmetryAxes    int
	AutoDimensions  int
	PlanDimensions  int
	BaselineDims    int
	GDTFrames       int
	SurfaceFinishes int
	NotesRendered   int
}

// Compose renders the full fixed-root SVG structure (§6): furniture,
// one group per enabled view carrying edges/center-marks/symmetry/
// dimensions/GD&T/surface-finish, the revision table, title block and
// BOM. It owns the per-view annotation planner and dedupe state so
// placement and dedupe never leak across views except where the plan's
// dimensioning engines explicitly cross-reference them.
func Compose(cfg *config.Config, plan *config.DrawingPlan, scene *kernel.Scene, g *feature.Graph, doc *svgdoc.Document) Result {
	var result Result
	root := doc.Root

	RenderFixedFurniture(root)
	RenderTitleBlockFrame(root)
	RenderRevisionTable(cfg.Drawing.Revisions, root)
	RenderProjectionSymbol(projectionStyle(cfg), root)

	datums := SelectDatums(cfg, g)
	fcfSpecs := AssignTolerances(g, datums)
	finishSpecs := defaultFinishSpecs(cfg, g)

	tel := dimension.NewTelemetry()
	dedupe := dimension.NewDedupeState()

	for _, vn := range plan.EnabledViews() {
		vd, ok := scene.Views[vn]
		if !ok {
			continue
		}
		viewGroup := svgdoc.Group(root, fmt.Sprintf("view-%s", vn))
		planner := annotate.New()

		cellCenter, _ := geom.CellCenter(vn)
		bounds := [4]float64{vd.Bounds.U0, vd.Bounds.V0, vd.Bounds.U1, vd.Bounds.V1}
		xf := dimension.NewTransform(bounds, vn, [2]float64{cellCenter.X, cellCenter.Y},
			geom.CellW, geom.CellH, plan.Scale.Min, plan.Scale.Max)

		result.EdgesDrawn += RenderEdges(vn, vd, xf, viewGroup)
		result.CenterMarks += RenderCenterMarks(vn, vd, xf, viewGroup)
		result.SymmetryAxes += RenderSymmetryAxes(vn, vd, xf, viewGroup)

		dimGroup := svgdoc.Group(viewGroup, fmt.Sprintf("dimensions-%s", vn))
		switch plan.Dimensioning.Scheme {
		case "baseline", "ordinate":
			datum := kernel.Point{U: vd.Bounds.U0, V: vd.Bounds.V0}
			result.BaselineDims += dimension.Baseline(vn, vd, xf, datum, plan.Dimensioning.Scheme == "ordinate", dimGroup, tel)
		case "plan":
			result.PlanDimensions += dimension.PlanDriven(vn, intentsForView(plan, vn), vd, xf, dimGroup, tel, dedupe, dimension.PolicySmart)
		default:
			result.AutoDimensions += dimension.AutoChain(vn, vd, xf, dimGroup, tel, dedupe)
			if len(plan.DimIntents) > 0 {
				result.PlanDimensions += dimension.PlanDriven(vn, intentsForView(plan, vn), vd, xf, dimGroup, tel, dedupe, dimension.PolicySmart)
			}
		}

		annotGroup := svgdoc.Group(viewGroup, fmt.Sprintf("annotations-%s", vn))
		result.GDTFrames += RenderGDT(vn, vd, xf, fcfSpecs, g, planner, annotGroup)
		result.SurfaceFinishes += RenderFaceSurfaceFinish(vn, vd, xf, finishSpecs, g, planner, annotGroup)
	}

	process := cfg.Manufacturing.Process
	RenderDefaultSurfaceFinish(process, root)

	result.NotesRendered = RenderNotes(plan.Notes, root)

	bbox := overallBBox(cfg)
	bom := AggregateBOM(cfg)
	RenderTitleBlockData(partName(plan, cfg), scaleOf(plan), bbox, bom, root)

	return result
}

func intentsForView(plan *config.DrawingPlan, vn config.ViewName) []config.DimIntent {
	var out []config.DimIntent
	for _, in := range plan.DimIntents {
		if in.View == vn {
			out = append(out, in)
		}
	}
	return out
}

func projectionStyle(cfg *config.Config) string {
	if v, ok := cfg.Drawing.Style["projection"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "third"
}

func partName(plan *config.DrawingPlan, cfg *config.Config) string {
	if cfg.IsAssembly() {
		return "ASSEMBLY"
	}
	if plan.PartType != "" {
		return plan.PartType
	}
	return "PART"
}

func scaleOf(plan *config.DrawingPlan) float64 {
	if plan.Scale.Max > 0 {
		return plan.Scale.Max
	}
	return 1.0
}

func overallBBox(cfg *config.Config) geom.Box {
	var box geom.Box
	first := true
	for _, s := range cfg.Shapes {
		hw, hd, _ := halfExtents(s)
		b := geom.NewBox(s.Position[0]-hw, s.Position[1]-hd, s.Position[0]+hw, s.Position[1]+hd)
		if first {
			box = b
			first = false
		} else {
			box = geom.Union(box, b)
		}
	}
	return box
}

// defaultFinishSpecs attaches the configured surface-finish targets
// (cfg.SurfaceFinish keyed by anchor feature id) to their inferred
// features, falling back to none when the section is absent.
func defaultFinishSpecs(cfg *config.Config, g *feature.Graph) []SurfaceFinishSpec {
	ids := make([]string, 0, len(cfg.SurfaceFinish))
	for id := range cfg.SurfaceFinish {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []SurfaceFinishSpec
	for _, id := range ids {
		f := g.Get(id)
		if f == nil {
			continue
		}
		ra := stddata.DefaultSurfaceFinish(cfg.Manufacturing.Process)
		if v, ok := cfg.SurfaceFinish[id].(float64); ok {
			ra = v
		}
		out = append(out, SurfaceFinishSpec{AnchorID: id, RaMax: ra})
	}
	return out
}

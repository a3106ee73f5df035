// Package integration exercises the full compile pipeline end to end:
// classify/template/compile, feature inference, value extraction,
// view composition, post-processing and QA/DFM scoring, the way
// cmd/drawgen chains them.
package integration

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dfm"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/postprocess"
	"github.com/drawforge/drawforge/pkg/qa"
	"github.com/drawforge/drawforge/pkg/svgdoc"
	"github.com/drawforge/drawforge/pkg/template"
	"github.com/drawforge/drawforge/pkg/values"
	"github.com/drawforge/drawforge/pkg/view"
)

// flangeConfig is a disc with a central bore and a four-hole bolt
// circle: one non-cut cylinder, five cut cylinders, no boxes, which
// the classifier routes to "flange" (§4.D rule 3).
func flangeConfig() *config.Config {
	return &config.Config{
		Shapes: []config.Shape{
			{ID: "disc", Type: "cylinder", Radius: 60, Length: 12},
			{ID: "bore", Type: "cylinder", Radius: 15, Length: 12},
			{ID: "hole1", Type: "cylinder", Radius: 5, Length: 12, Position: [3]float64{45, 0, 0}},
			{ID: "hole2", Type: "cylinder", Radius: 5, Length: 12, Position: [3]float64{-45, 0, 0}},
			{ID: "hole3", Type: "cylinder", Radius: 5, Length: 12, Position: [3]float64{0, 45, 0}},
			{ID: "hole4", Type: "cylinder", Radius: 5, Length: 12, Position: [3]float64{0, -45, 0}},
		},
		Operations: []config.Operation{
			{Type: "cut", Base: "disc", Tool: "bore", Result: "body1"},
			{Type: "cut", Base: "body1", Tool: "hole1", Result: "body2"},
			{Type: "cut", Base: "body2", Tool: "hole2", Result: "body3"},
			{Type: "cut", Base: "body3", Tool: "hole3", Result: "body4"},
			{Type: "cut", Base: "body4", Tool: "hole4", Result: "body5"},
		},
		Manufacturing: config.ManufacturingCfg{
			Process:  "machining",
			Material: "aluminum",
		},
	}
}

// flangeScene supplies the minimal kernel output the three enabled
// views (front, top, iso; flange.toml disables right) need: bounds
// wide enough to hold the disc outline plus one visible edge each, so
// view.Compose has something to render and scale a viewport against.
func flangeScene() *kernel.Scene {
	newView := func() *kernel.ViewData {
		return &kernel.ViewData{
			Bounds: kernel.ViewBounds{U0: -60, V0: -60, U1: 60, V1: 60},
			Groups: map[kernel.EdgeGroupIndex][]kernel.Edge{
				kernel.GroupHardVisible: {
					{Circ: &kernel.Circ{CU: 0, CV: 0, R: 60}},
					{Circ: &kernel.Circ{CU: 0, CV: 0, R: 15}},
				},
			},
		}
	}
	return &kernel.Scene{
		Views: map[config.ViewName]*kernel.ViewData{
			config.ViewFront: newView(),
			config.ViewTop:   newView(),
			config.ViewISO:   newView(),
		},
	}
}

// runPipeline chains compile -> infer -> fill -> compose -> postprocess
// -> qa exactly as cmd/drawgen does, returning every stage's output so
// a test can assert on whichever stage it cares about.
func runPipeline(t *testing.T, cfg *config.Config) (*config.DrawingPlan, *feature.Graph, *svgdoc.Document, view.Result, *postprocess.Report, qa.Report) {
	t.Helper()

	store := template.NewStore("../..")
	plan, warnings, err := template.Compile(cfg, store)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, w := range warnings {
		t.Logf("compile warning: %v", w)
	}

	g, err := feature.Infer(cfg)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	values.Fill(plan, cfg, g)

	doc := svgdoc.NewDocument()
	result := view.Compose(cfg, plan, flangeScene(), g, doc)

	postReport := postprocess.Run(doc, postprocess.KSProfile, false)

	qaProfile := qa.FromPostprocessProfile(postprocess.KSProfile)
	metrics := qa.Collect(doc, qaProfile)
	scoreReport := qa.Score(metrics)

	return plan, g, doc, result, postReport, scoreReport
}

func TestIntegration_CompletePipeline(t *testing.T) {
	cfg := flangeConfig()
	plan, g, doc, result, postReport, scoreReport := runPipeline(t, cfg)

	if plan.PartType != "flange" {
		t.Fatalf("expected part_type flange, got %q", plan.PartType)
	}

	boltCircle := false
	for _, grp := range g.Groups() {
		if grp.Pattern == config.PatternBoltCircle {
			boltCircle = true
			if grp.PCD <= 0 {
				t.Errorf("bolt circle PCD not resolved: %v", grp.PCD)
			}
		}
	}
	if !boltCircle {
		t.Error("expected a bolt circle pattern to be detected from the four equally-spaced holes")
	}

	for _, intent := range plan.DimIntents {
		if intent.IsReviewItem() {
			t.Errorf("dim intent %s left unresolved after value filling", intent.ID)
		}
	}

	if result.EdgesDrawn == 0 {
		t.Error("view composition drew no edges")
	}
	if doc.Root == nil {
		t.Fatal("composed document has no root")
	}

	if postReport == nil {
		t.Fatal("post-process returned a nil report")
	}

	if scoreReport.Score < 0 || scoreReport.Score > 100 {
		t.Fatalf("score out of range: %d", scoreReport.Score)
	}

	t.Logf("flange drawing: %d edges drawn, %d auto dims, score %d", result.EdgesDrawn, result.AutoDimensions, scoreReport.Score)
}

// TestIntegration_Determinism verifies that compiling the same config
// twice produces identical plans, feature graphs and QA scores — the
// pipeline is a pure function of its config and kernel scene, with no
// hidden randomness or wall-clock dependency (§5).
func TestIntegration_Determinism(t *testing.T) {
	cfg1 := flangeConfig()
	cfg2 := flangeConfig()

	plan1, _, _, result1, _, score1 := runPipeline(t, cfg1)
	plan2, _, _, result2, _, score2 := runPipeline(t, cfg2)

	if len(plan1.DimIntents) != len(plan2.DimIntents) {
		t.Fatalf("dim intent counts differ: %d vs %d", len(plan1.DimIntents), len(plan2.DimIntents))
	}
	for i := range plan1.DimIntents {
		a, b := plan1.DimIntents[i], plan2.DimIntents[i]
		if a.ID != b.ID || a.ValueMM == nil != (b.ValueMM == nil) {
			t.Fatalf("dim intent %d differs between runs: %+v vs %+v", i, a, b)
		}
		if a.ValueMM != nil && *a.ValueMM != *b.ValueMM {
			t.Fatalf("dim intent %s value differs: %v vs %v", a.ID, *a.ValueMM, *b.ValueMM)
		}
	}

	if result1.EdgesDrawn != result2.EdgesDrawn {
		t.Fatalf("edge counts differ: %d vs %d", result1.EdgesDrawn, result2.EdgesDrawn)
	}
	if score1.Score != score2.Score {
		t.Fatalf("scores differ across identical runs: %d vs %d", score1.Score, score2.Score)
	}
}

// TestIntegration_DFMFlagsThinWall is a regression-shaped check that a
// hole placed too close to the outer edge leaves a wall thinner than
// the process minimum, reported as a DFM-01 error that drags Success
// to false, not just a warning.
func TestIntegration_DFMFlagsThinWall(t *testing.T) {
	cfg := &config.Config{
		Shapes: []config.Shape{
			{ID: "disc", Type: "cylinder", Radius: 20, Length: 10},
			{ID: "edgehole", Type: "cylinder", Radius: 5, Length: 10, Position: [3]float64{14.5, 0, 0}},
		},
		Operations: []config.Operation{
			{Type: "cut", Base: "disc", Tool: "edgehole", Result: "body1"},
		},
		Manufacturing: config.ManufacturingCfg{Process: "machining", Material: "steel"},
	}

	report := dfm.Run(cfg)

	found := false
	for _, c := range report.Checks {
		if c.Code == "DFM-01" && c.Severity == dfm.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a DFM-01 error for a 0.5mm wall under machining's 1.5mm minimum")
	}
	if report.Summary.Errors == 0 {
		t.Error("summary.errors should be non-zero")
	}
	if report.Success {
		t.Error("Success should be false when the summary reports errors")
	}
}

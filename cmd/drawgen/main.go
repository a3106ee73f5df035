package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/dfm"
	"github.com/drawforge/drawforge/pkg/feature"
	"github.com/drawforge/drawforge/pkg/kernel"
	"github.com/drawforge/drawforge/pkg/postprocess"
	"github.com/drawforge/drawforge/pkg/qa"
	"github.com/drawforge/drawforge/pkg/repair"
	"github.com/drawforge/drawforge/pkg/svgdoc"
	"github.com/drawforge/drawforge/pkg/template"
	"github.com/drawforge/drawforge/pkg/values"
	"github.com/drawforge/drawforge/pkg/view"
)

const version = "1.0.0"

// CLI flags
var (
	configPath = flag.String("config", "", "Path to YAML part/assembly config file (required)")
	kernelPath = flag.String("kernel", "", "Path to the JSON kernel projection output (required)")
	templates  = flag.String("templates", ".", "Root directory holding configs/templates and configs/overrides/presets")
	planPath   = flag.String("plan", "", "Path to an explicit TOML drawing plan, bypassing classify+template+merge")
	noPlan     = flag.Bool("no-plan", false, "Ignore dim_intents and plan-driven dimensioning; render auto-chain dimensions only")
	profile    = flag.String("profile", "ks", "Stroke profile for post-processing and QA (only \"ks\" is built in)")
	dryRun     = flag.Bool("dry-run", false, "Compute passes and reports without writing the SVG file")
	outputPath = flag.String("output", "", "SVG output path (default: <config base name>.svg)")
	reportPath = flag.String("report", "", "Path to write the combined QA+DFM JSON report (default: stdout)")
	failUnder  = flag.Int("fail-under", -1, "Exit non-zero if the QA score falls below this threshold (-1 disables)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("drawgen version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		printUsage()
		os.Exit(1)
	}
	if *kernelPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -kernel flag is required")
		printUsage()
		os.Exit(1)
	}
	if *profile != "ks" {
		fmt.Fprintf(os.Stderr, "Error: unknown profile %q, only \"ks\" is built in\n", *profile)
		os.Exit(1)
	}

	score, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *failUnder >= 0 && score < *failUnder {
		fmt.Fprintf(os.Stderr, "QA score %d is below -fail-under %d\n", score, *failUnder)
		os.Exit(1)
	}
}

// nolint:gocyclo // Complexity acceptable: CLI staging mirrors the fixed pipeline order (§4).
func run() (int, error) {
	if *verbose {
		fmt.Printf("Loading config from %s\n", *configPath)
	}
	cfg, err := config.ParseFile(*configPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		fmt.Printf("Loading kernel scene from %s\n", *kernelPath)
	}
	scene, err := loadScene(*kernelPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load kernel scene: %w", err)
	}

	plan, err := buildPlan(cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to build drawing plan: %w", err)
	}
	if *noPlan {
		plan.DimIntents = nil
	}

	g, err := feature.Infer(cfg)
	if err != nil {
		return 0, fmt.Errorf("feature inference failed: %w", err)
	}

	values.Fill(plan, cfg, g)

	if *verbose {
		fmt.Printf("Part type: %s, views: %v\n", plan.PartType, plan.EnabledViews())
		fmt.Println("Composing drawing...")
	}

	doc := svgdoc.NewDocument()
	composeResult := view.Compose(cfg, plan, scene, g, doc)
	if *verbose {
		fmt.Printf("Edges drawn: %d, auto dims: %d, plan dims: %d, GD&T frames: %d\n",
			composeResult.EdgesDrawn, composeResult.AutoDimensions, composeResult.PlanDimensions, composeResult.GDTFrames)
	}

	postReport := postprocess.Run(doc, postprocess.KSProfile, *dryRun)
	for _, e := range postReport.Errors {
		fmt.Fprintf(os.Stderr, "post-process warning: %v\n", e)
	}

	qaProfile := qa.FromPostprocessProfile(postprocess.KSProfile)
	metrics := qa.Collect(doc, qaProfile)
	scoreReport := qa.Score(metrics)

	overflows := qa.DetectOverflow(doc)
	textOverlaps := qa.DetectTextOverlaps(doc)

	var repairReport *repair.Report
	if needsRepair(metrics) && !*dryRun {
		if *verbose {
			fmt.Println("QA flagged overflow/overlap/notes issues, running repair passes...")
		}
		r := repair.Run(cfg, plan, doc)
		repairReport = &r
		metrics = qa.Collect(doc, qaProfile)
		scoreReport = qa.Score(metrics)
		overflows = qa.DetectOverflow(doc)
		textOverlaps = qa.DetectTextOverlaps(doc)
	}

	dfmReport := dfm.Run(cfg)

	if !*dryRun {
		out := *outputPath
		if out == "" {
			out = defaultOutputPath(*configPath)
		}
		if err := os.WriteFile(out, []byte(doc.Render()), 0644); err != nil {
			return 0, fmt.Errorf("failed to write SVG: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", out)
		}
	}

	if err := writeReport(*configPath, scoreReport, dfmReport, repairReport, overflows, textOverlaps); err != nil {
		return 0, fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("QA score: %d, DFM score: %d\n", scoreReport.Score, dfmReport.Score)
	return scoreReport.Score, nil
}

// buildPlan resolves the drawing plan either from an explicit -plan
// TOML file or by running the classify/template/merge/validate chain
// against the loaded config (§4.D).
func buildPlan(cfg *config.Config) (*config.DrawingPlan, error) {
	if *planPath != "" {
		if *verbose {
			fmt.Printf("Loading explicit plan from %s\n", *planPath)
		}
		return loadPlanFile(*planPath)
	}

	store := template.NewStore(*templates)
	plan, warnings, err := template.Compile(cfg, store)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "plan warning: %v\n", w)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func loadScene(path string) (*kernel.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scene kernel.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing kernel scene: %w", err)
	}
	return &scene, nil
}

func loadPlanFile(path string) (*config.DrawingPlan, error) {
	tree, err := template.DecodeTOMLFile(path)
	if err != nil {
		return nil, err
	}
	plan := template.BuildPlan(tree)
	fatal, warnings := template.Validate(tree, plan)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "plan warning: %v\n", w)
	}
	if len(fatal) > 0 {
		return nil, fatal[0]
	}
	return plan, nil
}

// needsRepair decides whether the lighter post-process pass left
// enough QA-visible deficiency for the repair stage to be worth
// running (§4.K is last-resort, not run unconditionally).
func needsRepair(m qa.Metrics) bool {
	return m.OverflowCount > 0 || m.TextOverlapPairs > 0 || m.NotesOverflow
}

func defaultOutputPath(configPath string) string {
	base := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
	return base + ".svg"
}

type combinedReport struct {
	File      string          `json:"file"`
	Score     int             `json:"score"`
	Timestamp string          `json:"timestamp"`
	Metrics   qa.Metrics      `json:"metrics"`
	Deductions []qa.Deduction `json:"deductions"`
	Details   reportDetails   `json:"details"`
	DFM       dfm.Report      `json:"dfm"`
	Repair    *repairSummary  `json:"repair,omitempty"`
}

type reportDetails struct {
	Overflows    []string `json:"overflows"`
	TextOverlaps []string `json:"text_overlaps"`
}

type repairSummary struct {
	NotesEmitted   int      `json:"notes_emitted"`
	NotesTruncated int      `json:"notes_truncated"`
	OverflowViews  int      `json:"overflow_views"`
	Risks          []string `json:"risks"`
}

func writeReport(configPath string, qaReport qa.Report, dfmReport dfm.Report, repairReport *repair.Report, overflows []qa.Overflow, textOverlaps []qa.TextOverlap) error {
	rep := combinedReport{
		File:       configPath,
		Score:      qaReport.Score,
		Timestamp:  reportTimestamp(),
		Metrics:    qaReport.Metrics,
		Deductions: qaReport.Deductions,
		DFM:        dfmReport,
	}
	for _, o := range overflows {
		rep.Details.Overflows = append(rep.Details.Overflows,
			fmt.Sprintf("%s/%s exceeds its cell by %.2fmm", o.View, o.Class, o.OverflowMM))
	}
	for i, t := range textOverlaps {
		if i >= 10 {
			break
		}
		rep.Details.TextOverlaps = append(rep.Details.TextOverlaps,
			fmt.Sprintf("%s <> %s (iou=%.2f, view=%s)", t.Text1, t.Text2, t.IoU, t.View))
	}
	if repairReport != nil {
		risks := make([]string, 0, len(repairReport.Risks))
		for _, r := range repairReport.Risks {
			risks = append(risks, fmt.Sprintf("%s: %s (%s)", r.Kind, r.Element, r.Detail))
		}
		rep.Repair = &repairSummary{
			NotesEmitted:   repairReport.NotesEmitted,
			NotesTruncated: repairReport.NotesTruncated,
			OverflowViews:  len(repairReport.Overflows),
			Risks:          risks,
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if *reportPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(*reportPath, data, 0644)
}

// reportTimestamp returns the current time in ISO8601, formatted as a
// function (not a package-level time.Now() call) so it's easy to stub
// in tests that exercise writeReport directly.
var reportTimestamp = func() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: drawgen -config <config.yaml> -kernel <scene.json> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'drawgen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("drawgen version %s\n\n", version)
	fmt.Println("Compiles a part/assembly config plus a kernel projection scene into an")
	fmt.Println("ISO/KS-compliant multi-view engineering drawing, with QA scoring and")
	fmt.Println("DFM analysis.")
	fmt.Println("\nUsage:")
	fmt.Println("  drawgen -config <config.yaml> -kernel <scene.json> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML part/assembly config file")
	fmt.Println("  -kernel string")
	fmt.Println("        Path to the JSON kernel projection output")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -templates string")
	fmt.Println("        Root directory holding configs/templates and configs/overrides/presets (default \".\")")
	fmt.Println("  -plan string")
	fmt.Println("        Path to an explicit TOML drawing plan, bypassing classify+template+merge")
	fmt.Println("  -no-plan")
	fmt.Println("        Ignore dim_intents and plan-driven dimensioning")
	fmt.Println("  -profile string")
	fmt.Println("        Stroke profile for post-processing and QA (default \"ks\")")
	fmt.Println("  -dry-run")
	fmt.Println("        Compute passes and reports without writing the SVG file")
	fmt.Println("  -output string")
	fmt.Println("        SVG output path (default: <config base name>.svg)")
	fmt.Println("  -report string")
	fmt.Println("        Path to write the combined QA+DFM JSON report (default: stdout)")
	fmt.Println("  -fail-under int")
	fmt.Println("        Exit non-zero if the QA score falls below this threshold (default -1, disabled)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  drawgen -config flange.yaml -kernel flange.scene.json")
	fmt.Println("  drawgen -config flange.yaml -kernel flange.scene.json -report qa.json -fail-under 70")
}

package stddata

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// TestGetFitClearance is spec.md §8 item 5 / §8 scenario S2.
func TestGetFitClearance(t *testing.T) {
	fit, err := GetFit(25, "H7", "g6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fit.FitType != FitClearance {
		t.Fatalf("expected clearance, got %v", fit.FitType)
	}
	if !almostEqual(fit.HoleUpper, 0.021) || !almostEqual(fit.HoleLower, 0.0) {
		t.Fatalf("hole deviations wrong: %+v", fit)
	}
	if !almostEqual(fit.ShaftUpper, -0.007) || !almostEqual(fit.ShaftLower, -0.020) {
		t.Fatalf("shaft deviations wrong: %+v", fit)
	}
	if !almostEqual(fit.ClearanceMin, 0.007) || !almostEqual(fit.ClearanceMax, 0.041) {
		t.Fatalf("clearance bounds wrong: %+v", fit)
	}
	// hole_upper - shaft_lower = clearance_max; hole_lower - shaft_upper = clearance_min
	if !almostEqual(fit.HoleUpper-fit.ShaftLower, fit.ClearanceMax) {
		t.Fatalf("clearance_max identity broken: %+v", fit)
	}
	if !almostEqual(fit.HoleLower-fit.ShaftUpper, fit.ClearanceMin) {
		t.Fatalf("clearance_min identity broken: %+v", fit)
	}
}

func TestGetFitInterference(t *testing.T) {
	fit, err := GetFit(20, "H7", "p6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fit.FitType != FitInterference {
		t.Fatalf("expected interference, got %v", fit.FitType)
	}
}

func TestFuzzyMatchDiameter(t *testing.T) {
	if got := FuzzyMatchDiameter(19.998, 0.05); got != 20 {
		t.Fatalf("got %v want 20", got)
	}
	if got := FuzzyMatchDiameter(24.97, 0.05); got != 25 {
		t.Fatalf("got %v want 25", got)
	}
}

func TestGetToleranceUnknownGrade(t *testing.T) {
	_, _, err := GetTolerance(25, "H99")
	if err == nil {
		t.Fatal("expected StandardLookupError for unknown grade")
	}
}

func TestGetToleranceUnknownLetter(t *testing.T) {
	_, _, err := GetTolerance(25, "Z7")
	if err == nil {
		t.Fatal("expected StandardLookupError for unknown letter")
	}
}

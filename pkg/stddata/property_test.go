package stddata

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

var (
	holeLetters  = []string{"H", "G", "F", "K", "N", "P"}
	shaftLetters = []string{"h", "g", "f", "e", "d", "k", "m", "n", "p", "s"}
	itGradeKeys  = []int{6, 7, 8, 9, 10, 11}
)

// TestPropertyToleranceUpperNeverBelowLower verifies §8 item 5: any
// valid ISO 286 spec produces an upper deviation at or above the lower
// deviation, for every diameter bin and every letter/grade this table
// supports.
func TestPropertyToleranceUpperNeverBelowLower(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		diameter := rapid.Float64Range(1, 500).Draw(rt, "diameter")
		letter := rapid.SampledFrom(append(append([]string{}, holeLetters...), shaftLetters...)).Draw(rt, "letter")
		grade := rapid.SampledFrom(itGradeKeys).Draw(rt, "grade")
		spec := fmt.Sprintf("%s%d", letter, grade)

		upper, lower, err := GetTolerance(diameter, spec)
		if err != nil {
			rt.Fatalf("GetTolerance(%v, %q): %v", diameter, spec, err)
		}
		if upper < lower {
			rt.Fatalf("spec %q at diameter %v: upper %v < lower %v", spec, diameter, upper, lower)
		}
	})
}

// TestPropertyFitClearanceBoundsOrdered verifies §8 item 6: for any
// nominal diameter and hole/shaft spec pair, GetFit's clearance window
// is never inverted, and the reported FitType agrees with the sign of
// that window.
func TestPropertyFitClearanceBoundsOrdered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		diameter := rapid.Float64Range(1, 500).Draw(rt, "diameter")
		holeLetter := rapid.SampledFrom(holeLetters).Draw(rt, "holeLetter")
		holeGrade := rapid.SampledFrom(itGradeKeys).Draw(rt, "holeGrade")
		shaftLetter := rapid.SampledFrom(shaftLetters).Draw(rt, "shaftLetter")
		shaftGrade := rapid.SampledFrom(itGradeKeys).Draw(rt, "shaftGrade")

		holeSpec := fmt.Sprintf("%s%d", holeLetter, holeGrade)
		shaftSpec := fmt.Sprintf("%s%d", shaftLetter, shaftGrade)

		fit, err := GetFit(diameter, holeSpec, shaftSpec)
		if err != nil {
			rt.Fatalf("GetFit(%v, %q, %q): %v", diameter, holeSpec, shaftSpec, err)
		}
		if fit.ClearanceMax < fit.ClearanceMin {
			rt.Fatalf("inverted clearance window: max %v < min %v", fit.ClearanceMax, fit.ClearanceMin)
		}

		switch {
		case fit.ClearanceMin > 0:
			if fit.FitType != FitClearance {
				rt.Fatalf("clearanceMin %v > 0 but FitType %v", fit.ClearanceMin, fit.FitType)
			}
		case fit.ClearanceMax < 0:
			if fit.FitType != FitInterference {
				rt.Fatalf("clearanceMax %v < 0 but FitType %v", fit.ClearanceMax, fit.FitType)
			}
		default:
			if fit.FitType != FitTransition {
				rt.Fatalf("straddling window [%v,%v] but FitType %v", fit.ClearanceMin, fit.ClearanceMax, fit.FitType)
			}
		}
	})
}

// TestPropertyFuzzyMatchDiameterSnapsExactStandardValues verifies §8
// item 5's snapping law: a measured diameter exactly on a standard
// value snaps to itself given any nonzero tolerance.
func TestPropertyFuzzyMatchDiameterSnapsExactStandardValues(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		want := rapid.SampledFrom(StandardDiameters).Draw(rt, "standard")
		tolerance := rapid.Float64Range(0.01, 5).Draw(rt, "tolerance")

		got := FuzzyMatchDiameter(want, tolerance)
		if got != want {
			rt.Fatalf("FuzzyMatchDiameter(%v, %v) = %v, want %v", want, tolerance, got, want)
		}
	})
}

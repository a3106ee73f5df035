// Package stddata embeds the ISO 286 tolerance tables, KS B 0401 fit
// data, and KS bolt-hole/surface-finish tables as immutable module-scope
// data (§4.F, §9 "global style tables"). Grounded numerically on
// original_source/scripts/_tolerance_db.py.
package stddata

import (
	"fmt"
	"strings"

	"github.com/drawforge/drawforge/pkg/config"
)

// DiameterRanges are the 13 ISO 286 diameter bins (mm), inclusive.
var DiameterRanges = [][2]float64{
	{1, 3}, {3, 6}, {6, 10}, {10, 18}, {18, 30},
	{30, 50}, {50, 80}, {80, 120}, {120, 180},
	{180, 250}, {250, 315}, {315, 400}, {400, 500},
}

// ITGrades maps grade -> per-bin tolerance in micrometers.
var ITGrades = map[int][]int{
	6:  {6, 8, 9, 11, 13, 16, 19, 22, 25, 29, 32, 36, 40},
	7:  {10, 12, 15, 18, 21, 25, 30, 35, 40, 46, 52, 57, 63},
	8:  {14, 18, 22, 27, 33, 39, 46, 54, 63, 72, 81, 89, 97},
	9:  {25, 30, 36, 43, 52, 62, 74, 87, 100, 115, 130, 140, 155},
	10: {40, 48, 58, 70, 84, 100, 120, 140, 160, 185, 210, 230, 250},
	11: {60, 75, 90, 110, 130, 160, 190, 220, 250, 290, 320, 360, 400},
}

// Shaft letters d..h carry fundamental deviation as the upper deviation
// (es); lower = es - IT.
var ShaftUpperDev = map[string][]int{
	"h": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"g": {-2, -4, -5, -6, -7, -9, -10, -12, -14, -15, -17, -18, -20},
	"f": {-6, -10, -13, -16, -20, -25, -30, -36, -43, -50, -56, -62, -68},
	"e": {-14, -20, -25, -32, -40, -50, -60, -72, -85, -100, -110, -125, -135},
	"d": {-20, -30, -40, -50, -65, -80, -100, -120, -145, -170, -190, -210, -230},
}

// Shaft letters k..s carry fundamental deviation as the lower deviation
// (ei); upper = ei + IT.
var ShaftLowerDev = map[string][]int{
	"k": {0, 1, 1, 1, 2, 2, 2, 3, 3, 4, 4, 4, 5},
	"m": {2, 4, 6, 7, 8, 9, 11, 13, 15, 17, 20, 21, 23},
	"n": {4, 8, 10, 12, 15, 17, 20, 23, 27, 31, 34, 37, 40},
	"p": {6, 12, 15, 18, 22, 26, 32, 37, 43, 50, 56, 62, 68},
	"s": {14, 19, 23, 28, 35, 43, 53, 59, 68, 79, 88, 98, 108},
}

// Hole letters F..H carry fundamental deviation as the lower deviation
// (EI); upper = EI + IT.
var HoleLowerDev = map[string][]int{
	"H": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"G": {2, 4, 5, 6, 7, 9, 10, 12, 14, 15, 17, 18, 20},
	"F": {6, 10, 13, 16, 20, 25, 30, 36, 43, 50, 56, 62, 68},
}

// Hole letters K..P carry fundamental deviation as the upper deviation
// (ES); lower = ES - IT.
var HoleUpperDev = map[string][]int{
	"K": {0, -1, -1, -1, -2, -2, -2, -3, -3, -4, -4, -4, -5},
	"N": {-4, -8, -10, -12, -15, -17, -20, -23, -27, -31, -34, -37, -40},
	"P": {-6, -12, -15, -18, -22, -26, -32, -37, -43, -50, -56, -62, -68},
}

// StandardDiameters are common nominal diameters (mm) used by
// FuzzyMatchDiameter.
var StandardDiameters = []float64{
	1, 1.5, 2, 2.5, 3, 4, 5, 6, 7, 8, 9, 10,
	12, 14, 15, 16, 18, 20, 22, 24, 25, 28, 30,
	32, 35, 36, 38, 40, 42, 45, 48, 50, 55, 56,
	60, 63, 65, 70, 71, 75, 80, 85, 90, 95, 100,
	105, 110, 115, 120, 125, 130, 140, 150, 160,
	170, 180, 190, 200, 220, 250, 280, 300, 315,
	350, 400, 450, 500,
}

func rangeIndex(d float64) int {
	for i, r := range DiameterRanges {
		if d >= r[0] && d <= r[1] {
			return i
		}
	}
	if d < DiameterRanges[0][0] {
		return 0
	}
	return len(DiameterRanges) - 1
}

// parseSpec splits "H7" or "g6" into (letter, grade).
func parseSpec(spec string) (string, int, error) {
	i := 0
	for i < len(spec) && !('0' <= spec[i] && spec[i] <= '9') {
		i++
	}
	letter, gradeStr := spec[:i], spec[i:]
	if gradeStr == "" {
		return "", 0, fmt.Errorf("malformed spec %q", spec)
	}
	var grade int
	if _, err := fmt.Sscanf(gradeStr, "%d", &grade); err != nil {
		return "", 0, fmt.Errorf("malformed grade in spec %q: %w", spec, err)
	}
	return letter, grade, nil
}

// GetTolerance returns (upper_mm, lower_mm) deviations from nominal for
// a diameter and spec string like "H7" or "g6".
func GetTolerance(diameter float64, spec string) (upper, lower float64, err error) {
	letter, grade, perr := parseSpec(spec)
	if perr != nil {
		return 0, 0, &config.StandardLookupError{Kind: "fit_letter", Value: spec}
	}
	idx := rangeIndex(diameter)

	itPerGrade, ok := ITGrades[grade]
	if !ok {
		return 0, 0, &config.StandardLookupError{Kind: "it_grade", Value: fmt.Sprintf("%d", grade)}
	}
	itVal := float64(itPerGrade[idx])

	isHole := letter == strings.ToUpper(letter) && letter != strings.ToLower(letter)

	switch {
	case isHole:
		switch {
		case letter == "JS":
			upper, lower = itVal/2, -itVal/2
		case hasDev(HoleLowerDev, letter):
			ei := float64(HoleLowerDev[letter][idx])
			lower = ei
			upper = ei + itVal
		case hasDev(HoleUpperDev, letter):
			es := float64(HoleUpperDev[letter][idx])
			upper = es
			lower = es - itVal
		default:
			return 0, 0, &config.StandardLookupError{Kind: "fit_letter", Value: spec}
		}
	default:
		switch {
		case letter == "js":
			upper, lower = itVal/2, -itVal/2
		case hasDev(ShaftUpperDev, letter):
			es := float64(ShaftUpperDev[letter][idx])
			upper = es
			lower = es - itVal
		case hasDev(ShaftLowerDev, letter):
			ei := float64(ShaftLowerDev[letter][idx])
			lower = ei
			upper = ei + itVal
		default:
			return 0, 0, &config.StandardLookupError{Kind: "fit_letter", Value: spec}
		}
	}

	return upper / 1000.0, lower / 1000.0, nil
}

func hasDev(m map[string][]int, letter string) bool {
	_, ok := m[letter]
	return ok
}

// FitType enumerates fit classifications.
type FitType string

const (
	FitClearance    FitType = "clearance"
	FitInterference FitType = "interference"
	FitTransition   FitType = "transition"
)

// Fit reports the computed fit characteristics of a hole/shaft pair.
type Fit struct {
	FitType     FitType
	ClearanceMin float64
	ClearanceMax float64
	HoleUpper    float64
	HoleLower    float64
	ShaftUpper   float64
	ShaftLower   float64
}

// GetFit computes the fit classification and clearance bounds for a
// nominal diameter and hole/shaft spec pair, e.g. GetFit(25, "H7", "g6").
func GetFit(diameter float64, holeSpec, shaftSpec string) (Fit, error) {
	hUpper, hLower, err := GetTolerance(diameter, holeSpec)
	if err != nil {
		return Fit{}, err
	}
	sUpper, sLower, err := GetTolerance(diameter, shaftSpec)
	if err != nil {
		return Fit{}, err
	}

	clearanceMax := hUpper - sLower
	clearanceMin := hLower - sUpper

	var ft FitType
	switch {
	case clearanceMin > 0:
		ft = FitClearance
	case clearanceMax < 0:
		ft = FitInterference
	default:
		ft = FitTransition
	}

	return Fit{
		FitType: ft,
		ClearanceMin: round4(clearanceMin), ClearanceMax: round4(clearanceMax),
		HoleUpper: round4(hUpper), HoleLower: round4(hLower),
		ShaftUpper: round4(sUpper), ShaftLower: round4(sLower),
	}, nil
}

func round4(v float64) float64 {
	const scale = 10000.0
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

// FuzzyMatchDiameter snaps a measured diameter to the nearest standard
// value within tolerance, falling back to the nearer of the nearest
// 0.5mm rounding, whichever is closer (§4.F).
func FuzzyMatchDiameter(measured float64, tolerance float64) float64 {
	roundHalf := float64(int64(measured*2+0.5)) / 2
	best := measured
	bestDiff := tolerance
	for _, s := range StandardDiameters {
		diff := abs(measured - s)
		if diff < bestDiff {
			best, bestDiff = s, diff
		}
	}
	if abs(measured-roundHalf) < bestDiff {
		best = roundHalf
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package stddata

import "github.com/drawforge/drawforge/pkg/config"

// BoltHoleSpec is one row of the KS B 1007-style clearance/counterbore
// table for a nominal bolt/screw size.
type BoltHoleSpec struct {
	BoltDia       float64 // nominal thread diameter, mm
	ClearanceFine float64 // "fine" clearance hole diameter
	ClearanceNorm float64 // "normal" clearance hole diameter
	ClearanceLoose float64
	CounterboreDia float64
	CounterboreDepth float64
}

// KSBoltHoleTable is keyed by nominal bolt diameter (mm).
var KSBoltHoleTable = map[float64]BoltHoleSpec{
	3:  {3, 3.2, 3.4, 3.6, 6.5, 3.3},
	4:  {4, 4.3, 4.5, 4.8, 8.0, 4.4},
	5:  {5, 5.3, 5.5, 5.8, 9.5, 5.4},
	6:  {6, 6.4, 6.6, 7.0, 11.0, 6.5},
	8:  {8, 8.4, 9.0, 10.0, 14.0, 8.6},
	10: {10, 10.5, 11.0, 12.0, 17.5, 10.7},
	12: {12, 13.0, 13.5, 14.5, 20.0, 12.8},
	16: {16, 17.0, 17.5, 18.5, 26.0, 16.8},
	20: {20, 21.0, 22.0, 24.0, 32.0, 21.0},
}

// NearestBoltHole returns the bolt-hole spec for the nearest standard
// bolt diameter to the requested size.
func NearestBoltHole(boltDia float64) (BoltHoleSpec, float64) {
	var best BoltHoleSpec
	bestDiff := -1.0
	bestDia := 0.0
	for d, spec := range KSBoltHoleTable {
		diff := abs(boltDia - d)
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff, bestDia = spec, diff, d
		}
	}
	return best, bestDia
}

// SurfaceFinishGrade is a KS/ISO 1302 roughness grade, slot label "a".
type SurfaceFinishGrade struct {
	Label string  // e.g. "N6"
	RaMax float64 // Ra, micrometers
}

// SurfaceFinishByProcess maps manufacturing process -> achievable
// roughness grades (coarsest to finest), used by DFM-07..09 tool
// constraints and by the surface-finish symbol default-value lookup.
var SurfaceFinishByProcess = map[string][]SurfaceFinishGrade{
	"machining": {
		{"N11", 50}, {"N9", 12.5}, {"N8", 6.3}, {"N7", 3.2}, {"N6", 1.6}, {"N5", 0.8},
	},
	"casting": {
		{"N11", 50}, {"N10", 25}, {"N9", 12.5},
	},
	"sheet_metal": {
		{"N9", 12.5}, {"N8", 6.3}, {"N7", 3.2},
	},
	"3d_printing": {
		{"N11", 50}, {"N10", 25}, {"N9", 12.5}, {"N8", 6.3},
	},
}

// DefaultSurfaceFinish returns the typical-grade Ra for a process, used
// as the drawing's default symbol value when no per-face override is
// given.
func DefaultSurfaceFinish(process string) float64 {
	grades, ok := SurfaceFinishByProcess[process]
	if !ok || len(grades) == 0 {
		return 6.3
	}
	return grades[len(grades)/2].RaMax
}

// GeneralToleranceGrade mirrors ISO 2768 / KS B 0412 general tolerances
// for un-dimensioned features, keyed by grade letter (f=fine, m=medium,
// c=coarse, v=very coarse) and diameter range index shared with
// DiameterRanges.
var GeneralToleranceGrade = map[string][]float64{
	"f": {0.05, 0.05, 0.1, 0.1, 0.15, 0.15, 0.2, 0.3, 0.3, 0.4, 0.4, 0.5, 0.5},
	"m": {0.1, 0.1, 0.2, 0.2, 0.3, 0.3, 0.5, 0.8, 0.8, 1.2, 1.2, 1.6, 2.0},
	"c": {0.2, 0.3, 0.5, 0.5, 0.8, 0.8, 1.2, 2.0, 2.0, 3.0, 3.0, 4.0, 5.0},
	"v": {0.5, 0.5, 1.0, 1.0, 1.5, 1.5, 2.5, 4.0, 4.0, 6.0, 6.0, 7.0, 8.0},
}

// GeneralTolerance returns the ISO 2768 general tolerance for a grade
// and diameter.
func GeneralTolerance(grade string, diameter float64) (float64, error) {
	table, ok := GeneralToleranceGrade[grade]
	if !ok {
		return 0, &config.StandardLookupError{Kind: "process", Value: grade}
	}
	return table[rangeIndex(diameter)], nil
}

// CenterDistanceGrade is a KS B 0420-style permissible center-distance
// tolerance band, keyed by grade for bolt-circle spacing checks.
var CenterDistanceGrade = map[string]float64{
	"precision": 0.05,
	"medium":    0.15,
	"coarse":    0.3,
}

package qa

// Deduction is one itemized score deduction.
type Deduction struct {
	Key    string `json:"key"`
	Amount int    `json:"amount"`
}

// Report is the full QA result: a 100-point score, the itemized
// deductions that produced it, and the raw metrics they were computed
// from.
type Report struct {
	Score      int         `json:"score"`
	Deductions []Deduction `json:"deductions"`
	Metrics    Metrics     `json:"metrics"`
}

// Score reduces Metrics to a 100-point score with itemized deductions,
// clamped to zero (§4.J).
func Score(m Metrics) Report {
	score := 100
	var deductions []Deduction

	deduct := func(key string, amount int) {
		if amount <= 0 {
			return
		}
		deductions = append(deductions, Deduction{Key: key, Amount: amount})
		score -= amount
	}

	deduct("iso_hidden_count", m.ISOHiddenCount*Weights["iso_hidden_count"])
	deduct("overflow_count", m.OverflowCount*Weights["overflow_count"])
	deduct("text_overlap_pairs", m.TextOverlapPairs*Weights["text_overlap_pairs"])
	deduct("dim_overlap_pairs", m.DimOverlapPairs*Weights["dim_overlap_pairs"])
	if m.NotesOverflow {
		deduct("notes_overflow", Weights["notes_overflow"])
	}
	deduct("gdt_unanchored", m.GDTUnanchored*Weights["gdt_unanchored"])
	if m.DenseISO {
		deduct("dense_iso", Weights["dense_iso"])
	}
	deduct("stroke_violations", m.StrokeViolations*Weights["stroke_violations"])

	floatPrecisionUnits := m.FloatPrecisionCount / 10
	if floatPrecisionUnits > 5 {
		floatPrecisionUnits = 5
	}
	deduct("float_precision", floatPrecisionUnits*Weights["float_precision"])

	if score < 0 {
		score = 0
	}
	return Report{Score: score, Deductions: deductions, Metrics: m}
}

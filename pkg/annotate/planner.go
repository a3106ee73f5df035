// Package annotate implements the AABB overlap-minimizing annotation
// placement planner (§4.C), picking least-overlap candidate positions
// the way an iterative force-directed placement loop would.
package annotate

import "github.com/drawforge/drawforge/pkg/geom"

// Planner accumulates placed annotation AABBs and helps pick low-overlap
// positions for new ones.
type Planner struct {
	boxes []geom.Box
}

// New returns an empty Planner.
func New() *Planner {
	return &Planner{}
}

// Register records an already-placed annotation box.
func (p *Planner) Register(b geom.Box) {
	p.boxes = append(p.boxes, b)
}

// OverlapScore returns the summed overlap area of b against every
// registered box.
func (p *Planner) OverlapScore(b geom.Box) float64 {
	total := 0.0
	for _, existing := range p.boxes {
		total += geom.OverlapArea(b, existing)
	}
	return total
}

// FindBestPosition scans candidates (top-left corners) in order and
// returns the first one that achieves zero overlap (short-circuit), or
// otherwise the minimum-overlap candidate. Ties resolve to the first
// scanned candidate, matching spec.md §4.C and the scenario in §8 (S4).
func (p *Planner) FindBestPosition(candidates []geom.Point, w, h float64) geom.Point {
	if len(candidates) == 0 {
		return geom.Point{}
	}
	best := candidates[0]
	bestScore := -1.0
	for _, c := range candidates {
		b := geom.NewBox(c.X, c.Y, c.X+w, c.Y+h)
		score := p.OverlapScore(b)
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = c
			if score == 0 {
				break
			}
		}
	}
	return best
}

// RegisterAndPick combines FindBestPosition and Register: it picks the
// winning candidate, records its box, and returns the chosen corner.
func (p *Planner) RegisterAndPick(candidates []geom.Point, w, h float64) geom.Point {
	best := p.FindBestPosition(candidates, w, h)
	p.Register(geom.NewBox(best.X, best.Y, best.X+w, best.Y+h))
	return best
}

// Boxes returns a copy of all currently registered boxes, for tests and
// diagnostics.
func (p *Planner) Boxes() []geom.Box {
	out := make([]geom.Box, len(p.boxes))
	copy(out, p.boxes)
	return out
}

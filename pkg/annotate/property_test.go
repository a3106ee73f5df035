package annotate

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/geom"
	"pgregory.net/rapid"
)

func drawBox(rt *rapid.T, label string) geom.Box {
	x0 := rapid.Float64Range(-200, 200).Draw(rt, label+"_x0")
	y0 := rapid.Float64Range(-200, 200).Draw(rt, label+"_y0")
	w := rapid.Float64Range(1, 40).Draw(rt, label+"_w")
	h := rapid.Float64Range(1, 40).Draw(rt, label+"_h")
	return geom.NewBox(x0, y0, x0+w, y0+h)
}

// TestPropertyFindBestPositionMinimizesOverlapScore verifies §8 item 9:
// for any set of already-registered boxes and any nonempty candidate
// list, the position FindBestPosition returns never scores worse than
// any other candidate in the list.
func TestPropertyFindBestPositionMinimizesOverlapScore(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := New()
		nRegistered := rapid.IntRange(0, 6).Draw(rt, "nRegistered")
		for i := 0; i < nRegistered; i++ {
			p.Register(drawBox(rt, "reg"))
		}

		nCandidates := rapid.IntRange(1, 6).Draw(rt, "nCandidates")
		candidates := make([]geom.Point, nCandidates)
		for i := 0; i < nCandidates; i++ {
			candidates[i] = geom.Point{
				X: rapid.Float64Range(-200, 200).Draw(rt, "cand_x"),
				Y: rapid.Float64Range(-200, 200).Draw(rt, "cand_y"),
			}
		}
		w := rapid.Float64Range(1, 40).Draw(rt, "w")
		h := rapid.Float64Range(1, 40).Draw(rt, "h")

		chosen := p.FindBestPosition(candidates, w, h)
		chosenScore := p.OverlapScore(geom.NewBox(chosen.X, chosen.Y, chosen.X+w, chosen.Y+h))

		for _, c := range candidates {
			score := p.OverlapScore(geom.NewBox(c.X, c.Y, c.X+w, c.Y+h))
			if chosenScore > score {
				rt.Fatalf("chosen %+v scored %v, worse than candidate %+v scored %v", chosen, chosenScore, c, score)
			}
		}
	})
}

// TestPropertyFindBestPositionPrefersFirstZeroOverlapCandidate verifies
// the tie-break law of §8 item 9: when a later candidate achieves zero
// overlap after earlier candidates also land clear, the first clear
// candidate wins, not a later one.
func TestPropertyFindBestPositionPrefersFirstZeroOverlapCandidate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := New()
		p.Register(geom.NewBox(0, 0, 10, 10))

		// Two candidates far from the registered box and from each
		// other, both guaranteed zero overlap.
		first := geom.Point{X: 100, Y: 100}
		second := geom.Point{X: 200, Y: 200}
		w := rapid.Float64Range(1, 5).Draw(rt, "w")
		h := rapid.Float64Range(1, 5).Draw(rt, "h")

		chosen := p.FindBestPosition([]geom.Point{first, second}, w, h)
		if chosen != first {
			rt.Fatalf("expected the first zero-overlap candidate %+v to win, got %+v", first, chosen)
		}
	})
}

package annotate

import (
	"testing"

	"github.com/drawforge/drawforge/pkg/geom"
)

// TestFindBestPositionZeroOverlap is scenario S4 from spec.md §8: one
// registered box (0,0,10,10); candidates [(5,5),(20,20),(0,0)] with a
// 5x5 probe box should pick (20,20), the first zero-overlap candidate.
func TestFindBestPositionZeroOverlap(t *testing.T) {
	p := New()
	p.Register(geom.NewBox(0, 0, 10, 10))

	candidates := []geom.Point{{5, 5}, {20, 20}, {0, 0}}
	got := p.FindBestPosition(candidates, 5, 5)
	want := geom.Point{X: 20, Y: 20}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestFindBestPositionMinOverlap(t *testing.T) {
	p := New()
	p.Register(geom.NewBox(0, 0, 10, 10))
	p.Register(geom.NewBox(0, 0, 10, 10)) // doubled overlap weight irrelevant, still same area

	// Both candidates overlap; (0,0) and (1,0) have identical overlap
	// area against a 10x10 box with a 10x10 probe placed fully inside
	// either way is degenerate, so use distinguishable candidates.
	candidates := []geom.Point{{8, 0}, {2, 0}}
	got := p.FindBestPosition(candidates, 5, 5)
	// (8,0)-(13,5) overlaps box by 2*5=10; (2,0)-(7,5) overlaps by 5*5=25.
	want := geom.Point{X: 8, Y: 0}
	if got != want {
		t.Fatalf("got %+v want %+v (min overlap)", got, want)
	}
}

func TestRegisterAndPickAccumulates(t *testing.T) {
	p := New()
	first := p.RegisterAndPick([]geom.Point{{0, 0}}, 10, 10)
	if first != (geom.Point{0, 0}) {
		t.Fatalf("unexpected first pick: %+v", first)
	}
	// Second placement request at the same spot should now see overlap
	// and prefer a non-overlapping neighbor.
	second := p.FindBestPosition([]geom.Point{{0, 0}, {50, 50}}, 10, 10)
	if second != (geom.Point{50, 50}) {
		t.Fatalf("expected planner to avoid first box, got %+v", second)
	}
}

func TestOverlapScoreEmpty(t *testing.T) {
	p := New()
	if got := p.OverlapScore(geom.NewBox(0, 0, 1, 1)); got != 0 {
		t.Fatalf("expected 0 overlap with no registrations, got %v", got)
	}
}

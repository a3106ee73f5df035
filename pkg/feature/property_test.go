package feature

import (
	"fmt"
	"math"
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
	"pgregory.net/rapid"
)

// TestPropertyBoltCircleDetectionForAnyEquallySpacedRing verifies §8
// item 4: any ring of 3 or more same-diameter holes, equally spaced
// around a common center, is detected as a bolt circle whose count
// matches the ring size and whose PCD matches twice the ring radius.
func TestPropertyBoltCircleDetectionForAnyEquallySpacedRing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(3, 8).Draw(rt, "n")
		ringRadius := rapid.Float64Range(20, 150).Draw(rt, "ringRadius")
		holeRadius := rapid.Float64Range(1, 6).Draw(rt, "holeRadius")
		startAngle := rapid.Float64Range(0, 2*math.Pi).Draw(rt, "startAngle")

		bodyRadius := ringRadius + holeRadius + 20

		cfg := &config.Config{
			Shapes: []config.Shape{
				{ID: "body", Type: "cylinder", Radius: bodyRadius, Length: 10},
			},
		}
		for i := 0; i < n; i++ {
			angle := startAngle + float64(i)*2*math.Pi/float64(n)
			id := fmt.Sprintf("hole%d", i)
			cfg.Shapes = append(cfg.Shapes, config.Shape{
				ID: id, Type: "cylinder", Radius: holeRadius, Length: 10,
				Position: [3]float64{ringRadius * math.Cos(angle), ringRadius * math.Sin(angle), 0},
			})
			cfg.Operations = append(cfg.Operations, config.Operation{
				Type: "cut", Base: "body", Tool: id, Result: fmt.Sprintf("r%d", i),
			})
		}

		g, err := Infer(cfg)
		if err != nil {
			rt.Fatalf("Infer: %v", err)
		}

		var found *config.FeatureGroup
		for _, grp := range g.Groups() {
			if grp.Pattern == config.PatternBoltCircle && len(grp.MemberIDs) == n {
				grp := grp
				found = &grp
			}
		}
		if found == nil {
			rt.Fatalf("expected a bolt circle of %d holes at radius %.3f, groups: %+v", n, ringRadius, g.Groups())
		}

		wantPCD := ringRadius * 2
		if diff := math.Abs(found.PCD - wantPCD); diff > 0.1*wantPCD+0.5 {
			rt.Fatalf("bolt circle PCD %.2f too far from expected %.2f", found.PCD, wantPCD)
		}
	})
}

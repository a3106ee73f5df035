package feature

import (
	"math"
	"sort"

	"github.com/drawforge/drawforge/pkg/config"
)

// detectPatterns groups same-diameter hole features into bolt-circle
// or general hole-pattern groups, and links counterbore sets to the
// bolt circle their parent holes belong to (§4.B).
func detectPatterns(g *Graph) {
	byDiameter := map[float64][]config.Feature{}
	var order []float64
	for _, f := range g.features {
		if f.Kind != config.FeatHole {
			continue
		}
		d := snapDiameter(f.Diameter)
		if _, seen := byDiameter[d]; !seen {
			order = append(order, d)
		}
		byDiameter[d] = append(byDiameter[d], f)
	}
	sort.Float64s(order)

	boltCircleMembers := map[string]bool{}

	for _, d := range order {
		members := byDiameter[d]
		if len(members) < 3 {
			continue
		}

		cx, cy := 0.0, 0.0
		for _, f := range members {
			cx += f.Position[0]
			cy += f.Position[1]
		}
		n := float64(len(members))
		cx /= n
		cy /= n

		radii := make([]float64, len(members))
		avgR := 0.0
		for i, f := range members {
			radii[i] = math.Hypot(f.Position[0]-cx, f.Position[1]-cy)
			avgR += radii[i]
		}
		avgR /= n
		if avgR < 1.0 {
			continue
		}

		within5pct := true
		for _, r := range radii {
			if math.Abs(r-avgR) > 0.05*avgR {
				within5pct = false
				break
			}
		}
		if !within5pct {
			continue
		}

		angles := make([]float64, len(members))
		for i, f := range members {
			angles[i] = math.Atan2(f.Position[1]-cy, f.Position[0]-cx)
			if angles[i] < 0 {
				angles[i] += 2 * math.Pi
			}
		}
		sort.Float64s(angles)

		expected := 2 * math.Pi / n
		equalSpacing := true
		for i := 0; i < len(angles); i++ {
			next := angles[(i+1)%len(angles)]
			gap := next - angles[i]
			if i == len(angles)-1 {
				gap += 2 * math.Pi
			}
			if math.Abs(gap-expected) > 0.15*expected {
				equalSpacing = false
				break
			}
		}

		ids := memberIDs(members)
		pattern := config.PatternHolePattern
		pcd := 0.0
		if equalSpacing {
			pattern = config.PatternBoltCircle
			pcd = round1(avgR * 2)
			for _, id := range ids {
				boltCircleMembers[id] = true
			}
		}

		g.addGroup(config.FeatureGroup{
			Pattern:   pattern,
			MemberIDs: ids,
			Center:    [3]float64{cx, cy, members[0].Position[2]},
			PCD:       pcd,
			Axis:      [3]float64{0, 0, 1},
			Count:     len(members),
		})
	}

	detectCounterboreSets(g, boltCircleMembers)
}

// detectCounterboreSets groups counterbores whose parent hole belongs
// to a detected bolt circle into a counterbore_set group.
func detectCounterboreSets(g *Graph, boltCircleMembers map[string]bool) {
	var members []config.Feature
	for _, f := range g.features {
		if f.Kind == config.FeatCounterbore && f.ParentID != "" && boltCircleMembers[f.ParentID] {
			members = append(members, f)
		}
	}
	if len(members) < 3 {
		return
	}

	cx, cy, cz := 0.0, 0.0, 0.0
	for _, f := range members {
		cx += f.Position[0]
		cy += f.Position[1]
		cz += f.Position[2]
	}
	n := float64(len(members))

	g.addGroup(config.FeatureGroup{
		Pattern:   config.PatternCounterboreSet,
		MemberIDs: memberIDs(members),
		Center:    [3]float64{cx / n, cy / n, cz / n},
		Axis:      [3]float64{0, 0, 1},
		Count:     len(members),
	})
}

func memberIDs(fs []config.Feature) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID
	}
	return ids
}

func snapDiameter(d float64) float64 {
	return math.Round(d*2) / 2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

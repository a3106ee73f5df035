// Package feature classifies primitives and operations into typed
// features (holes, bores, counterbores, bolt circles, threads,
// chamfers, fillets) and groups them into patterns (§4.B), using a
// map-keyed graph container to accumulate them.
package feature

import "github.com/drawforge/drawforge/pkg/config"

// Graph is the complete set of inferred features and detected groups
// for one part.
type Graph struct {
	features []config.Feature
	byID     map[string]*config.Feature
	groups   []config.FeatureGroup
}

func newGraph() *Graph {
	return &Graph{byID: make(map[string]*config.Feature)}
}

func (g *Graph) add(f config.Feature) *config.Feature {
	g.features = append(g.features, f)
	ptr := &g.features[len(g.features)-1]
	g.byID[f.ID] = ptr
	return ptr
}

// Get returns the feature with the given id, or nil.
func (g *Graph) Get(id string) *config.Feature {
	return g.byID[id]
}

// ByType returns all features of a given kind, in insertion order.
func (g *Graph) ByType(kind config.FeatureKind) []config.Feature {
	out := make([]config.Feature, 0)
	for _, f := range g.features {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// All returns every inferred feature, in insertion order.
func (g *Graph) All() []config.Feature {
	out := make([]config.Feature, len(g.features))
	copy(out, g.features)
	return out
}

// Groups returns every detected feature group.
func (g *Graph) Groups() []config.FeatureGroup {
	out := make([]config.FeatureGroup, len(g.groups))
	copy(out, g.groups)
	return out
}

func (g *Graph) addGroup(fg config.FeatureGroup) {
	g.groups = append(g.groups, fg)
}

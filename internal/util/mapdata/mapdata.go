package mapdata

import (
	"github.com/paulmach/orb"
)

// MapData is the street data around a start point, as returned by the map data service.
type MapData struct {
	Nodes    []Node    `json:"nodes"`
	Ways     []Way     `json:"ways"`
	Features []Feature `json:"features,omitempty"`
}

type Node struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (n Node) Point() orb.Point {
	return orb.Point{n.Lon, n.Lat}
}

type Way struct {
	ID    int64             `json:"id"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags,omitempty"`
}

type FeatureKind string

const (
	FeatureNature    FeatureKind = "nature"
	FeatureTourism   FeatureKind = "tourism"
	FeatureViewpoint FeatureKind = "viewpoint"
)

// A Feature is either a point of interest or a closed area.
// Ring is empty for point features.
type Feature struct {
	Kind  FeatureKind `json:"kind"`
	Point orb.Point   `json:"point"`
	Ring  orb.Ring    `json:"ring,omitempty"`
}

func (f Feature) IsArea() bool {
	return len(f.Ring) >= 4
}

// Feature lists by kind
func (m *MapData) FeaturesOf(kind FeatureKind) []Feature {
	features := make([]Feature, 0)
	for _, f := range m.Features {
		if f.Kind == kind {
			features = append(features, f)
		}
	}
	return features
}

// Excluded values of the highway tag for a walkable network
var excludedHighway = map[string]bool{
	"abandoned":    true,
	"construction": true,
	"no":           true,
	"planned":      true,
	"platform":     true,
	"proposed":     true,
	"raceway":      true,
	"razed":        true,
}

// Walkable reports whether a way belongs to the route network.
func (w Way) Walkable() bool {
	highway, ok := w.Tags["highway"]
	if !ok || excludedHighway[highway] {
		return false
	}
	if w.Tags["area"] == "yes" || w.Tags["service"] == "private" || w.Tags["access"] == "private" {
		return false
	}
	return len(w.Nodes) >= 2
}

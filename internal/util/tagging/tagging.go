// Package tagging annotates network edges with the attributes that routing
// preferences act on: surface, lighting, closeness to nature and points of interest.
package tagging

import (
	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

var trailHighways = map[string]bool{
	"path":  true,
	"track": true,
}

var trailSurfaces = map[string]bool{
	"fine_gravel": true,
	"gravel":      true,
	"ground":      true,
	"dirt":        true,
	"grass":       true,
}

// Surface classifies a way as trail or road from its tags.
func Surface(tags map[string]string) graph.Surface {
	if trailHighways[tags["highway"]] || trailSurfaces[tags["surface"]] {
		return graph.SurfaceTrail
	}
	return graph.SurfaceRoad
}

func Lit(tags map[string]string) bool {
	return tags["lit"] == "yes"
}

// ApplyWayTags sets surface and lighting on every edge from the tags of its way.
func ApplyWayTags(n *graph.Network) {
	n.Edges(func(e *graph.Edge) {
		e.Surface = Surface(e.WayTags)
		e.Lit = Lit(e.WayTags)
	})
}

// Apply runs every tagger that the map data has input for.
func Apply(n *graph.Network, data *mapdata.MapData) {
	ApplyWayTags(n)

	nature := make([]mapdata.Feature, 0)
	for _, f := range data.FeaturesOf(mapdata.FeatureNature) {
		if f.IsArea() {
			nature = append(nature, f)
		}
	}
	MarkNature(n, nature, NatureBuffer)

	MarkNearest(n, featurePoints(data.FeaturesOf(mapdata.FeatureTourism)), func(e *graph.Edge) { e.Tourism = true })
	MarkNearest(n, featurePoints(data.FeaturesOf(mapdata.FeatureViewpoint)), func(e *graph.Edge) { e.Viewpoint = true })
}

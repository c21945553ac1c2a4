package mapdata

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"

	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

// A tag selector, matched against ways and nodes
type selector struct {
	key    string
	values []string
}

func (s selector) filter() string {
	if len(s.values) == 1 {
		return fmt.Sprintf(`["%s"="%s"]`, s.key, s.values[0])
	}
	return fmt.Sprintf(`["%s"~"^(%s)$"]`, s.key, strings.Join(s.values, "|"))
}

func (s selector) matches(tags osm.Tags) bool {
	value := tags.Find(s.key)
	for _, v := range s.values {
		if value == v {
			return true
		}
	}
	return false
}

type featureQuery struct {
	kind      mapdata.FeatureKind
	selectors []selector
	nodes     bool // also select tagged nodes, not just ways
}

var featureQueries = []featureQuery{
	{
		kind: mapdata.FeatureNature,
		selectors: []selector{
			{"leisure", []string{"park"}},
			{"natural", []string{"wood"}},
			{"landuse", []string{"farmland"}},
		},
	},
	{
		kind: mapdata.FeatureTourism,
		selectors: []selector{
			{"tourism", []string{"artwork", "attraction"}},
			{"memorial", []string{"statue"}},
		},
		nodes: true,
	},
	{
		kind:      mapdata.FeatureViewpoint,
		selectors: []selector{{"tourism", []string{"viewpoint"}}},
		nodes:     true,
	},
}

func around(lat, lon, radius float64) string {
	return fmt.Sprintf("(around:%f,%f,%f)", radius, lat, lon)
}

// The street query: every way with a highway tag, and its nodes
func wayQuery(lat, lon, radius float64) string {
	return "[out:xml][timeout:60];(way" + around(lat, lon, radius) + "[highway];>;);out body;"
}

func (q featureQuery) query(lat, lon, radius float64) string {
	var b strings.Builder
	b.WriteString("[out:xml][timeout:60];(")
	for _, s := range q.selectors {
		b.WriteString("way" + around(lat, lon, radius) + s.filter() + ";")
		if q.nodes {
			b.WriteString("node" + around(lat, lon, radius) + s.filter() + ";")
		}
	}
	b.WriteString(">;);out body;")
	return b.String()
}

func (q featureQuery) matches(tags osm.Tags) bool {
	for _, s := range q.selectors {
		if s.matches(tags) {
			return true
		}
	}
	return false
}

// streetsFromOSM keeps every way and the nodes the response carried, in response order.
func streetsFromOSM(o *osm.OSM) ([]mapdata.Node, []mapdata.Way) {
	nodes := make([]mapdata.Node, 0, len(o.Nodes))
	for _, n := range o.Nodes {
		nodes = append(nodes, mapdata.Node{ID: int64(n.ID), Lat: n.Lat, Lon: n.Lon})
	}

	ways := make([]mapdata.Way, 0, len(o.Ways))
	for _, w := range o.Ways {
		ids := make([]int64, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = int64(wn.ID)
		}
		ways = append(ways, mapdata.Way{ID: int64(w.ID), Nodes: ids, Tags: w.TagMap()})
	}
	return nodes, ways
}

// featuresFromOSM turns tagged nodes into point features and tagged ways into
// areas (closed ways) or points at their centroid.
func (q featureQuery) featuresFromOSM(o *osm.OSM) []mapdata.Feature {
	points := make(map[osm.NodeID]orb.Point, len(o.Nodes))
	features := make([]mapdata.Feature, 0)

	for _, n := range o.Nodes {
		points[n.ID] = n.Point()
		if q.nodes && q.matches(n.Tags) {
			features = append(features, mapdata.Feature{Kind: q.kind, Point: n.Point()})
		}
	}

	for _, w := range o.Ways {
		if !q.matches(w.Tags) {
			continue
		}

		ring := make(orb.Ring, 0, len(w.Nodes))
		for _, wn := range w.Nodes {
			if p, ok := points[wn.ID]; ok {
				ring = append(ring, p)
			}
		}
		if len(ring) == 0 {
			continue
		}

		f := mapdata.Feature{Kind: q.kind}
		if len(ring) >= 4 && ring.Closed() {
			f.Ring = ring
			f.Point, _ = planar.CentroidArea(ring)
		} else {
			f.Point, _ = planar.CentroidArea(orb.MultiPoint(ring))
		}
		features = append(features, f)
	}

	return features
}

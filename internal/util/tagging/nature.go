package tagging

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

// NatureBuffer is how close (in meters) an edge must pass to a park, wood or
// farmland to count as near nature.
const NatureBuffer = 15.0

type area struct {
	bound  orb.Bound // padded, in degrees
	ring   orb.Ring  // mercator
	buffer float64   // buffer in mercator units at this latitude
}

// MarkNature flags every edge whose geometry lies within buffer meters of a
// nature area, or inside one.
func MarkNature(n *graph.Network, features []mapdata.Feature, buffer float64) {
	if len(features) == 0 {
		return
	}

	areas := make([]area, 0, len(features))
	for _, f := range features {
		bound := f.Ring.Bound()
		areas = append(areas, area{
			bound:  geo.BoundPad(bound, buffer),
			ring:   project.Ring(f.Ring.Clone(), project.WGS84.ToMercator),
			buffer: buffer * project.MercatorScaleFactor(bound.Center()),
		})
	}

	n.Edges(func(e *graph.Edge) {
		if len(e.Geometry) == 0 {
			return
		}
		edgeBound := e.Geometry.Bound()
		var line orb.LineString
		for _, a := range areas {
			if !a.bound.Intersects(edgeBound) {
				continue
			}
			if line == nil {
				line = project.LineString(e.Geometry.Clone(), project.WGS84.ToMercator)
			}
			if a.near(line) {
				e.Nature = true
				return
			}
		}
	})
}

func (a area) near(line orb.LineString) bool {
	for _, p := range line {
		if planar.RingContains(a.ring, p) {
			return true
		}
	}
	return lineDistance(line, orb.LineString(a.ring)) <= a.buffer
}

// lineDistance is the smallest distance between any two segments of the lines.
func lineDistance(a, b orb.LineString) float64 {
	best := math.Inf(1)
	if len(a) == 1 {
		return planar.DistanceFrom(b, a[0])
	}
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			d := segmentDistance(a[i], a[i+1], b[j], b[j+1])
			if d < best {
				best = d
			}
		}
	}
	return best
}

func segmentDistance(a1, a2, b1, b2 orb.Point) float64 {
	if segmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	return math.Min(
		math.Min(planar.DistanceFromSegment(a1, a2, b1), planar.DistanceFromSegment(a1, a2, b2)),
		math.Min(planar.DistanceFromSegment(b1, b2, a1), planar.DistanceFromSegment(b1, b2, a2)),
	)
}

func orientation(p, q, r orb.Point) float64 {
	return (q[0]-p[0])*(r[1]-p[1]) - (q[1]-p[1])*(r[0]-p[0])
}

// Proper crossings only, touching segments are caught by the distance check.
func segmentsIntersect(a1, a2, b1, b2 orb.Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

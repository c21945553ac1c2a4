package routegen

import (
	"encoding/json"
	"math"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// A Route is a final route that can be shown to the user
type Route struct {
	// Coordinates is a list of [lat, lon] pairs along the route
	Coordinates [][]float64     `json:"route"`
	GeoJSON     json.RawMessage `json:"geojson,omitempty"`

	Length    float64 `json:"length"`
	Elevation float64 `json:"elevation"`
	Stats     Stats   `json:"stats"`

	ElevationProfile []ProfilePoint `json:"elevationOfRoute"`

	Fallback  bool   `json:"fallback"`
	RequestID string `json:"request_id,omitempty"`
}

type Stats struct {
	Length    float64 `json:"length"`
	Deviation float64 `json:"length_deviation"`

	// Fractions of the route length
	Repetition float64 `json:"repetition"`
	Road       float64 `json:"road"`
	Trail      float64 `json:"trail"`
	Nature     float64 `json:"nature"`
	Lighting   float64 `json:"lighting"`

	// Cumulative climb in meters
	Elevation float64 `json:"elevation"`

	Viewpoints int `json:"viewpoint"`
	Tourism    int `json:"tourism"`
}

type ProfilePoint struct {
	Length    float64  `json:"length"`
	Elevation *float64 `json:"elevation"`
}

// RouteCoordinates follows the canonical edge geometry between consecutive
// nodes. A point shared by two edges appears once.
func RouteCoordinates(n *graph.Network, route []graph.NodeID) orb.LineString {
	line := orb.LineString{}
	if len(route) == 1 {
		if node, ok := n.Node(route[0]); ok {
			line = append(line, node.Point)
		}
		return line
	}

	for i := 0; i+1 < len(route); i++ {
		e := n.CanonicalEdge(route[i], route[i+1])
		if e == nil {
			continue
		}

		points := e.Geometry
		if len(points) == 0 {
			from, _ := n.Node(e.From)
			to, _ := n.Node(e.To)
			points = orb.LineString{from.Point, to.Point}
		}
		if len(line) > 0 && points[0] == line[len(line)-1] {
			points = points[1:]
		}
		line = append(line, points...)
	}
	return line
}

// Stats of a route, using the shortest edge between consecutive nodes.
func RouteStats(n *graph.Network, route []graph.NodeID, target float64) Stats {
	var (
		s        Stats
		repeated float64
		road     float64
		trail    float64
		nature   float64
		lit      float64
		visited  = make(map[step]bool)
	)

	for i := 0; i+1 < len(route); i++ {
		e := n.ShortestEdge(route[i], route[i+1])
		if e == nil {
			continue
		}
		s.Length += e.Length

		if e.HasGradient && e.Rise > 0 {
			s.Elevation += e.Rise
		}

		if e.Surface == graph.SurfaceRoad {
			road += e.Length
		} else {
			trail += e.Length
		}
		if e.Nature {
			nature += e.Length
		}
		if e.Lit {
			lit += e.Length
		}

		forward, backward := step{e.From, e.To}, step{e.To, e.From}
		seen := visited[forward] || visited[backward]
		if !seen {
			if e.Viewpoint {
				s.Viewpoints++
			}
			if e.Tourism {
				s.Tourism++
			}
			visited[forward] = true
		} else {
			repeated += e.Length
		}
	}

	s.Deviation = math.Abs(s.Length - target)
	if s.Length > 0 {
		s.Repetition = repeated / s.Length
		s.Road = road / s.Length
		s.Trail = trail / s.Length
		s.Nature = nature / s.Length
		s.Lighting = lit / s.Length
	}
	return s
}

// ElevationProfile lists the elevation at each node against the distance
// covered so far, along canonical edges. Nodes without elevation data have a nil elevation.
func ElevationProfile(n *graph.Network, route []graph.NodeID) []ProfilePoint {
	profile := make([]ProfilePoint, 0, len(route))
	total := 0.0
	for i, id := range route {
		if i > 0 {
			if e := n.CanonicalEdge(route[i-1], id); e != nil {
				total += e.Length
			}
		}

		point := ProfilePoint{Length: total}
		if node, ok := n.Node(id); ok && node.HasElevation {
			elevation := node.Elevation
			point.Elevation = &elevation
		}
		profile = append(profile, point)
	}
	return profile
}

// AssembleRoute turns a node sequence into the route shown to the user.
func AssembleRoute(n *graph.Network, route []graph.NodeID, target float64) (Route, error) {
	line := RouteCoordinates(n, route)

	coordinates := make([][]float64, len(line))
	lonLat := make([][]float64, len(line))
	for i, p := range line {
		coordinates[i] = []float64{p.Lat(), p.Lon()}
		lonLat[i] = []float64{p.Lon(), p.Lat()}
	}

	geometry, err := geojson.NewLineStringGeometry(lonLat).MarshalJSON()
	if err != nil {
		return Route{}, err
	}

	stats := RouteStats(n, route, target)
	return Route{
		Coordinates:      coordinates,
		GeoJSON:          geometry,
		Length:           stats.Length,
		Elevation:        stats.Elevation,
		Stats:            stats,
		ElevationProfile: ElevationProfile(n, route),
	}, nil
}

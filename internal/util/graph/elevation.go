package graph

import (
	"math"
	"sort"
)

type ElevationBucket int

const (
	ElevationUnknown ElevationBucket = iota // No gradient data, neutral for routing
	ElevationFlat
	ElevationModerate
	ElevationHilly
)

func (b ElevationBucket) String() string {
	switch b {
	case ElevationFlat:
		return "flat"
	case ElevationModerate:
		return "moderate"
	case ElevationHilly:
		return "hilly"
	}
	return "unknown"
}

// SetElevation records an elevation sample for a node.
func (n *Network) SetElevation(id NodeID, meters float64) {
	if node, ok := n.Node(id); ok {
		node.Elevation = meters
		node.HasElevation = true
	}
}

// AssignGrades computes rise and gradient magnitude for every edge whose
// two endpoints have an elevation sample. Zero length edges get a gradient of 0.
func (n *Network) AssignGrades() {
	n.Edges(func(e *Edge) {
		from, _ := n.Node(e.From)
		to, _ := n.Node(e.To)
		if !from.HasElevation || !to.HasElevation {
			return
		}
		e.Rise = to.Elevation - from.Elevation
		e.Gradient = 0
		if e.Length > 0 {
			e.Gradient = math.Abs(e.Rise) / e.Length
		}
		e.HasGradient = true
	})
}

// AssignElevationBuckets tags every edge with gradient data as flat, moderate
// or hilly, split at the 33rd and 66th percentile of all gradients.
// The buckets are computed once; later calls keep the first assignment.
func (n *Network) AssignElevationBuckets() {
	if n.bucketsAssigned {
		return
	}

	grades := make([]float64, 0, n.edgeCount)
	n.Edges(func(e *Edge) {
		if e.HasGradient {
			grades = append(grades, e.Gradient)
		}
	})
	if len(grades) == 0 {
		return
	}
	n.bucketsAssigned = true

	sort.Float64s(grades)
	p33 := percentile(grades, 33)
	p66 := percentile(grades, 66)

	n.Edges(func(e *Edge) {
		if !e.HasGradient {
			return
		}
		switch {
		case e.Gradient <= p33:
			e.Elevation = ElevationFlat
		case e.Gradient <= p66:
			e.Elevation = ElevationModerate
		default:
			e.Elevation = ElevationHilly
		}
	})
}

// percentile of already sorted values, interpolating linearly between ranks
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

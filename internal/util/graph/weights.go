package graph

import (
	"math"
	"strings"
)

// Preference slots
const (
	FavorHilly = iota
	FavorFlat
	FavorRoad
	FavorTrail
	FavorNature
	FavorLighting
	FavorTourism
	FavorViewpoint

	PreferenceCount
)

// Preferences holds a non-negative weight per preference slot (0 or 1 in practice).
type Preferences [PreferenceCount]float64

// HillyMode selects the multipliers used for hilly edges.
type HillyMode int

const (
	// HillyObserved reproduces the deployed behaviour: the favor-flat slot is
	// discounted and the favor-hilly slot stays neutral.
	HillyObserved HillyMode = iota
	// HillySymmetric inverts the flat multipliers.
	HillySymmetric
)

func ParseHillyMode(s string) HillyMode {
	if strings.EqualFold(strings.TrimSpace(s), "symmetric") {
		return HillySymmetric
	}
	return HillyObserved
}

func (m HillyMode) String() string {
	if m == HillySymmetric {
		return "symmetric"
	}
	return "observed"
}

const (
	discount = 0.7
	penalty  = 1.3
)

// Multipliers returns the per-slot attribute multipliers for an edge.
// Tourism and viewpoint slots are always neutral here.
func Multipliers(e *Edge, mode HillyMode) [PreferenceCount]float64 {
	m := [PreferenceCount]float64{1, 1, 1, 1, 1, 1, 1, 1}

	switch e.Elevation {
	case ElevationFlat:
		m[FavorHilly] = discount
		m[FavorFlat] = penalty
	case ElevationHilly:
		if mode == HillySymmetric {
			m[FavorHilly] = penalty
		}
		m[FavorFlat] = discount
	}

	if e.Surface == SurfaceRoad {
		m[FavorRoad] = discount
	} else {
		m[FavorTrail] = discount
	}
	if e.Nature {
		m[FavorNature] = discount
	}
	if e.Lit {
		m[FavorLighting] = discount
	}

	return m
}

// RoutingCost is length * prod(multiplier[i] ^ preference[i]).
// A zero length edge costs nothing whatever its tags.
func RoutingCost(e *Edge, prefs Preferences, mode HillyMode) float64 {
	if e.Length <= 0 {
		return 0
	}
	m := Multipliers(e, mode)
	cost := e.Length
	for i := range m {
		cost *= math.Pow(m[i], prefs[i])
	}
	return cost
}

// AdditiveCost is an alternate weighting, length * max(1, sum(preference[i] * value[i])).
// It is stored on edges but no route builder reads it.
func AdditiveCost(e *Edge, prefs Preferences) float64 {
	var values [PreferenceCount]float64

	switch e.Elevation {
	case ElevationFlat:
		values[FavorHilly], values[FavorFlat] = 2, 0.5
	case ElevationModerate:
		values[FavorHilly], values[FavorFlat] = 1, 1
	case ElevationHilly:
		values[FavorHilly], values[FavorFlat] = 0.5, 2
	}
	if e.Surface == SurfaceRoad {
		values[FavorRoad] = 2
	} else {
		values[FavorTrail] = 2
	}
	if e.Nature {
		values[FavorNature] = 2
	}
	if e.Lit {
		values[FavorLighting] = 2
	}
	if e.Tourism {
		values[FavorTourism] = 2
	}
	if e.Viewpoint {
		values[FavorViewpoint] = 2
	}

	sum := 0.0
	for i := range values {
		sum += prefs[i] * values[i]
	}
	return e.Length * math.Max(1, sum)
}

// AssignWeights annotates every edge with its routing cost for the given preferences.
// It must finish before any route search starts on the network.
func (n *Network) AssignWeights(prefs Preferences, mode HillyMode) {
	n.Edges(func(e *Edge) {
		e.Weight = RoutingCost(e, prefs, mode)
		e.AdditiveWeight = AdditiveCost(e, prefs)
	})
}

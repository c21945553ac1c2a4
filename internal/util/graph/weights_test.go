package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingCost(t *testing.T) {
	tests := []struct {
		name  string
		edge  Edge
		prefs Preferences
		mode  HillyMode
		want  float64
	}{
		{
			name: "no preferences",
			edge: Edge{Length: 100, Elevation: ElevationHilly, Nature: true},
			want: 100,
		},
		{
			name:  "flat edge favoring flat",
			edge:  Edge{Length: 100, Elevation: ElevationFlat},
			prefs: Preferences{FavorFlat: 1},
			want:  130,
		},
		{
			name:  "flat edge favoring hilly",
			edge:  Edge{Length: 100, Elevation: ElevationFlat},
			prefs: Preferences{FavorHilly: 1},
			want:  70,
		},
		{
			name:  "hilly edge favoring hilly, observed",
			edge:  Edge{Length: 100, Elevation: ElevationHilly},
			prefs: Preferences{FavorHilly: 1},
			mode:  HillyObserved,
			want:  100,
		},
		{
			name:  "hilly edge favoring flat, observed",
			edge:  Edge{Length: 100, Elevation: ElevationHilly},
			prefs: Preferences{FavorFlat: 1},
			mode:  HillyObserved,
			want:  70,
		},
		{
			name:  "hilly edge favoring hilly, symmetric",
			edge:  Edge{Length: 100, Elevation: ElevationHilly},
			prefs: Preferences{FavorHilly: 1},
			mode:  HillySymmetric,
			want:  130,
		},
		{
			name:  "hilly edge favoring flat, symmetric",
			edge:  Edge{Length: 100, Elevation: ElevationHilly},
			prefs: Preferences{FavorFlat: 1},
			mode:  HillySymmetric,
			want:  70,
		},
		{
			name:  "unknown elevation is neutral",
			edge:  Edge{Length: 100},
			prefs: Preferences{FavorHilly: 1, FavorFlat: 1},
			want:  100,
		},
		{
			name:  "moderate elevation is neutral",
			edge:  Edge{Length: 100, Elevation: ElevationModerate},
			prefs: Preferences{FavorHilly: 1, FavorFlat: 1},
			want:  100,
		},
		{
			name:  "road favoring road",
			edge:  Edge{Length: 100, Surface: SurfaceRoad},
			prefs: Preferences{FavorRoad: 1},
			want:  70,
		},
		{
			name:  "trail favoring road",
			edge:  Edge{Length: 100, Surface: SurfaceTrail},
			prefs: Preferences{FavorRoad: 1},
			want:  100,
		},
		{
			name:  "trail favoring trail",
			edge:  Edge{Length: 100, Surface: SurfaceTrail},
			prefs: Preferences{FavorTrail: 1},
			want:  70,
		},
		{
			name:  "lit nature trail favoring all three",
			edge:  Edge{Length: 100, Surface: SurfaceTrail, Nature: true, Lit: true},
			prefs: Preferences{FavorTrail: 1, FavorNature: 1, FavorLighting: 1},
			want:  100 * 0.7 * 0.7 * 0.7,
		},
		{
			name:  "tourism and viewpoint never change the cost",
			edge:  Edge{Length: 100, Tourism: true, Viewpoint: true},
			prefs: Preferences{FavorTourism: 1, FavorViewpoint: 1},
			want:  100,
		},
		{
			name:  "zero length",
			edge:  Edge{Length: 0, Surface: SurfaceTrail, Elevation: ElevationFlat},
			prefs: Preferences{FavorFlat: 1, FavorTrail: 1},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := tt.edge
			assert.InDelta(t, tt.want, RoutingCost(&edge, tt.prefs, tt.mode), 1e-9)
		})
	}
}

func TestRoutingCostNeverNegative(t *testing.T) {
	for _, bucket := range []ElevationBucket{ElevationUnknown, ElevationFlat, ElevationModerate, ElevationHilly} {
		for _, surface := range []Surface{SurfaceRoad, SurfaceTrail} {
			e := &Edge{Length: 12.5, Elevation: bucket, Surface: surface, Nature: true, Lit: true}
			prefs := Preferences{1, 1, 1, 1, 1, 1, 1, 1}
			assert.GreaterOrEqual(t, RoutingCost(e, prefs, HillySymmetric), 0.0)
			assert.GreaterOrEqual(t, RoutingCost(e, prefs, HillyObserved), 0.0)
		}
	}
}

func TestAdditiveCost(t *testing.T) {
	tests := []struct {
		name  string
		edge  Edge
		prefs Preferences
		want  float64
	}{
		{"no preferences", Edge{Length: 10}, Preferences{}, 10},
		{"flat favoring hilly", Edge{Length: 10, Elevation: ElevationFlat}, Preferences{FavorHilly: 1}, 20},
		{"flat favoring flat floors at length", Edge{Length: 10, Elevation: ElevationFlat}, Preferences{FavorFlat: 1}, 10},
		{"hilly favoring flat", Edge{Length: 10, Elevation: ElevationHilly}, Preferences{FavorFlat: 1}, 20},
		{"trail, nature, viewpoint", Edge{Length: 10, Surface: SurfaceTrail, Nature: true, Viewpoint: true},
			Preferences{FavorTrail: 1, FavorNature: 1, FavorViewpoint: 1}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := tt.edge
			assert.InDelta(t, tt.want, AdditiveCost(&edge, tt.prefs), 1e-9)
		})
	}
}

func TestAssignWeightsIsDeterministic(t *testing.T) {
	prefs := Preferences{FavorFlat: 1, FavorTrail: 1}
	a, b := cycle(5, true), cycle(5, true)
	a.AssignWeights(prefs, HillyObserved)
	b.AssignWeights(prefs, HillyObserved)

	var wa, wb []float64
	a.Edges(func(e *Edge) { wa = append(wa, e.Weight) })
	b.Edges(func(e *Edge) { wb = append(wb, e.Weight) })
	assert.Equal(t, wa, wb)
	assert.InDelta(t, 0.7, wa[0], 1e-9)
}

func TestParseHillyMode(t *testing.T) {
	assert.Equal(t, HillySymmetric, ParseHillyMode(" Symmetric "))
	assert.Equal(t, HillyObserved, ParseHillyMode("observed"))
	assert.Equal(t, HillyObserved, ParseHillyMode(""))
	assert.Equal(t, "symmetric", HillySymmetric.String())
}

package routegen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

func ids(values ...int) []graph.NodeID {
	route := make([]graph.NodeID, len(values))
	for i, v := range values {
		route[i] = graph.NodeID(v)
	}
	return route
}

func TestCombineLegs(t *testing.T) {
	route := combineLegs(ids(0, 1, 2), ids(2, 3), ids(3, 4, 0))

	assert.Equal(t, ids(0, 1, 2, 3, 4, 0), route)
}

func TestRemoveOutAndBack(t *testing.T) {
	tests := []struct {
		name  string
		route []graph.NodeID
		via   graph.NodeID
		want  []graph.NodeID
	}{
		{"spur", ids(0, 1, 2, 3, 2, 1, 4, 0), 3, ids(0, 1, 4, 0)},
		{"no spur", ids(0, 1, 2, 3, 0), 2, ids(0, 1, 2, 3, 0)},
		{"via absent", ids(0, 1, 2, 0), 9, ids(0, 1, 2, 0)},
		{"whole route", ids(0, 1, 0), 1, ids(0)},
		{"first occurrence", ids(5, 3, 5, 3, 6), 3, ids(5, 3, 6)},
		{"via at the end", ids(0, 1, 2), 2, ids(0, 1, 2)},
		{"via visited again", ids(0, 2, 1, 2, 3, 1, 3, 0), 1, ids(0, 2, 3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveOutAndBack(tt.route, tt.via)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, RemoveOutAndBack(got, tt.via), "second pass must not change the route")
		})
	}
}

func TestTryPairOnRing(t *testing.T) {
	n := ring(6, true)

	c, ok := TryPair(n, 0, 6, ViaPair{V1: 2, V2: 4})
	require.True(t, ok)

	assert.Equal(t, ids(0, 1, 2, 3, 4, 5, 0), c.Route)
	assert.Equal(t, 6.0, c.Length)
	assert.Equal(t, 0.0, c.Deviation)
}

func TestTryPairRemovesSpur(t *testing.T) {
	// 0 - 1 - 2 with a dead end 1 - 3
	n := graph.NewNetwork()
	for i := 0; i < 4; i++ {
		n.AddNode(graph.NodeID(i), [2]float64{float64(i), 0})
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}} {
		n.AddEdge(graph.NodeID(e[0]), graph.NodeID(e[1]), 1)
		n.AddEdge(graph.NodeID(e[1]), graph.NodeID(e[0]), 1)
	}
	n.AssignWeights(graph.Preferences{}, graph.HillyObserved)

	c, ok := TryPair(n, 0, 3, ViaPair{V1: 3, V2: 2})
	require.True(t, ok)

	assert.Equal(t, ids(0, 1, 2, 0), c.Route)
	assert.Equal(t, 3.0, c.Length)
}

func TestTryPairNoPath(t *testing.T) {
	n := ring(4, false)
	n.AddNode(10, [2]float64{1, 1})

	_, ok := TryPair(n, 0, 4, ViaPair{V1: 2, V2: 10})
	assert.False(t, ok)
}

func TestBestCandidateOnRing(t *testing.T) {
	n := ring(6, true)
	pairs := SampleViaPairs(n, 0, 6, NewSamplerRand())

	best, evaluated := BestCandidate(n, 0, 6, pairs)

	require.Len(t, evaluated, 2)
	assert.Equal(t, 0.0, best.Deviation)
	assert.Len(t, best.Route, 7)
	assert.Equal(t, graph.NodeID(0), best.Route[0])
	assert.Equal(t, graph.NodeID(0), best.Route[len(best.Route)-1])
}

func TestBestCandidateIsNoWorseThanAnyEvaluated(t *testing.T) {
	n := grid(12)
	start := graph.NodeID(5*12 + 5)

	for _, target := range []float64{12, 18} {
		pairs := SampleViaPairs(n, start, target, NewSamplerRand())
		best, evaluated := BestCandidate(n, start, target, pairs)
		require.NotEmpty(t, evaluated)

		for _, c := range evaluated {
			assert.LessOrEqual(t, best.Deviation, c.Deviation)
			assert.Equal(t, start, c.Route[0])
			assert.Equal(t, start, c.Route[len(c.Route)-1])
		}
	}
}

func TestBestCandidateWithoutPairs(t *testing.T) {
	n := ring(4, true)

	best, evaluated := BestCandidate(n, 0, 4, nil)

	assert.Empty(t, evaluated)
	assert.Equal(t, ids(0), best.Route)
	assert.True(t, math.IsInf(best.Deviation, 1))
	assert.True(t, IsDegenerate(best.Route))
}

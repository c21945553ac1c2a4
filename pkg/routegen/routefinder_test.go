package routegen

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

func TestFindRouteFourCycle(t *testing.T) {
	for _, bidirectional := range []bool{false, true} {
		n := ring(4, bidirectional)
		n.AssignWeights(graph.Preferences{1, 1, 1, 1, 1, 1, 1, 1}, graph.HillyObserved)

		result := NewRouteFinder(n, 0, nil).FindRoute(4)

		assert.True(t, result.Fallback)
		assert.Equal(t, ids(0, 1, 2, 3, 0), result.Route)
		assert.Equal(t, 4.0, result.Length)
		assert.Equal(t, 0.0, result.Deviation)
	}
}

func TestFindRouteSixCycle(t *testing.T) {
	n := ring(6, true)

	result := NewRouteFinder(n, 0, nil).FindRoute(6)

	assert.False(t, result.Fallback)
	assert.Equal(t, 2, result.Pairs)
	assert.Equal(t, 2, result.Evaluated)
	assert.Equal(t, 6.0, result.Length)
	assert.Equal(t, 0.0, result.Deviation)
	require.Len(t, result.Route, 7)
	assert.Equal(t, graph.NodeID(0), result.Route[0])
	assert.Equal(t, graph.NodeID(0), result.Route[6])
}

func TestFindRouteTwoComponents(t *testing.T) {
	n := ring(5, true)
	n.AddNode(100, orb.Point{1, 1})

	finder := NewRouteFinder(n, 100, nil)
	pairs := SampleViaPairs(n, 100, 50, NewSamplerRand())
	best, _ := BestCandidate(n, 100, 50, pairs)
	result := finder.FindRoute(50)

	assert.Empty(t, pairs)
	assert.Equal(t, ids(100), best.Route)
	assert.True(t, result.Fallback)
	assert.Equal(t, ids(100), result.Route)
	assert.Equal(t, 0.0, result.Length)
	assert.Equal(t, 50.0, result.Deviation)
}

func TestFindRouteIsDeterministic(t *testing.T) {
	n := grid(10)
	start := graph.NodeID(4*10 + 4)

	first := NewRouteFinder(n, start, nil).FindRoute(18)
	second := NewRouteFinder(n, start, nil).FindRoute(18)

	assert.Equal(t, first, second)
	assert.False(t, first.Fallback)
}

func TestFindRouteFallbackIsDeterministic(t *testing.T) {
	// Legs of 5 on a grid cannot pair up, every request falls back to the greedy walk
	n := grid(8)
	start := graph.NodeID(3*8 + 3)

	first := NewRouteFinder(n, start, nil).FindRoute(15)
	require.True(t, first.Fallback)

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NewRouteFinder(n, start, nil).FindRoute(15), "run %d", i)
	}
}

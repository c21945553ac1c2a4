package routegen

import (
	"math"
	"math/rand"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// RouteFinder searches one weighted network for a loop through a start node.
// The network must not change while the finder is in use.
type RouteFinder struct {
	network *graph.Network
	start   graph.NodeID
	rng     *rand.Rand

	lengths *graph.LengthIndex
}

// Result of a loop search
type Result struct {
	Route     []graph.NodeID
	Length    float64
	Deviation float64

	// Pairs of via vertices that were sampled, and how many gave a loop
	Pairs     int
	Evaluated int

	// Set if the heuristic found nothing and the greedy walk was used
	Fallback bool
}

// NewRouteFinder creates a new route finder. rng drives via vertex sampling,
// nil uses the fixed seed.
func NewRouteFinder(network *graph.Network, start graph.NodeID, rng *rand.Rand) *RouteFinder {
	if rng == nil {
		rng = NewSamplerRand()
	}
	return &RouteFinder{
		network: network,
		start:   start,
		rng:     rng,
		lengths: graph.NewLengthIndex(network),
	}
}

// FindRoute returns the loop closest to target meters. Weights must already be assigned.
// If no via vertex pair gives a loop, a greedy walk is returned instead.
func (rf *RouteFinder) FindRoute(target float64) Result {
	pairs := SampleViaPairs(rf.network, rf.start, target, rf.rng)
	best, evaluated := BestCandidate(rf.network, rf.start, target, pairs)

	result := Result{
		Route:     best.Route,
		Length:    best.Length,
		Deviation: best.Deviation,
		Pairs:     len(pairs),
		Evaluated: len(evaluated),
	}
	if !IsDegenerate(best.Route) {
		return result
	}

	walk := BuildGreedyWalk(rf.network, rf.start, target, rf.lengths)
	length, _ := rf.network.RouteLength(walk)

	result.Route = walk
	result.Length = length
	result.Deviation = math.Abs(length - target)
	result.Fallback = true
	return result
}

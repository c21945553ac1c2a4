package routegen

import (
	"math/rand"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

const (
	// SamplerSeed makes via vertex sampling reproducible between requests.
	SamplerSeed = 42

	maxViaSamples = 10
)

// ViaPair is a pair of waypoints for a three leg loop start -> V1 -> V2 -> start.
type ViaPair struct {
	V1 graph.NodeID
	V2 graph.NodeID
}

// NewSamplerRand returns the random source used for via vertex sampling.
func NewSamplerRand() *rand.Rand {
	return rand.New(rand.NewSource(SamplerSeed))
}

// sample picks up to k distinct elements of nodes, in the order they were drawn.
func sample(rng *rand.Rand, nodes []graph.NodeID, k int) []graph.NodeID {
	pool := append([]graph.NodeID(nil), nodes...)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// SampleViaPairs finds up to 10 pairs of via vertices that split a loop of
// target meters into three legs of roughly equal length.
//
// Up to 10 nodes about target/3 away from start are drawn with rng. Each drawn
// node v1 is paired with the first node (in network order) that is about
// target/3 away from both v1 and start. A v1 without such a node is dropped.
func SampleViaPairs(n *graph.Network, start graph.NodeID, target float64, rng *rand.Rand) []ViaPair {
	radius := target / 3
	if radius <= 0 {
		return nil
	}

	isochrone := n.Isochrone(start, radius)
	inIsochrone := make(map[graph.NodeID]bool, len(isochrone))
	for _, node := range isochrone {
		inIsochrone[node] = true
	}

	pairs := make([]ViaPair, 0, maxViaSamples)
	for _, v1 := range sample(rng, isochrone, maxViaSamples) {
		for _, v2 := range n.Isochrone(v1, radius) {
			if inIsochrone[v2] && v2 != start {
				pairs = append(pairs, ViaPair{V1: v1, V2: v2})
				break
			}
		}
	}
	return pairs
}

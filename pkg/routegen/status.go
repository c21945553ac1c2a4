package routegen

// Status is the status of the route generator service
type Status struct {
	// The number of routes that have been generated
	GeneratedRoutes int64 `json:"generated_routes"`

	// How many of those came from the greedy walk
	FallbackRoutes int64 `json:"fallback_routes"`

	// Generations currently running
	GenerationsInProgress int64 `json:"generations_in_progress"`

	// Size of the most recently built network
	LastNetworkNodes int `json:"last_network_nodes"`
	LastNetworkEdges int `json:"last_network_edges"`
}

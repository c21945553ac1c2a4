package endpoints

// A request to generate a loop
type GenerateRouteRequest struct {
	// Start point as [lat, lon]
	Coords []float64 `json:"coords"`

	// Target length in meters
	Distance float64 `json:"distance"`

	Elevation string `json:"elevation"`
	Surface   string `json:"surface"`
	Nature    string `json:"nature"`
	Lighting  string `json:"lighting"`
	POI       string `json:"poi"`
}

type StatusRequest struct{}

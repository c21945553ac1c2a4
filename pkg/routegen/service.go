package routegen

import (
	"context"
	"strings"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// A Request for one loop starting and ending at (Lat, Lon)
type Request struct {
	Lat float64
	Lon float64

	// Target length in meters
	Distance float64

	// Preference selectors, empty for no preference
	Elevation string // "hilly" or "flat"
	Surface   string // "road" or "trail"
	Nature    string // "yes"
	Lighting  string // "yes"
	POI       string // "tourism" or "viewpoint"
}

// Preferences maps the selectors onto the preference vector.
// Unknown selector values set nothing.
func (r Request) Preferences() graph.Preferences {
	var prefs graph.Preferences

	switch selector(r.Elevation) {
	case "hilly":
		prefs[graph.FavorHilly] = 1
	case "flat":
		prefs[graph.FavorFlat] = 1
	}

	switch selector(r.Surface) {
	case "road":
		prefs[graph.FavorRoad] = 1
	case "trail":
		prefs[graph.FavorTrail] = 1
	}

	if selector(r.Nature) == "yes" {
		prefs[graph.FavorNature] = 1
	}
	if selector(r.Lighting) == "yes" {
		prefs[graph.FavorLighting] = 1
	}

	switch selector(r.POI) {
	case "tourism":
		prefs[graph.FavorTourism] = 1
	case "viewpoint":
		prefs[graph.FavorViewpoint] = 1
	}
	return prefs
}

func selector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the start coordinate and the target length.
func (r Request) Validate() error {
	if r.Lat < -90 || r.Lat > 90 || r.Lon < -180 || r.Lon > 180 {
		return errors.ErrInvalidArgument
	}
	if r.Distance <= 0 {
		return errors.ErrInvalidArgument
	}
	return nil
}

type Service interface {
	// GenerateRoute builds the loop closest to the requested distance.
	GenerateRoute(ctx context.Context, req Request) (Route, error)

	Status(ctx context.Context) (Status, error)
}

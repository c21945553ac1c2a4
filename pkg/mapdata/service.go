package mapdata

import (
	"context"

	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

// Options are set per request.
type Options struct {
	// OverpassURL is the interpreter endpoint queried for street data
	OverpassURL string
}

type Service interface {
	// GetMapData returns the streets within radius meters of (lat, lon),
	// plus nearby nature areas and points of interest.
	GetMapData(ctx context.Context, lat, lon, radius float64, opts Options) (mapdata.MapData, error)
}

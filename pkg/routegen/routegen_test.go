package routegen

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/paulmach/orb"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
	"github.com/ColinToft/LoopRoute/pkg/elevation"
	mapdatasvc "github.com/ColinToft/LoopRoute/pkg/mapdata"
)

type stubMapData struct {
	data  mapdata.MapData
	err   error
	block bool

	gotRadius float64
	gotOpts   mapdatasvc.Options
}

func (s *stubMapData) GetMapData(ctx context.Context, _, _, radius float64, opts mapdatasvc.Options) (mapdata.MapData, error) {
	s.gotRadius, s.gotOpts = radius, opts
	if s.block {
		<-ctx.Done()
		return mapdata.MapData{}, ctx.Err()
	}
	return s.data, s.err
}

type stubElevation struct {
	err     error
	gotOpts elevation.Options
}

func (s *stubElevation) Lookup(_ context.Context, points []orb.Point, opts elevation.Options) ([]float64, error) {
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	elevations := make([]float64, len(points))
	for i := range points {
		elevations[i] = 100 + float64(i)*5
	}
	elevations[len(elevations)-1] = math.NaN()
	return elevations, nil
}

// block is a roughly 100 m square of footpaths with its south east corner at (43, -79).
func block() mapdata.MapData {
	return mapdata.MapData{
		Nodes: []mapdata.Node{
			{ID: 1, Lat: 43.0000, Lon: -79.00000},
			{ID: 2, Lat: 43.0009, Lon: -79.00000},
			{ID: 3, Lat: 43.0009, Lon: -79.00123},
			{ID: 4, Lat: 43.0000, Lon: -79.00123},
		},
		Ways: []mapdata.Way{
			{ID: 10, Nodes: []int64{1, 2, 3, 4, 1}, Tags: map[string]string{"highway": "footway", "lit": "yes"}},
		},
	}
}

func newTestService(maps mapdatasvc.Service, elevations elevation.Service, opts Options) Service {
	return NewService(maps, elevations, opts, log.NewNopLogger())
}

func TestRequestPreferences(t *testing.T) {
	tests := []struct {
		req  Request
		want graph.Preferences
	}{
		{Request{}, graph.Preferences{}},
		{Request{Elevation: "hilly", Surface: "road"}, graph.Preferences{1, 0, 1, 0, 0, 0, 0, 0}},
		{Request{Elevation: "Flat", Surface: "trail", Nature: "yes"}, graph.Preferences{0, 1, 0, 1, 1, 0, 0, 0}},
		{Request{Lighting: "yes", POI: "tourism"}, graph.Preferences{0, 0, 0, 0, 0, 1, 1, 0}},
		{Request{Nature: "no", POI: "viewpoint"}, graph.Preferences{0, 0, 0, 0, 0, 0, 0, 1}},
		{Request{Elevation: "any", POI: "museum"}, graph.Preferences{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.req.Preferences(), "%+v", tt.req)
	}
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, Request{Lat: 43, Lon: -79, Distance: 5000}.Validate())
	assert.Equal(t, errors.ErrInvalidArgument, Request{Lat: 95, Lon: -79, Distance: 5000}.Validate())
	assert.Equal(t, errors.ErrInvalidArgument, Request{Lat: 43, Lon: -181, Distance: 5000}.Validate())
	assert.Equal(t, errors.ErrInvalidArgument, Request{Lat: 43, Lon: -79}.Validate())
}

func TestGenerateRoute(t *testing.T) {
	maps := &stubMapData{data: block()}
	elevations := &stubElevation{}
	opts := Options{
		MapData:   mapdatasvc.Options{OverpassURL: "http://overpass.test"},
		Elevation: elevation.Options{URLTemplate: "http://elevation.test/{locations}", BatchSize: 10},
	}
	svc := newTestService(maps, elevations, opts)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	route, err := svc.GenerateRoute(ctx, Request{Lat: 43, Lon: -79, Distance: 400, Lighting: "yes"})
	require.NoError(t, err)

	assert.Equal(t, 200.0, maps.gotRadius)
	assert.Equal(t, opts.MapData, maps.gotOpts)
	assert.Equal(t, opts.Elevation, elevations.gotOpts)

	require.NotEmpty(t, route.Coordinates)
	assert.Equal(t, []float64{43, -79}, route.Coordinates[0])
	assert.Equal(t, route.Coordinates[0], route.Coordinates[len(route.Coordinates)-1])
	assert.InDelta(t, 400, route.Length, 5)
	assert.InDelta(t, 1, route.Stats.Lighting, 1e-9)
	assert.True(t, route.Fallback)
	assert.Equal(t, "req-1", route.RequestID)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{
		GeneratedRoutes:  1,
		FallbackRoutes:   1,
		LastNetworkNodes: 4,
		LastNetworkEdges: 8,
	}, status)
}

func TestGenerateRouteWithoutElevation(t *testing.T) {
	svc := newTestService(&stubMapData{data: block()}, &stubElevation{err: pkgerrors.New("rate limited")}, Options{})

	route, err := svc.GenerateRoute(context.Background(), Request{Lat: 43, Lon: -79, Distance: 400, Elevation: "hilly"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, route.Elevation)
	for _, p := range route.ElevationProfile {
		assert.Nil(t, p.Elevation)
	}
}

func TestGenerateRouteNoNetwork(t *testing.T) {
	tests := []struct {
		name string
		data mapdata.MapData
		req  Request
	}{
		{"empty", mapdata.MapData{}, Request{Lat: 43, Lon: -79, Distance: 400}},
		{"far from start", block(), Request{Lat: 43.1, Lon: -79, Distance: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubMapData{data: tt.data}, nil, Options{})

			_, err := svc.GenerateRoute(context.Background(), tt.req)
			assert.Equal(t, errors.ErrNoNetwork, errors.Cause(err))
		})
	}
}

func TestGenerateRouteMapDataError(t *testing.T) {
	failure := pkgerrors.New("overpass unavailable")
	svc := newTestService(&stubMapData{err: failure}, nil, Options{})

	_, err := svc.GenerateRoute(context.Background(), Request{Lat: 43, Lon: -79, Distance: 400})

	assert.Equal(t, failure, errors.Cause(err))
	assert.False(t, errors.IsUserFacing(err))
}

func TestGenerateRouteInvalidRequest(t *testing.T) {
	maps := &stubMapData{data: block()}
	svc := newTestService(maps, nil, Options{})

	_, err := svc.GenerateRoute(context.Background(), Request{Lat: 43, Lon: -79, Distance: -1})

	assert.Equal(t, errors.ErrInvalidArgument, err)
	assert.Zero(t, maps.gotRadius, "map data must not be fetched")
}

func TestGenerateRouteTimeout(t *testing.T) {
	svc := newTestService(&stubMapData{block: true}, nil, Options{Timeout: 20 * time.Millisecond})

	_, err := svc.GenerateRoute(context.Background(), Request{Lat: 43, Lon: -79, Distance: 400})

	assert.Equal(t, errors.ErrTimeout, err)

	status, _ := svc.Status(context.Background())
	assert.Equal(t, int64(0), status.GenerationsInProgress)
	assert.Equal(t, int64(0), status.GeneratedRoutes)
}

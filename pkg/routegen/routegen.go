package routegen

// Route generation service implementation

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/paulmach/orb"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/internal/util/tagging"
	"github.com/ColinToft/LoopRoute/pkg/elevation"
	"github.com/ColinToft/LoopRoute/pkg/mapdata"
)

// Options are shared by all requests and never changed after the service is created.
type Options struct {
	MapData   mapdata.Options
	Elevation elevation.Options

	HillyMode graph.HillyMode

	// How far the start point may be from the nearest path, in meters
	SnapDistance float64

	// Deadline for a whole generation, 0 for none
	Timeout time.Duration
}

type routeGenService struct {
	mapData   mapdata.Service
	elevation elevation.Service // optional
	opts      Options
	logger    log.Logger

	generated  atomic.Int64
	fallbacks  atomic.Int64
	inProgress atomic.Int64
	lastNodes  atomic.Int64
	lastEdges  atomic.Int64
}

// NewService creates a route generator. elevations may be nil, every edge
// then keeps an unknown elevation bucket.
func NewService(mapData mapdata.Service, elevations elevation.Service, opts Options, logger log.Logger) Service {
	if opts.SnapDistance <= 0 {
		opts.SnapDistance = graph.DefaultSnapDistance
	}
	return &routeGenService{
		mapData:   mapData,
		elevation: elevations,
		opts:      opts,
		logger:    logger,
	}
}

func (s *routeGenService) GenerateRoute(ctx context.Context, req Request) (Route, error) {
	if err := req.Validate(); err != nil {
		return Route{}, err
	}

	s.inProgress.Add(1)
	defer s.inProgress.Add(-1)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	network, start, err := s.buildNetwork(ctx, req)
	if err != nil {
		return Route{}, contextError(ctx, err)
	}

	// The search itself cannot be interrupted, the caller just stops waiting for it
	done := make(chan Result, 1)
	go func() {
		done <- NewRouteFinder(network, start, nil).FindRoute(req.Distance)
	}()

	var result Result
	select {
	case result = <-done:
	case <-ctx.Done():
		return Route{}, contextError(ctx, ctx.Err())
	}

	level.Debug(s.logger).Log(
		"method", "GenerateRoute",
		"request_id", RequestIDFrom(ctx),
		"pairs", result.Pairs,
		"evaluated", result.Evaluated,
		"fallback", result.Fallback,
	)

	route, err := AssembleRoute(network, result.Route, req.Distance)
	if err != nil {
		return Route{}, errors.Wrap(err, "assemble route")
	}
	route.Fallback = result.Fallback
	route.RequestID = RequestIDFrom(ctx)

	s.generated.Add(1)
	if result.Fallback {
		s.fallbacks.Add(1)
	}
	return route, nil
}

// buildNetwork fetches the area around the start point and prepares the
// weighted network for the request's preferences.
func (s *routeGenService) buildNetwork(ctx context.Context, req Request) (*graph.Network, graph.NodeID, error) {
	data, err := s.mapData.GetMapData(ctx, req.Lat, req.Lon, req.Distance/2, s.opts.MapData)
	if err != nil {
		return nil, 0, errors.Wrap(err, "fetch map data")
	}

	network := graph.NewNetworkFromMapData(&data)
	s.lastNodes.Store(int64(network.NodeCount()))
	s.lastEdges.Store(int64(network.EdgeCount()))
	if network.NodeCount() == 0 {
		return nil, 0, errors.ErrNoNetwork
	}

	start, ok := network.NearestNode(orb.Point{req.Lon, req.Lat}, s.opts.SnapDistance)
	if !ok {
		return nil, 0, errors.ErrNoNetwork
	}

	if err := s.addElevation(ctx, network); err != nil {
		if ctx.Err() != nil {
			return nil, 0, err
		}
		// Routes are still useful without elevation data
		level.Warn(s.logger).Log("method", "GenerateRoute", "request_id", RequestIDFrom(ctx), "elevation", "unavailable", "err", err)
	}

	tagging.Apply(network, &data)
	network.AssignWeights(req.Preferences(), s.opts.HillyMode)

	return network, start, nil
}

func (s *routeGenService) addElevation(ctx context.Context, network *graph.Network) error {
	if s.elevation == nil {
		return nil
	}

	nodes := network.Nodes()
	points := make([]orb.Point, len(nodes))
	for i, node := range nodes {
		points[i] = node.Point
	}

	elevations, err := s.elevation.Lookup(ctx, points, s.opts.Elevation)
	if err != nil {
		return errors.Wrap(err, "elevation lookup")
	}
	for i, node := range nodes {
		if !math.IsNaN(elevations[i]) {
			network.SetElevation(node.ID, elevations[i])
		}
	}

	network.AssignGrades()
	network.AssignElevationBuckets()
	return nil
}

func (s *routeGenService) Status(_ context.Context) (Status, error) {
	return Status{
		GeneratedRoutes:       s.generated.Load(),
		FallbackRoutes:        s.fallbacks.Load(),
		GenerationsInProgress: s.inProgress.Load(),
		LastNetworkNodes:      int(s.lastNodes.Load()),
		LastNetworkEdges:      int(s.lastEdges.Load()),
	}, nil
}

// contextError reports a passed deadline as ErrTimeout.
func contextError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.ErrTimeout
	}
	return err
}

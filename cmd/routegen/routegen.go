package main

// The code to start and stop the route generation HTTP server.

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ColinToft/LoopRoute/internal/config"
	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/pkg/elevation"
	"github.com/ColinToft/LoopRoute/pkg/mapdata"
	mapdatatransport "github.com/ColinToft/LoopRoute/pkg/mapdata/transport"
	"github.com/ColinToft/LoopRoute/pkg/routegen"
	"github.com/ColinToft/LoopRoute/pkg/routegen/endpoints"
	"github.com/ColinToft/LoopRoute/pkg/routegen/transport"
)

func main() {
	cfg := config.Load(config.DefaultRoutePort)

	var (
		logger log.Logger
		// 0.0.0.0 for Docker, 127.0.0.1 for local
		httpAddr = net.JoinHostPort(cfg.Address, cfg.Port)
	)

	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, cfg.LevelFilter())

	// Map data comes from a separate server if one is configured
	var mapData mapdata.Service
	if cfg.MapDataURL != "" {
		client, err := mapdatatransport.NewHTTPClient(cfg.MapDataURL, &http.Client{Timeout: cfg.RouteTimeout})
		if err != nil {
			level.Error(logger).Log("during", "NewHTTPClient", "err", err)
			os.Exit(1)
		}
		mapData = client
	} else {
		mapData = mapdata.NewService(nil, log.With(logger, "service", "mapdata"))
	}

	cache, err := elevation.NewCache(cfg.ElevationCachePath)
	if err != nil {
		level.Warn(logger).Log("during", "NewCache", "path", cfg.ElevationCachePath, "err", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	var service routegen.Service
	{
		service = routegen.NewService(
			mapData,
			elevation.NewService(nil, cache, log.With(logger, "service", "elevation")),
			routegen.Options{
				MapData: mapdata.Options{OverpassURL: cfg.OverpassURL},
				Elevation: elevation.Options{
					URLTemplate: cfg.ElevationURLTemplate,
					BatchSize:   cfg.ElevationBatchSize,
					Pause:       cfg.ElevationPause,
				},
				HillyMode:    graph.ParseHillyMode(cfg.HillyMode),
				SnapDistance: cfg.SnapDistance,
				Timeout:      cfg.RouteTimeout,
			},
			log.With(logger, "service", "routegen"),
		)
		service = routegen.LoggingMiddleware(log.With(logger, "component", "routegen"))(service)
		service = routegen.InstrumentingMiddleware(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "looproute",
				Subsystem: "routegen",
				Name:      "requests_total",
				Help:      "Number of route generation requests.",
			}, []string{"method", "fallback", "error"}),
			kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
				Namespace: "looproute",
				Subsystem: "routegen",
				Name:      "request_duration_seconds",
				Help:      "Time spent generating a route.",
				Buckets:   stdprometheus.ExponentialBuckets(0.05, 2, 12),
			}, []string{"method", "fallback", "error"}),
			kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
				Namespace: "looproute",
				Subsystem: "routegen",
				Name:      "length_deviation_meters",
				Help:      "Difference between generated and requested route length.",
				Buckets:   stdprometheus.ExponentialBuckets(10, 2, 10),
			}, []string{}),
		)(service)
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.PathPrefix("/").Handler(transport.NewHTTPHandler(endpoints.NewEndpointSet(service)))

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Handler: r,
	}

	go func() {
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr, "hilly_mode", cfg.HillyMode)
		err := httpServer.Serve(httpListener)
		if err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("transport", "HTTP", "during", "Serve", "err", err)
		}
	}()

	// Block until we are asked to stop
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	level.Info(logger).Log("signal", sig)

	// Let running generations finish, up to the route timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RouteTimeout+5*time.Second)
	defer cancel()
	err = httpServer.Shutdown(ctx)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}

	level.Info(logger).Log("transport", "HTTP", "status", "stopped")
}

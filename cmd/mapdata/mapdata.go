package main

// The code to start and stop the map data HTTP server.

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ColinToft/LoopRoute/internal/config"
	"github.com/ColinToft/LoopRoute/pkg/mapdata"
	"github.com/ColinToft/LoopRoute/pkg/mapdata/endpoints"
	"github.com/ColinToft/LoopRoute/pkg/mapdata/transport"
)

func main() {
	cfg := config.Load(config.DefaultMapDataPort)

	var (
		logger log.Logger
		// 0.0.0.0 for Docker, 127.0.0.1 for local
		httpAddr = net.JoinHostPort(cfg.Address, cfg.Port)
	)

	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, cfg.LevelFilter())

	var (
		service     = mapdata.NewService(nil, log.With(logger, "service", "mapdata"))
		endpoints   = endpoints.NewEndpointSet(service, mapdata.Options{OverpassURL: cfg.OverpassURL})
		httpHandler = transport.NewHTTPHandler(endpoints)
	)

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.PathPrefix("/").Handler(httpHandler)

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Handler: r,
	}

	go func() {
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr, "overpass", cfg.OverpassURL)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = httpServer.Shutdown(ctx)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}

	level.Info(logger).Log("transport", "HTTP", "status", "stopped")
}

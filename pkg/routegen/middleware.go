package routegen

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
)

// Middleware describes a service middleware.
type Middleware func(Service) Service

// LoggingMiddleware logs every generation with its outcome and duration.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

type loggingMiddleware struct {
	next   Service
	logger log.Logger
}

func (mw *loggingMiddleware) GenerateRoute(ctx context.Context, req Request) (route Route, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "GenerateRoute",
			"request_id", RequestIDFrom(ctx),
			"lat", req.Lat,
			"lon", req.Lon,
			"distance", req.Distance,
			"length", route.Length,
			"deviation", route.Stats.Deviation,
			"fallback", route.Fallback,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return mw.next.GenerateRoute(ctx, req)
}

func (mw *loggingMiddleware) Status(ctx context.Context) (Status, error) {
	return mw.next.Status(ctx)
}

// InstrumentingMiddleware records request counts, latency and how far
// generated routes are from their target length.
func InstrumentingMiddleware(requests metrics.Counter, latency, deviation metrics.Histogram) Middleware {
	return func(next Service) Service {
		return &instrumentingMiddleware{
			next:      next,
			requests:  requests,
			latency:   latency,
			deviation: deviation,
		}
	}
}

type instrumentingMiddleware struct {
	next      Service
	requests  metrics.Counter
	latency   metrics.Histogram
	deviation metrics.Histogram
}

func (mw *instrumentingMiddleware) GenerateRoute(ctx context.Context, req Request) (route Route, err error) {
	defer func(begin time.Time) {
		lvs := []string{
			"method", "GenerateRoute",
			"fallback", strconv.FormatBool(route.Fallback),
			"error", strconv.FormatBool(err != nil),
		}
		mw.requests.With(lvs...).Add(1)
		mw.latency.With(lvs...).Observe(time.Since(begin).Seconds())
		if err == nil {
			mw.deviation.Observe(route.Stats.Deviation)
		}
	}(time.Now())
	return mw.next.GenerateRoute(ctx, req)
}

func (mw *instrumentingMiddleware) Status(ctx context.Context) (Status, error) {
	return mw.next.Status(ctx)
}
